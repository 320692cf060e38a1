package cmd

import (
	"fmt"
	"os"

	"github.com/encodeous/routesim/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	sampleOutput string
	sampleAS     bool
	sampleISIS   bool
	sampleForce  bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Writes a sample network config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := state.SampleCfg()
		if sampleAS && sampleISIS {
			return fmt.Errorf("--as and --isis are mutually exclusive")
		}
		if sampleAS {
			cfg = state.SampleASCfg()
		} else if sampleISIS {
			cfg = state.SampleISISCfg()
		}
		if sampleOutput == "" {
			out, err := yaml.Marshal(&cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := state.PathValidator(sampleOutput); err != nil {
			return err
		}
		if _, err := os.Stat(sampleOutput); err == nil && !sampleForce {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s already exists, do you want to overwrite it?\n", sampleOutput)
			if !promptYN(cmd, "Overwrite?", false) {
				return nil
			}
		}
		return state.WriteConfig(sampleOutput, &cfg)
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "Write the config to this file instead of stdout")
	sampleCmd.Flags().BoolVar(&sampleAS, "as", false, "Use the autonomous system sample with a peering graph")
	sampleCmd.Flags().BoolVar(&sampleISIS, "isis", false, "Use the four router IS-IS sample")
	sampleCmd.Flags().BoolVarP(&sampleForce, "force", "f", false, "Overwrite an existing file without asking")
}
