package cmd

import (
	"fmt"

	"github.com/encodeous/routesim/state"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validates a network config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		err = state.ConfigValidator(cfg)
		if err != nil {
			return err
		}
		links, err := cfg.LinkTopology()
		if err != nil {
			return err
		}
		peering, err := cfg.PeeringTopology()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config is valid: %d nodes, %d links, %d peerings, service %s\n",
			len(cfg.GetNodes()), len(links.Edges()), len(peering.Edges()), cfg.GetService())
		return nil
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
