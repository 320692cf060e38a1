package cmd

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/encodeous/routesim/core"
	"github.com/encodeous/routesim/state"
	"github.com/spf13/cobra"
)

var (
	lookupSource string
	lookupEngine string
)

var lookupCmd = &cobra.Command{
	Use:     "lookup <address>",
	Aliases: []string{"l"},
	Short:   "Resolves the destination and next hop of an address from the view of a node",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := netip.ParseAddr(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if lookupEngine != core.EngineLinkState && lookupEngine != core.EngineDistanceVector {
			return fmt.Errorf("lookup needs a scalar routing table, engine must be %s or %s", core.EngineLinkState, core.EngineDistanceVector)
		}
		res, err := core.Simulate(*cfg, core.SimOptions{Engines: []string{lookupEngine}})
		if err != nil {
			return err
		}
		fib, err := res.Fib(state.NodeId(strings.ToLower(lookupSource)))
		if err != nil {
			return err
		}
		entry, ok := fib.Lookup(addr)
		if !ok {
			return fmt.Errorf("%s has no route to %s", lookupSource, addr)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s via %s (dest: %s, prefix: %s, metric: %d)\n",
			addr, entry.Nh, entry.Dest, entry.Prefix, entry.Metric)
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVarP(&lookupSource, "source", "s", "", "Node performing the lookup")
	lookupCmd.Flags().StringVarP(&lookupEngine, "engine", "e", core.EngineLinkState, "Engine whose table is used: ls or dv")
	_ = lookupCmd.MarkFlagRequired("source")
}
