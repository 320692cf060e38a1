package cmd

import (
	"github.com/encodeous/routesim/state"
)

// loadConfig reads the config given by --config, or returns the sample network
func loadConfig() (*state.SimCfg, error) {
	if configPath == "" {
		cfg := state.SampleCfg()
		return &cfg, nil
	}
	return state.ReadConfig(configPath)
}
