// sapling runs and checks scene configurations.
//
// Usage:
//
//	sapling dev              - Open the window and run the configured start scene
//	sapling check            - Validate the configuration and exit
//	sapling keys             - List the key names accepted in input bindings
//
// Global flags:
//
//	--config <path>     - Configuration file (default: ./sapling.yaml, then built-in)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sapling"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sapling",
	Short: "Run and check sapling scene configurations",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sapling",
			Level:           level,
		})
		sapling.SetLogger(logger)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(keysCmd)
}

// loadConfig reads and validates the configuration.
func loadConfig() (sapling.Config, error) {
	cfg, err := sapling.LoadConfig(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config:\n%w", err)
	}
	return cfg, nil
}
