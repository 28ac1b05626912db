package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sapling"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%dx%d)\n", cfg.Title, cfg.WindowWidth(), cfg.WindowHeight())

		actions := make([]string, 0, len(cfg.Inputs))
		for action := range cfg.Inputs {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		for _, action := range actions {
			fmt.Fprintf(out, "  input %-10s %s\n", action, strings.Join(cfg.Inputs[action], ", "))
		}
		for _, s := range cfg.Scenes {
			fmt.Fprintf(out, "  scene %-10s %d objects\n", s.Name, len(s.Objects))
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key names accepted in input bindings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sapling.KeyNames(), " "))
		fmt.Fprintf(cmd.OutOrStdout(), "kinds: %s\n", strings.Join(sapling.Kinds(), " "))
	},
}
