package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sapling"
)

var (
	flagScript string
	flagDebug  bool
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Run the configured scenes in a window",
	Long: `Open a window and run the configuration's start scene.

Every scene listed in the configuration is registered; objects are
spawned by kind. Press the exit key (escape by default) or close the
window to quit.

Examples:
  sapling dev
  sapling dev --config ./game.yaml --debug
  sapling dev --script ./smoke.yaml`,
	Args: cobra.NoArgs,
	RunE: runDev,
}

func init() {
	devCmd.Flags().StringVar(&flagScript, "script", "", "Path to a YAML script of key presses and screenshots")
	devCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug mode")
}

func runDev(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.Debug.Enabled = true
	}
	if cfg.StartScene == "" && len(cfg.Scenes) > 0 {
		cfg.StartScene = cfg.Scenes[0].Name
	}

	engine, err := sapling.New(cfg, sapling.Options{})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, engine.Close())
	}()

	for _, spec := range cfg.Scenes {
		if err := engine.RegisterScene(spec.Def()); err != nil {
			return err
		}
	}

	if flagScript != "" {
		data, err := os.ReadFile(flagScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := sapling.LoadScript(data)
		if err != nil {
			return err
		}
		engine.SetScript(runner)
	}

	return engine.Run()
}
