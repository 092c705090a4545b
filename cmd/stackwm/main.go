// Command stackwm is a dynamic tiling window manager for X11.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/desktop"
	"github.com/gowm/stackwm/statusline"
	"github.com/gowm/stackwm/store"
	"github.com/gowm/stackwm/xserver"

	log "github.com/sirupsen/logrus"
)

var showVersion bool

var rootCmd = &cobra.Command{
	Use:           "stackwm",
	Short:         "A dynamic tiling window manager",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println(config.Summary())
			return nil
		}
		return run()
	},
}

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print name and version")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run performs setup, runs the event loop to completion, and tears down:
// spec.md §2 "Setup/teardown" and §5 "Scheduling model".
func run() error {
	configPath, err := configFilePath()
	if err == nil {
		if err := config.WriteDefaultIfMissing(configPath, "/etc/stackwm/config.toml"); err != nil {
			log.Warn("Could not seed config file: ", err)
		}
		if err := config.Load(configPath); err != nil {
			log.Warn("Could not load config, using defaults: ", err)
		}
	}

	display, err := xserver.Dial(config.Config.Focus, config.Config.Unfocus)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer display.Close()

	heads := display.Monitors()
	world := store.NewWorld(heads, config.Config)

	core := desktop.NewCore(world, display, statusline.NewStdout().Write)

	log.WithFields(log.Fields{
		"monitors": len(heads),
		"desktops": config.Config.Desktops,
	}).Info("stackwm ", config.Build.Version, " starting")

	for world.Running {
		ev, err := display.NextEvent()
		if err != nil {
			log.Error("Connection error, shutting down: ", err)
			break
		}
		core.Dispatch(ev)
		display.Flush()
	}

	os.Exit(core.ExitCode)
	return nil
}

func configFilePath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "stackwm", "config.toml"), nil
}
