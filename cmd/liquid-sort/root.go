package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/liquid-sort/config"
	"github.com/lixenwraith/liquid-sort/input"
	"github.com/lixenwraith/liquid-sort/level"
)

// options holds the root command flags
type options struct {
	configPath string
	levelPath  string
	levelName  string
	color      string
	debug      bool
	watch      bool
	mute       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "liquid-sort",
		Short:         "Sort colored liquid into containers, in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./liquid-sort.toml or the user config dir)")
	f.StringVar(&opts.levelPath, "level", "", "level file to play, overrides game.level")
	f.StringVar(&opts.levelName, "builtin", level.DefaultName, "built-in level to play when no level file is set")
	f.StringVar(&opts.color, "color", "auto", "color mode: auto, truecolor, 256")
	f.BoolVar(&opts.debug, "debug", false, "write a JSON debug log to log.file")
	f.BoolVar(&opts.watch, "watch", false, "reload the level file when it changes")
	f.BoolVar(&opts.mute, "mute", false, "disable sound")

	cmd.AddCommand(newLevelsCmd(), newConfigCmd(opts), newActionsCmd())
	return cmd
}

func newLevelsCmd() *cobra.Command {
	var show string
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List built-in levels, or print one as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if show == "" {
				for _, name := range level.BuiltinNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			lvl, err := level.Builtin(show)
			if err != nil {
				return err
			}
			data, err := lvl.Marshal()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&show, "show", "", "print the named level")
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(".", config.FileName+".toml")
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config and key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := input.DefaultKeyTable().Bind(cfg.Keys); err != nil {
				return err
			}
			source := cfg.Source
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", source)
			return nil
		},
	}

	cmd.AddCommand(initCmd, checkCmd)
	return cmd
}

func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List action names for the [keys] config section",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range input.ActionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
