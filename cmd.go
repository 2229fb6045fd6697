package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	app "github.com/rocketscienceinc/tictactoe-rooms/internal"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
)

type flags struct {
	configPath string
	logLevel   string
}

func newCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tictactoe-rooms",
		Short:   "Real-time two-player tic-tac-toe rooms over WebSocket.",
		Args:    cobra.NoArgs,
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Load(f.configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("log-level") {
				conf.LogLevel = f.logLevel
			}

			return app.RunApp(cmd.Context(), initLogger(conf.LogLevel), conf, releaseVersion)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&f.configPath, "config", "c", "./config.yml", "path to the yml config file")
	fs.StringVarP(&f.logLevel, "log-level", "l", "info", "log level: debug, info, warn or error")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("tictactoe-rooms v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
