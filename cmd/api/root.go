package main

import (
	"notesapi/internal/config"
	"notesapi/internal/logging"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Note-taking REST API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default .env when present)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newInitDBCmd(opts))
	return cmd
}

// load reads the layered config; overrides applies command flags on top.
func (o *rootOptions) load(overrides func(*config.Config)) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.configFile, o.envFiles...)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if overrides != nil {
		overrides(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, log, nil
}
