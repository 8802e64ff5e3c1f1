// Package commands wires the beanbridge CLI. The subcommands operate on
// a serialized ledger file: either the JSON form of a full ledger
// snapshot or its gzip-compressed equivalent. A beanbridge.yaml config
// supplies defaults for the ledger path and output flags; flags given on
// the command line win.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/beanbridge-dev/beanbridge/internal/buildinfo"
	"github.com/beanbridge-dev/beanbridge/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "beanbridge",
		Short:   "Convert, query and render plain-text accounting data",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if cfg != nil {
			applyConfigDefaults(cmd, cfg, &logLevel)
		}

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		ctx := log.WithContext(cmd.Context())
		if cfg != nil {
			ctx = context.WithValue(ctx, configKey{}, cfg)
		}
		cmd.SetContext(ctx)
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "beanbridge.yaml", "path to the beanbridge.yaml config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newLookupCommand())
	rootCmd.AddCommand(newCompressCommand())

	return rootCmd
}

// loadConfig reads the config file. A missing file is only an error when
// the path was given explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return config.Load(path)
}

// applyConfigDefaults backfills flags the user did not set from the
// config. cmd is the subcommand being run, so inherited flags are visible
// through its flag set.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config, logLevel *string) {
	if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
		*logLevel = cfg.Log.Level
	}
	if f := cmd.Flags().Lookup("pretty"); f != nil && !f.Changed && cfg.Output.Pretty {
		_ = f.Value.Set("true")
	}
	if f := cmd.Flags().Lookup("compressed"); f != nil && !f.Changed && cfg.Ledger.Compressed {
		_ = f.Value.Set("true")
	}
}
