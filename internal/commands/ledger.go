package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/beanbridge-dev/beanbridge/internal/config"
	"github.com/beanbridge-dev/beanbridge/model"
)

type configKey struct{}

// cmdConfig returns the loaded config carried on the command context, or
// nil when no config file was found.
func cmdConfig(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(configKey{}).(*config.Config)
	return cfg
}

// ledgerPath resolves the ledger file for a subcommand: an explicit
// argument wins, then the configured ledger path.
func ledgerPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg := cmdConfig(cmd); cfg != nil && cfg.Ledger.Path != "" {
		return cfg.Ledger.Path, nil
	}
	return "", fmt.Errorf("no ledger file given and none configured")
}

// loadLedger reads a serialized ledger from disk. The file may hold a
// full snapshot object, a bare directive array, or the gzip-compressed
// snapshot form.
func loadLedger(path string, compressed bool) (*model.BeancountFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if compressed {
		return model.DecompressFile(data)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ds model.Directives
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("parsing ledger: %w", err)
		}
		return &model.BeancountFile{Entries: ds}, nil
	}
	var bf model.BeancountFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	return &bf, nil
}

// writeJSON writes a value as JSON to w, optionally indented.
func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// cmdLogger returns the logger carried on the command context.
func cmdLogger(cmd *cobra.Command) *zerolog.Logger {
	return zerolog.Ctx(cmd.Context())
}
