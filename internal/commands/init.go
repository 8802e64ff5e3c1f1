package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beanbridge-dev/beanbridge/internal/config"
)

func newInitCommand() *cobra.Command {
	var ledgerPath string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default beanbridge.yaml configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if err := os.MkdirAll(absDir, 0o755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}

			path := filepath.Join(absDir, "beanbridge.yaml")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.Save(path, config.Default(ledgerPath)); err != nil {
				return err
			}
			cmd.Printf("Initialized %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerPath, "ledger", "ledger.json", "path to the serialized ledger file")

	return cmd
}
