package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCompressCommand() *cobra.Command {
	var decompress bool
	var pretty bool

	cmd := &cobra.Command{
		Use:   "compress <ledger> <output>",
		Short: "Compress a JSON ledger snapshot, or expand one back to JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bf, err := loadLedger(args[0], decompress)
			if err != nil {
				return err
			}

			if decompress {
				out, err := os.Create(args[1])
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer out.Close()
				return writeJSON(out, bf, pretty)
			}

			data, err := bf.Compress()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			cmdLogger(cmd).Debug().
				Int("bytes", len(data)).
				Msg("wrote compressed ledger")
			return nil
		},
	}

	cmd.Flags().BoolVar(&decompress, "decompress", false, "expand a compressed ledger back to JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output when decompressing")

	return cmd
}
