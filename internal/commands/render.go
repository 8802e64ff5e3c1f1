package commands

import (
	"github.com/spf13/cobra"

	"github.com/beanbridge-dev/beanbridge/printer"
)

func newRenderCommand() *cobra.Command {
	var compressed bool

	cmd := &cobra.Command{
		Use:   "render [ledger]",
		Short: "Render ledger directives as accounting file syntax",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ledgerPath(cmd, args)
			if err != nil {
				return err
			}
			bf, err := loadLedger(path, compressed)
			if err != nil {
				return err
			}
			cmdLogger(cmd).Debug().
				Int("directives", len(bf.Entries)).
				Msg("rendering ledger")

			text, err := printer.FormatAll(bf.Entries)
			if err != nil {
				return err
			}
			cmd.Print(text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&compressed, "compressed", false, "ledger file is gzip-compressed")

	return cmd
}
