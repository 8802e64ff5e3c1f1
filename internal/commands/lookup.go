package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanbridge-dev/beanbridge/model"
	"github.com/beanbridge-dev/beanbridge/native"
)

func newLookupCommand() *cobra.Command {
	var compressed bool
	var pretty bool
	var id string
	var account string
	var kind string

	cmd := &cobra.Command{
		Use:   "lookup [ledger]",
		Short: "Look up ledger directives by id, account or kind",
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

			ds := bf.Entries
			if id != "" {
				d, ok := ds.ByID(id)
				if !ok {
					return fmt.Errorf("no directive with id %q", id)
				}
				return writeJSON(cmd.OutOrStdout(), model.Directives{d}, pretty)
			}
			if account != "" {
				ds = ds.ByAccount(account)
			}
			if kind != "" {
				ds = ds.ByKind(native.Kind(kind))
			}
			cmdLogger(cmd).Debug().
				Int("matched", len(ds)).
				Msg("lookup complete")
			return writeJSON(cmd.OutOrStdout(), ds, pretty)
		},
	}

	cmd.Flags().BoolVar(&compressed, "compressed", false, "ledger file is gzip-compressed")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().StringVar(&id, "id", "", "directive id to look up")
	cmd.Flags().StringVar(&account, "account", "", "account name to filter by")
	cmd.Flags().StringVar(&kind, "kind", "", "directive kind to filter by (e.g. Transaction)")

	return cmd
}
