package commands

import (
	"github.com/spf13/cobra"

	"github.com/beanbridge-dev/beanbridge/model"
)

func newQueryCommand() *cobra.Command {
	var compressed bool
	var pretty bool
	var typed bool

	cmd := &cobra.Command{
		Use:   "query [ledger] <expression>",
		Short: "Run a JMESPath expression against ledger directives",
		Long: `Run a JMESPath expression against the directive list of a ledger file.
When the ledger argument is omitted, the configured ledger path is used.

By default the raw query result is printed. With --typed the expression
must select a subset of directives, which are re-validated and printed
as typed models.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := args[len(args)-1]
			path, err := ledgerPath(cmd, args[:len(args)-1])
			if err != nil {
				return err
			}
			bf, err := loadLedger(path, compressed)
			if err != nil {
				return err
			}
			cmdLogger(cmd).Debug().
				Str("expression", expr).
				Int("directives", len(bf.Entries)).
				Msg("running query")

			if typed {
				ds, err := bf.Entries.Filter(expr)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), ds, pretty)
			}
			result, err := model.Select(bf.Entries, expr)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result, pretty)
		},
	}

	cmd.Flags().BoolVar(&compressed, "compressed", false, "ledger file is gzip-compressed")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&typed, "typed", false, "re-validate the result as typed directives")

	return cmd
}
