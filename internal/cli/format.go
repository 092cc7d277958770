package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/internal/format"
)

// newFormatCmd creates the format command, which prints one value in one style.
func newFormatCmd(a *app) *cobra.Command {
	var (
		kind     string
		decimals int
		symbol   string
	)

	cmd := &cobra.Command{
		Use:   "format VALUE",
		Short: "Format a number as plain, currency, percent or compact text",
		Example: `  salesboard format 1234.5 --decimals 2          # 1,234.50
  salesboard format 1530000 --kind compact        # $1.5M
  salesboard format 12.345 --kind percent -d 1    # 12.3%`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseNumber("VALUE", args[0])
			if err != nil {
				return err
			}
			k, err := format.ParseKind(kind)
			if err != nil {
				return err
			}

			f := a.cfg.Formatter()
			if symbol != "" {
				f = format.New(format.WithCurrencySymbol(symbol))
			}
			out, err := f.Format(value, k, decimals)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(format.KindNumber),
		"format kind: number, currency, percent or compact")
	cmd.Flags().IntVarP(&decimals, "decimals", "d", 0, "fractional digits (ignored by compact)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "currency symbol (default from config)")

	return cmd
}
