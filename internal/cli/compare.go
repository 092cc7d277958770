package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/kpi"
)

// newCompareCmd creates the compare command, which renders a single comparison card.
func newCompareCmd(a *app) *cobra.Command {
	var (
		label       string
		kind        string
		decimals    int
		reverseGood bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "compare CURRENT PREVIOUS",
		Short: "Show the change between two values",
		Example: `  salesboard compare 110 100                     # ▲ 10.0% vs 100
  salesboard compare 820 1000 --reverse-good     # a drop in cost is favorable`,
		Args: cobra.ExactArgs(2), //nolint:mnd // CURRENT and PREVIOUS
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseNumber("CURRENT", args[0])
			if err != nil {
				return err
			}
			previous, err := parseNumber("PREVIOUS", args[1])
			if err != nil {
				return err
			}
			k, err := format.ParseKind(kind)
			if err != nil {
				return err
			}

			b, err := a.cfg.Builder(a.base)
			if err != nil {
				return err
			}
			req := kpi.ComparisonRequest{
				Label:       label,
				Current:     current,
				Previous:    previous,
				Format:      k,
				Decimals:    decimals,
				ReverseGood: reverseGood,
			}
			return renderCards(cmd, b, []kpi.Request{req}, 1, output)
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "Change", "card label")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(format.KindNumber),
		"format kind: number, currency, percent or compact")
	cmd.Flags().IntVarP(&decimals, "decimals", "d", 0, "fractional digits for the values")
	cmd.Flags().BoolVar(&reverseGood, "reverse-good", false, "treat a decrease as favorable (costs, churn)")
	addOutputFlag(cmd, &output)

	return cmd
}
