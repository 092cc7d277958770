package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/render"
)

// addOutputFlag registers --output on cmd.
func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", render.OutputTable,
		"output format: table, plain or json")
}

// parseNumber parses a numeric argument, tolerating thousands separators.
func parseNumber(name, arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(arg), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, arg)
	}
	return v, nil
}

// renderCards lays out requests and writes them in the chosen format.
// Cards that fail to build are logged and left out; if every card fails the
// first error is returned.
func renderCards(cmd *cobra.Command, b *kpi.Builder, requests []kpi.Request, columns int, output string) error {
	slots, err := b.Layout(requests, columns)
	if err != nil {
		return err
	}

	errs := kpi.Errors(slots)
	for _, e := range errs {
		logger.Warn().Ctx(cmd.Context()).Err(e).Msg("card skipped")
	}
	if len(errs) > 0 && len(errs) == len(slots) {
		return errs[0]
	}

	out := cmd.OutOrStdout()
	r, err := render.New(output, out, b.Palette())
	if err != nil {
		return err
	}
	return r.Render(out, slots, columns)
}
