package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/kpi"
)

// defaultMissExitCode is returned by --exit-on-miss when --exit-code is not set.
const defaultMissExitCode = 2

// TargetExitError carries the process exit code for a missed target.
type TargetExitError struct {
	ExitCode int
	Reason   string
}

func (e *TargetExitError) Error() string {
	return e.Reason
}

// newProgressCmd creates the progress command, which renders a single target progress card.
func newProgressCmd(a *app) *cobra.Command {
	var (
		label      string
		kind       string
		decimals   int
		exitOnMiss bool
		exitCode   int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "progress CURRENT TARGET",
		Short: "Show achievement against a target",
		Example: `  salesboard progress 42000 50000                  # 84.0% of $50,000 · near target
  salesboard progress 120 100 --kind number
  salesboard progress 30000 50000 --exit-on-miss   # exit 2 unless achieved`,
		Args: cobra.ExactArgs(2), //nolint:mnd // CURRENT and TARGET
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseNumber("CURRENT", args[0])
			if err != nil {
				return err
			}
			target, err := parseNumber("TARGET", args[1])
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
			req := kpi.ProgressRequest{
				Label:    label,
				Current:  current,
				Target:   target,
				Format:   k,
				Decimals: decimals,
			}
			if err = renderCards(cmd, b, []kpi.Request{req}, 1, output); err != nil {
				return err
			}

			if !exitOnMiss {
				return nil
			}
			progress := kpi.NewTargetProgress(current, target, a.cfg.Thresholds)
			if progress.Status == kpi.StatusAchieved {
				return nil
			}
			return &TargetExitError{
				ExitCode: exitCode,
				Reason:   fmt.Sprintf("target missed: %.1f%% (%s)", progress.Ratio, progress.Status),
			}
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "Progress", "card label")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(format.KindCurrency),
		"format kind: number, currency, percent or compact")
	cmd.Flags().IntVarP(&decimals, "decimals", "d", 0, "fractional digits for the values")
	cmd.Flags().BoolVar(&exitOnMiss, "exit-on-miss", false, "exit non-zero unless the target is achieved")
	cmd.Flags().IntVar(&exitCode, "exit-code", defaultMissExitCode, "exit code used by --exit-on-miss")
	addOutputFlag(cmd, &output)

	return cmd
}
