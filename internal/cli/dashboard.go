package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/render"
	"github.com/rshade/salesboard/internal/sales"
	"github.com/rshade/salesboard/internal/tui"
)

const asOfLayout = "2006-01-02"

// ErrNoOrders is returned when the data files hold no usable order rows.
var ErrNoOrders = errors.New("no orders loaded")

type dashboardOptions struct {
	data        []string
	asOf        string
	columns     int
	output      string
	interactive bool
	targets     map[string]string
}

// newDashboardCmd creates the dashboard command, which loads order exports
// and renders the month-to-date sales cards.
func newDashboardCmd(a *app) *cobra.Command {
	var opts dashboardOptions

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render month-to-date sales cards from order exports",
		Long: `Load one or more order CSV exports and render month-to-date revenue, orders,
order value, customers, cost and margin, target progress and top categories,
each compared with the previous month.`,
		Example: `  salesboard dashboard --data orders.csv
  salesboard dashboard --data orders.csv --as-of 2026-10-15 --target revenue=50000
  salesboard dashboard --data orders.csv --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, a, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.data, "data", nil, "order CSV export (repeatable)")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "reporting day YYYY-MM-DD (default: latest order date)")
	cmd.Flags().IntVarP(&opts.columns, "columns", "c", 0, "cards per row (default from config)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the dashboard in a terminal UI")
	cmd.Flags().StringToStringVar(&opts.targets, "target", nil,
		"period target, e.g. revenue=50000 (overrides config; keys: revenue, orders, customers)")
	addOutputFlag(cmd, &opts.output)
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runDashboard(cmd *cobra.Command, a *app, opts dashboardOptions) error {
	ctx := cmd.Context()

	columns := a.cfg.Columns
	if cmd.Flags().Changed("columns") {
		columns = opts.columns
	}
	if columns < 1 {
		return fmt.Errorf("%w: got %d", kpi.ErrInvalidColumnCount, columns)
	}

	targets, err := mergeTargets(a.cfg.Targets, opts.targets)
	if err != nil {
		return err
	}

	result, err := sales.LoadFiles(ctx, opts.data...)
	if err != nil {
		return err
	}
	if len(result.Orders) == 0 {
		return fmt.Errorf("%w from %s", ErrNoOrders, strings.Join(opts.data, ", "))
	}

	asOf, err := resolveAsOf(opts.asOf, result.Orders)
	if err != nil {
		return err
	}

	cmp := sales.Compare(result.Orders, asOf)
	requests := sales.DashboardRequests(cmp, sales.DashboardOptions{
		Targets:     targets,
		IncludeCost: result.HasCost,
	})

	logger.Info().Ctx(ctx).
		Int("orders", len(result.Orders)).
		Int("skipped", result.Skipped).
		Time("as_of", asOf).
		Int("cards", len(requests)).
		Msg("dashboard prepared")

	b, err := a.cfg.Builder(a.base)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Sales overview · %s through %s", cmp.Current.Period.Label(), asOf.Format("Jan 2"))
	if opts.interactive {
		return runInteractiveDashboard(ctx, cmd, tui.NewDashboardModel(title, b, requests, columns))
	}

	if !strings.EqualFold(opts.output, render.OutputJSON) {
		if _, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", title); err != nil {
			return err
		}
	}
	return renderCards(cmd, b, requests, columns, opts.output)
}

func runInteractiveDashboard(ctx context.Context, cmd *cobra.Command, model tui.DashboardModel) error {
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive dashboard: %w", err)
	}
	return nil
}

// resolveAsOf parses the --as-of flag or falls back to the latest order date.
func resolveAsOf(flag string, orders []sales.Order) (time.Time, error) {
	if flag == "" {
		return sales.LatestDate(orders), nil
	}
	t, err := time.Parse(asOfLayout, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of: %q is not a YYYY-MM-DD date", flag)
	}
	return t, nil
}

// mergeTargets overlays --target values on the configured targets.
func mergeTargets(base map[string]float64, flags map[string]string) (map[string]float64, error) {
	merged := make(map[string]float64, len(base)+len(flags))
	maps.Copy(merged, base)
	for k, raw := range flags {
		v, err := parseNumber("--target "+k, raw)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("--target %s: must be finite and >= 0, got %v", k, v)
		}
		merged[strings.ToLower(k)] = v
	}
	return merged, nil
}
