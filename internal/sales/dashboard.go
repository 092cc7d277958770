package sales

import (
	"fmt"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/palette"
)

// Target keys recognized in configuration.
const (
	TargetRevenue   = "revenue"
	TargetOrders    = "orders"
	TargetCustomers = "customers"
)

// topCategoryTiles is the number of category stat tiles on the dashboard.
const topCategoryTiles = 3

// DashboardOptions controls which optional cards are produced.
type DashboardOptions struct {
	// Targets maps a target key to its goal for the current period. Keys
	// without a positive goal get no progress card.
	Targets map[string]float64
	// IncludeCost adds cost and margin cards. Set it only when the data has costs.
	IncludeCost bool
}

// DashboardRequests lays out the sales overview: headline revenue with
// sparkline, orders and order-value comparisons, customer count, optional
// cost and margin, target progress and the top category tiles.
func DashboardRequests(cmp Comparison, opts DashboardOptions) []kpi.Request {
	cur, prev := cmp.Current, cmp.Previous
	revenueDelta := kpi.DeltaPercent(cur.Revenue, prev.Revenue)

	requests := []kpi.Request{
		kpi.KPIRequest{
			Label:   "Revenue",
			Value:   cur.Revenue,
			Format:  format.KindCompact,
			Delta:   &revenueDelta,
			Trend:   cur.DailyRevenue,
			Caption: fmt.Sprintf("%s vs %s", cur.Period.Label(), prev.Period.Label()),
		},
		kpi.ComparisonRequest{
			Label:    "Orders",
			Current:  float64(cur.Orders),
			Previous: float64(prev.Orders),
			Format:   format.KindNumber,
		},
		kpi.ComparisonRequest{
			Label:    "Avg order value",
			Current:  cur.AverageOrderValue,
			Previous: prev.AverageOrderValue,
			Format:   format.KindCurrency,
			Decimals: 2,
		},
		kpi.MetricRequest{
			Label:   "Customers",
			Value:   float64(cur.Customers),
			Format:  format.KindNumber,
			Caption: "unique buyers",
		},
	}

	if opts.IncludeCost {
		requests = append(requests,
			kpi.ComparisonRequest{
				Label:       "Cost",
				Current:     cur.Cost,
				Previous:    prev.Cost,
				Format:      format.KindCurrency,
				ReverseGood: true,
			},
			kpi.StatRequest{
				Label:    "Gross margin",
				Value:    cur.GrossMargin(),
				Format:   format.KindPercent,
				Decimals: 1,
				Icon:     "%",
				Role:     palette.Success,
			},
		)
	}

	targetCards := []struct {
		key     string
		label   string
		current float64
		kind    format.Kind
	}{
		{TargetRevenue, "Revenue target", cur.Revenue, format.KindCurrency},
		{TargetOrders, "Orders target", float64(cur.Orders), format.KindNumber},
		{TargetCustomers, "Customers target", float64(cur.Customers), format.KindNumber},
	}
	for _, tc := range targetCards {
		goal, ok := opts.Targets[tc.key]
		if !ok || goal <= 0 {
			continue
		}
		requests = append(requests, kpi.ProgressRequest{
			Label:   tc.label,
			Current: tc.current,
			Target:  goal,
			Format:  tc.kind,
		})
	}

	for i, c := range cur.ByCategory {
		if i == topCategoryTiles {
			break
		}
		name := c.Category
		if name == "" {
			name = "(uncategorized)"
		}
		requests = append(requests, kpi.StatRequest{
			Label:  name,
			Value:  c.Revenue,
			Format: format.KindCompact,
			Icon:   fmt.Sprintf("#%d", i+1),
		})
	}

	return requests
}
