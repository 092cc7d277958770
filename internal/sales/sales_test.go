package sales

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/salesboard/internal/kpi"
)

const sampleCSV = `Order_ID,Order_Date,Customer_ID,Category,Product,Quantity,Unit_Price,Unit_Cost
A1,2026-09-03,C1,Electronics,Headphones,2,50,30
A2,2026-09-15,C2,Home,Lamp,1,40,20
B1,2026-10-01,C1,Electronics,Headphones,1,50,30
B1,2026-10-01,C1,Home,Lamp,2,40,20
B2,2026-10-02,C3,Books,Novel,3,"$1,000",600
B3,not-a-date,C4,Books,Novel,1,10,5
B4,2026-10-02,C4,Books,Novel,-1,10,5
`

func writeCSV(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	result, err := Load(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Len(t, result.Orders, 5)
	assert.Equal(t, 2, result.Skipped)
	assert.True(t, result.HasCost)

	b2 := result.Orders[4]
	assert.Equal(t, "B2", b2.ID)
	assert.InDelta(t, 3000.0, b2.Revenue, 1e-9)
	assert.InDelta(t, 1800.0, b2.Cost, 1e-9)
	assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), b2.Date)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = Load(context.Background(), strings.NewReader("order_id,order_date\nA,2026-01-01\n"))
	require.ErrorIs(t, err, ErrMissingColumn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx, strings.NewReader(sampleCSV))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadFiles(t *testing.T) {
	withCost := writeCSV(t, "a.csv", sampleCSV)
	noCost := writeCSV(t, "b.csv", "order_id,order_date,customer_id,category,product,quantity,unit_price\nZ1,2026-10-05,C9,Toys,Kite,1,15\n")

	result, err := LoadFiles(context.Background(), withCost, noCost)
	require.NoError(t, err)
	assert.Len(t, result.Orders, 6)
	assert.Equal(t, "Z1", result.Orders[5].ID, "orders keep argument order")
	assert.Equal(t, 2, result.Skipped)
	assert.False(t, result.HasCost)

	_, err = LoadFiles(context.Background(), withCost, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestPeriods(t *testing.T) {
	mtd := MonthToDate(time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), mtd.Start)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), mtd.End)
	assert.Equal(t, 15, mtd.Days())
	assert.Equal(t, "Oct 2026", mtd.Label())

	prev := mtd.PreviousMonth()
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), prev.Start)
	assert.Equal(t, 30, prev.Days())
	assert.True(t, prev.Contains(time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC)))
	assert.False(t, prev.Contains(mtd.Start))
}

func TestCompare(t *testing.T) {
	result, err := Load(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	asOf := LatestDate(result.Orders)
	assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), asOf)

	cmp := Compare(result.Orders, asOf)
	cur := cmp.Current

	assert.InDelta(t, 3130.0, cur.Revenue, 1e-9)
	assert.Equal(t, 2, cur.Orders)
	assert.Equal(t, 2, cur.Customers)
	assert.InDelta(t, 1565.0, cur.AverageOrderValue, 1e-9)
	assert.Equal(t, []float64{130, 3000}, cur.DailyRevenue)
	require.NotEmpty(t, cur.ByCategory)
	assert.Equal(t, "Books", cur.ByCategory[0].Category)
	assert.Equal(t, "Novel", cur.TopProducts[0].Product)
	assert.InDelta(t, (3130.0-1870.0)/3130.0*100, cur.GrossMargin(), 1e-9)

	prev := cmp.Previous
	assert.InDelta(t, 140.0, prev.Revenue, 1e-9)
	assert.Equal(t, 2, prev.Orders)
	assert.Len(t, prev.DailyRevenue, 30)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, MonthToDate(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Zero(t, s.Revenue)
	assert.Zero(t, s.AverageOrderValue)
	assert.Zero(t, s.GrossMargin())
	assert.Len(t, s.DailyRevenue, 10)
}

func TestDashboardRequests(t *testing.T) {
	result, err := Load(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	cmp := Compare(result.Orders, LatestDate(result.Orders))

	requests := DashboardRequests(cmp, DashboardOptions{
		Targets:     map[string]float64{TargetRevenue: 5000, TargetOrders: 0},
		IncludeCost: true,
	})

	kinds := make([]kpi.CardKind, len(requests))
	for i, r := range requests {
		kinds[i] = r.CardKind()
	}
	assert.Equal(t, []kpi.CardKind{
		kpi.KindKPI, kpi.KindComparison, kpi.KindComparison, kpi.KindMetric,
		kpi.KindComparison, kpi.KindStat,
		kpi.KindProgress,
		kpi.KindStat, kpi.KindStat, kpi.KindStat,
	}, kinds)

	slots, err := kpi.NewBuilder().Layout(requests, 3)
	require.NoError(t, err)
	assert.Empty(t, kpi.Errors(slots))

	cost := slots[4].Card
	assert.Equal(t, "Cost", cost.Label)
	assert.True(t, cost.Change.ReverseGood)

	progress := slots[6].Card
	assert.Equal(t, kpi.StatusBelowTarget, progress.Progress.Status)
}

func TestDashboardRequests_ZeroPreviousPeriod(t *testing.T) {
	orders := []Order{{ID: "X", Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Revenue: 10, Category: "A"}}
	requests := DashboardRequests(Compare(orders, orders[0].Date), DashboardOptions{})

	slots, err := kpi.NewBuilder().Layout(requests, 2)
	require.NoError(t, err)
	assert.Empty(t, kpi.Errors(slots))
	assert.Equal(t, kpi.SignNeutral, slots[0].Card.Change.Sign)
}
