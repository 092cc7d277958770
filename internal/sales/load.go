// Package sales loads the pre-cleaned e-commerce order export and reduces it
// to the period aggregates the dashboard cards are built from.
package sales

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/salesboard/internal/logging"
)

// Required and optional CSV columns (matched case-insensitively).
const (
	ColOrderID    = "order_id"
	ColOrderDate  = "order_date"
	ColCustomerID = "customer_id"
	ColCategory   = "category"
	ColProduct    = "product"
	ColQuantity   = "quantity"
	ColUnitPrice  = "unit_price"
	ColUnitCost   = "unit_cost"
)

// Load errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyFile     = errors.New("file has no header row")
)

//nolint:gochecknoglobals // Constant list of required columns
var requiredColumns = []string{ColOrderID, ColOrderDate, ColCustomerID, ColCategory, ColProduct, ColQuantity, ColUnitPrice}

//nolint:gochecknoglobals // Accepted date layouts, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// Order is one order line with its derived revenue and cost.
type Order struct {
	ID         string
	Date       time.Time
	CustomerID string
	Category   string
	Product    string
	Quantity   float64
	UnitPrice  float64
	UnitCost   float64
	// Revenue is Quantity * UnitPrice.
	Revenue float64
	// Cost is Quantity * UnitCost, 0 when the file has no cost column.
	Cost float64
}

// LoadResult is the outcome of reading one or more files.
type LoadResult struct {
	Orders []Order
	// Skipped counts rows that could not be parsed.
	Skipped int
	// HasCost is set when every loaded file carried a unit_cost column.
	HasCost bool
}

// Load parses a CSV export. Rows with unparsable dates or numbers, or with
// non-finite or negative quantities and prices, are skipped and counted.
func Load(ctx context.Context, r io.Reader) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return LoadResult{}, ErrEmptyFile
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return LoadResult{}, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	_, hasCost := index[ColUnitCost]

	result := LoadResult{HasCost: hasCost}
	for {
		if err := ctx.Err(); err != nil {
			return LoadResult{}, err
		}

		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			result.Skipped++
			continue
		}

		order, ok := parseOrder(record, index, hasCost)
		if !ok {
			result.Skipped++
			continue
		}
		result.Orders = append(result.Orders, order)
	}

	return result, nil
}

// LoadFile opens and parses one CSV file.
func LoadFile(ctx context.Context, path string) (LoadResult, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-supplied on purpose
	if err != nil {
		return LoadResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	result, err := Load(ctx, f)
	if err != nil {
		return LoadResult{}, fmt.Errorf("loading %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "sales").
		Str("path", path).
		Int("orders", len(result.Orders)).
		Int("skipped", result.Skipped).
		Msg("loaded order file")

	return result, nil
}

// LoadFiles parses several files concurrently and concatenates their orders
// in argument order. The first failure cancels the rest.
func LoadFiles(ctx context.Context, paths ...string) (LoadResult, error) {
	results := make([]LoadResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			r, err := LoadFile(gCtx, p)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}

	merged := LoadResult{HasCost: len(paths) > 0}
	for _, r := range results {
		merged.Orders = append(merged.Orders, r.Orders...)
		merged.Skipped += r.Skipped
		merged.HasCost = merged.HasCost && r.HasCost
	}

	if merged.Skipped > 0 {
		logging.FromContext(ctx).Warn().
			Str("component", "sales").
			Int("skipped", merged.Skipped).
			Msg("skipped unparsable order rows")
	}

	return merged, nil
}

func parseOrder(record []string, index map[string]int, hasCost bool) (Order, bool) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, ok := parseDate(field(ColOrderDate))
	if !ok {
		return Order{}, false
	}
	qty, ok := parseAmount(field(ColQuantity))
	if !ok {
		return Order{}, false
	}
	price, ok := parseAmount(field(ColUnitPrice))
	if !ok {
		return Order{}, false
	}

	var cost float64
	if hasCost {
		if raw := field(ColUnitCost); raw != "" {
			if cost, ok = parseAmount(raw); !ok {
				return Order{}, false
			}
		}
	}

	id := field(ColOrderID)
	if id == "" {
		return Order{}, false
	}

	return Order{
		ID:         id,
		Date:       date,
		CustomerID: field(ColCustomerID),
		Category:   field(ColCategory),
		Product:    field(ColProduct),
		Quantity:   qty,
		UnitPrice:  price,
		UnitCost:   cost,
		Revenue:    qty * price,
		Cost:       qty * cost,
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseAmount accepts plain numbers, optionally with "$" and "," separators.
func parseAmount(s string) (float64, bool) {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
