package sales

import (
	"sort"
	"time"
)

const hoursPerDay = 24

// Period is the half-open date range [Start, End) in UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthToDate returns the period from the first of asOf's month through the
// end of asOf's day.
func MonthToDate(asOf time.Time) Period {
	asOf = asOf.UTC()
	start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return Period{Start: start, End: end}
}

// PreviousMonth returns the whole calendar month before p.Start.
func (p Period) PreviousMonth() Period {
	end := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: end.AddDate(0, -1, 0), End: end}
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / hoursPerDay)
}

// Label returns a short display name such as "Oct 2026".
func (p Period) Label() string {
	return p.Start.Format("Jan 2006")
}

// CategoryTotal is the revenue of one category.
type CategoryTotal struct {
	Category string
	Revenue  float64
}

// ProductTotal is the revenue and units of one product.
type ProductTotal struct {
	Product  string
	Revenue  float64
	Quantity float64
}

// Summary aggregates the orders of one period.
type Summary struct {
	Period    Period
	Revenue   float64
	Cost      float64
	Orders    int
	Customers int
	// AverageOrderValue is Revenue / Orders, 0 with no orders.
	AverageOrderValue float64
	// DailyRevenue has one sample per day of the period.
	DailyRevenue []float64
	// ByCategory is sorted by revenue, highest first.
	ByCategory []CategoryTotal
	// TopProducts is sorted by revenue, highest first.
	TopProducts []ProductTotal
}

// GrossMargin returns (Revenue-Cost)/Revenue*100, or 0 without revenue.
func (s Summary) GrossMargin() float64 {
	if s.Revenue == 0 {
		return 0
	}
	return (s.Revenue - s.Cost) / s.Revenue * 100
}

// Summarize aggregates the order lines that fall inside p. Several lines
// with the same order ID count as one order.
func Summarize(orders []Order, p Period) Summary {
	s := Summary{Period: p, DailyRevenue: make([]float64, p.Days())}

	orderIDs := make(map[string]struct{})
	customers := make(map[string]struct{})
	byCategory := make(map[string]float64)
	byProduct := make(map[string]*ProductTotal)

	for _, o := range orders {
		if !p.Contains(o.Date) {
			continue
		}
		s.Revenue += o.Revenue
		s.Cost += o.Cost
		orderIDs[o.ID] = struct{}{}
		if o.CustomerID != "" {
			customers[o.CustomerID] = struct{}{}
		}
		byCategory[o.Category] += o.Revenue

		pt, ok := byProduct[o.Product]
		if !ok {
			pt = &ProductTotal{Product: o.Product}
			byProduct[o.Product] = pt
		}
		pt.Revenue += o.Revenue
		pt.Quantity += o.Quantity

		day := int(o.Date.Sub(p.Start).Hours() / hoursPerDay)
		if day >= 0 && day < len(s.DailyRevenue) {
			s.DailyRevenue[day] += o.Revenue
		}
	}

	s.Orders = len(orderIDs)
	s.Customers = len(customers)
	if s.Orders > 0 {
		s.AverageOrderValue = s.Revenue / float64(s.Orders)
	}

	for c, r := range byCategory {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: c, Revenue: r})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Revenue != s.ByCategory[j].Revenue {
			return s.ByCategory[i].Revenue > s.ByCategory[j].Revenue
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	for _, pt := range byProduct {
		s.TopProducts = append(s.TopProducts, *pt)
	}
	sort.Slice(s.TopProducts, func(i, j int) bool {
		if s.TopProducts[i].Revenue != s.TopProducts[j].Revenue {
			return s.TopProducts[i].Revenue > s.TopProducts[j].Revenue
		}
		return s.TopProducts[i].Product < s.TopProducts[j].Product
	})

	return s
}

// Comparison pairs the current month-to-date with the previous full month.
type Comparison struct {
	Current  Summary
	Previous Summary
}

// Compare summarizes the month-to-date ending at asOf and the month before.
func Compare(orders []Order, asOf time.Time) Comparison {
	current := MonthToDate(asOf)
	return Comparison{
		Current:  Summarize(orders, current),
		Previous: Summarize(orders, current.PreviousMonth()),
	}
}

// LatestDate returns the most recent order date, or the zero time.
func LatestDate(orders []Order) time.Time {
	var latest time.Time
	for _, o := range orders {
		if o.Date.After(latest) {
			latest = o.Date
		}
	}
	return latest
}
