// Package analytics reduces an order snapshot into the dashboard rollups.
// Everything here is a pure function over already-loaded rows: the caller
// re-runs the reduction whenever its snapshot changes, and nothing is ever
// written back.
package analytics

import (
	"time"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
	"github.com/sellquiccom/sellquicks-sub000/internal/orders"
)

// RevenueSeriesDays is the length of the daily revenue series.
const RevenueSeriesDays = 30

// Stats is the dashboard summary for one vendor, or for the whole
// platform when fed the admin's order snapshot.
type Stats struct {
	TotalRevenue          float64      `json:"totalRevenue"`
	OrderCount            int          `json:"orderCount"` // recognized orders only
	AverageOrderValue     float64      `json:"averageOrderValue"`
	NewCustomersThisMonth int          `json:"newCustomersThisMonth"`
	DailyRevenue          []DailyPoint `json:"dailyRevenue"`
}

// DailyPoint is one day of the revenue series.
type DailyPoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
}

// Recognized reports whether an order counts as recognized revenue.
// Orders still awaiting payment or confirmation contribute nothing.
func Recognized(status string) bool {
	return status == orders.StatusConfirmed || status == orders.StatusFulfilled
}

// Summarize computes the full dashboard rollup for the given snapshot.
// "now" anchors both the calendar month and the 30-day series so the
// reduction stays deterministic under test.
func Summarize(snapshot []models.Order, now time.Time) Stats {
	stats := Stats{
		NewCustomersThisMonth: newCustomersInMonth(snapshot, now),
		DailyRevenue:          RevenueSeries(snapshot, now),
	}

	for _, o := range snapshot {
		if !Recognized(o.Status) {
			continue
		}
		stats.TotalRevenue += o.TotalAmount
		stats.OrderCount++
	}
	if stats.OrderCount > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.OrderCount)
	}
	return stats
}

// RevenueSeries returns exactly RevenueSeriesDays entries in chronological
// order, ending on now's date, with 0 for any day without recognized orders.
func RevenueSeries(snapshot []models.Order, now time.Time) []DailyPoint {
	perDay := make(map[string]float64)
	for _, o := range snapshot {
		if !Recognized(o.Status) {
			continue
		}
		perDay[o.CreatedAt.Format("2006-01-02")] += o.TotalAmount
	}

	series := make([]DailyPoint, 0, RevenueSeriesDays)
	start := now.AddDate(0, 0, -(RevenueSeriesDays - 1))
	for i := 0; i < RevenueSeriesDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, DailyPoint{Date: day, Revenue: perDay[day]})
	}
	return series
}

// newCustomersInMonth counts distinct customer emails whose first order
// ever falls within now's calendar month. This deliberately runs over the
// unfiltered snapshot: a customer "arrives" on their first order, paid or not.
func newCustomersInMonth(snapshot []models.Order, now time.Time) int {
	firstSeen := make(map[string]time.Time)
	for _, o := range snapshot {
		if o.CustomerEmail == "" {
			continue
		}
		if prev, ok := firstSeen[o.CustomerEmail]; !ok || o.CreatedAt.Before(prev) {
			firstSeen[o.CustomerEmail] = o.CreatedAt
		}
	}

	count := 0
	for _, first := range firstSeen {
		if first.Year() == now.Year() && first.Month() == now.Month() {
			count++
		}
	}
	return count
}
