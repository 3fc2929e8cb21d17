package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
	"github.com/sellquiccom/sellquicks-sub000/internal/orders"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func order(status string, total float64, email string, created time.Time) models.Order {
	return models.Order{Status: status, TotalAmount: total, CustomerEmail: email, CreatedAt: created}
}

func TestSummarizeRecognizedRevenueOnly(t *testing.T) {
	snapshot := []models.Order{
		order(orders.StatusConfirmed, 120, "a@x.com", now),
		order(orders.StatusFulfilled, 80, "b@x.com", now),
		order(orders.StatusPending, 999, "c@x.com", now),
		order(orders.StatusAwaitingPayment, 500, "d@x.com", now),
	}

	stats := Summarize(snapshot, now)
	assert.Equal(t, 200.0, stats.TotalRevenue)
	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, 100.0, stats.AverageOrderValue)
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	stats := Summarize(nil, now)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.OrderCount)
	assert.Zero(t, stats.AverageOrderValue)
	assert.Zero(t, stats.NewCustomersThisMonth)
	assert.Len(t, stats.DailyRevenue, RevenueSeriesDays)
}

func TestRevenueSeriesShape(t *testing.T) {
	snapshot := []models.Order{
		order(orders.StatusConfirmed, 40, "a@x.com", now.AddDate(0, 0, -2)),
		order(orders.StatusFulfilled, 10, "a@x.com", now.AddDate(0, 0, -2)),
		order(orders.StatusConfirmed, 25, "b@x.com", now),
		// Outside the window and unrecognized: both ignored.
		order(orders.StatusConfirmed, 1000, "c@x.com", now.AddDate(0, 0, -45)),
		order(orders.StatusPending, 77, "d@x.com", now),
	}

	series := RevenueSeries(snapshot, now)
	require.Len(t, series, RevenueSeriesDays)

	// Chronological, ending today.
	assert.Equal(t, now.AddDate(0, 0, -29).Format("2006-01-02"), series[0].Date)
	assert.Equal(t, now.Format("2006-01-02"), series[29].Date)
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Date, series[i].Date)
	}

	total := 0.0
	for _, p := range series {
		total += p.Revenue
	}
	assert.Equal(t, 75.0, total)
	assert.Equal(t, 50.0, series[27].Revenue)
	assert.Equal(t, 25.0, series[29].Revenue)
	assert.Zero(t, series[0].Revenue) // zero-filled gap
}

func TestNewCustomersThisMonthUsesFirstOrderEver(t *testing.T) {
	lastMonth := now.AddDate(0, -1, 0)
	snapshot := []models.Order{
		// Returning customer: first seen last month, ordered again now.
		order(orders.StatusConfirmed, 10, "old@x.com", lastMonth),
		order(orders.StatusConfirmed, 10, "old@x.com", now),
		// New this month, and unpaid orders still count as "seen".
		order(orders.StatusAwaitingPayment, 10, "new@x.com", now),
		// No email on record.
		order(orders.StatusConfirmed, 10, "", now),
	}

	stats := Summarize(snapshot, now)
	assert.Equal(t, 1, stats.NewCustomersThisMonth)
}
