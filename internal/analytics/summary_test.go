package analytics

import (
	"testing"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func fp(v float64) *float64 { return &v }

func soldItem(desc string, cost, soldFor float64, bought, sold *time.Time) model.Item {
	return model.Item{
		Description: desc,
		Cost:        cost,
		SoldFor:     fp(soldFor),
		DateBought:  bought,
		DateSold:    sold,
		Status:      model.StatusSold,
	}
}

func TestSummarizeEmptyCollection(t *testing.T) {
	stats := Summarize(nil)

	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, 0, stats.SoldCount)
	assert.Equal(t, 0, stats.ListedCount)
	assert.Equal(t, 0.0, stats.TotalSpent)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Equal(t, 0.0, stats.TotalProfit)
	assert.Equal(t, 0.0, stats.AvgMargin)
	assert.Equal(t, 0.0, stats.AvgDaysToSell)
	assert.Equal(t, 0.0, stats.MoneyMultiplier)
	assert.Empty(t, stats.MonthlyProfit)
	assert.Empty(t, stats.TopItems)
	assert.Empty(t, stats.TopByEfficiency)
}

func TestSummarizeTotals(t *testing.T) {
	listed := model.Item{
		Description:  "Desk chair",
		Cost:         25,
		ListingPrice: fp(70),
		Status:       model.StatusListed,
	}
	items := []model.Item{
		soldItem("Lego set", 20, 50, date(2024, time.January, 1), date(2024, time.January, 11)),
		soldItem("Record player", 30, 90, date(2024, time.January, 5), date(2024, time.January, 25)),
		listed,
	}

	stats := Summarize(items)

	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 2, stats.SoldCount)
	assert.Equal(t, 1, stats.ListedCount)
	assert.Equal(t, 75.0, stats.TotalSpent)
	assert.Equal(t, 140.0, stats.TotalRevenue)
	assert.Equal(t, 90.0, stats.TotalProfit)
	assert.Equal(t, 25.0, stats.CurrentInvested)
	assert.Equal(t, 45.0, stats.PredictedProfit)
	// margins: 0.6 and 0.6667 -> 0.6333 (4dp)
	assert.InDelta(t, 0.6333, stats.AvgMargin, 0.0001)
	// days: 10 and 20 -> 15.0
	assert.Equal(t, 15.0, stats.AvgDaysToSell)
	// span: Jan 1 -> Jan 25 = 24 days; 24/7 weeks
	assert.InDelta(t, 90.0/(24.0/7.0), stats.WeeklyProfit, 0.01)
	assert.InDelta(t, 140.0/75.0, stats.MoneyMultiplier, 0.01)
}

func TestSummarizeMonthlyBreakdown(t *testing.T) {
	items := []model.Item{
		soldItem("Win", 10, 20, date(2024, time.February, 1), date(2024, time.February, 10)),
		soldItem("Loss", 15, 10, date(2024, time.February, 2), date(2024, time.February, 20)),
		soldItem("Later", 5, 30, date(2024, time.February, 5), date(2024, time.March, 2)),
	}

	stats := Summarize(items)

	require.Len(t, stats.MonthlyProfit, 2)
	assert.Equal(t, "2024-02", stats.MonthlyProfit[0].Month)
	assert.Equal(t, 5.0, stats.MonthlyProfit[0].Profit) // 10 + (-5)
	assert.Equal(t, "2024-03", stats.MonthlyProfit[1].Month)
	assert.Equal(t, 25.0, stats.MonthlyProfit[1].Profit)
}

func TestSummarizeTopLists(t *testing.T) {
	var items []model.Item
	// 12 sold items with profits 1..12, each taking profit-index days.
	for i := 1; i <= 12; i++ {
		items = append(items, soldItem(
			"Item", 10, 10+float64(i),
			date(2024, time.April, 1), date(2024, time.April, 1+i),
		))
	}

	stats := Summarize(items)

	require.Len(t, stats.TopItems, 10)
	assert.Equal(t, 12.0, stats.TopItems[0].Profit)
	assert.Equal(t, 3.0, stats.TopItems[9].Profit)
	for i := 1; i < len(stats.TopItems); i++ {
		assert.GreaterOrEqual(t, stats.TopItems[i-1].Profit, stats.TopItems[i].Profit)
	}

	require.Len(t, stats.TopByEfficiency, 10)
	for i := 1; i < len(stats.TopByEfficiency); i++ {
		assert.GreaterOrEqual(t, stats.TopByEfficiency[i-1].ProfitPerDay, stats.TopByEfficiency[i].ProfitPerDay)
	}
}

func TestSummarizeEfficiencyExcludesNonPositive(t *testing.T) {
	items := []model.Item{
		// Sold same day: days_to_sell = 0, no efficiency entry.
		soldItem("Same day", 5, 50, date(2024, time.May, 1), date(2024, time.May, 1)),
		// Negative profit per day is excluded too.
		soldItem("Loser", 50, 20, date(2024, time.May, 1), date(2024, time.May, 11)),
		soldItem("Keeper", 10, 40, date(2024, time.May, 1), date(2024, time.May, 4)),
	}

	stats := Summarize(items)

	require.Len(t, stats.TopByEfficiency, 1)
	assert.Equal(t, "Keeper", stats.TopByEfficiency[0].Description)
	assert.Equal(t, 10.0, stats.TopByEfficiency[0].ProfitPerDay)
	assert.Equal(t, 3, stats.TopByEfficiency[0].Days)
}

func TestBusinessSpan(t *testing.T) {
	tests := []struct {
		name string
		sold []model.Item
		want int
	}{
		{"no items", nil, 1},
		{"no dates", []model.Item{{Status: model.StatusSold}}, 1},
		{
			"same day floors to one",
			[]model.Item{soldItem("x", 1, 2, date(2024, time.June, 1), date(2024, time.June, 1))},
			1,
		},
		{
			"earliest buy to latest sale across items",
			[]model.Item{
				soldItem("a", 1, 2, date(2024, time.January, 1), date(2024, time.January, 5)),
				soldItem("b", 1, 2, date(2024, time.February, 1), date(2024, time.March, 1)),
			},
			60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusinessSpan(tt.sold))
		})
	}
}

func TestSummarizeStableTieBreak(t *testing.T) {
	items := []model.Item{
		soldItem("First", 10, 30, nil, nil),
		soldItem("Second", 10, 30, nil, nil),
		soldItem("Third", 10, 30, nil, nil),
	}

	stats := Summarize(items)

	require.Len(t, stats.TopItems, 3)
	assert.Equal(t, "First", stats.TopItems[0].Description)
	assert.Equal(t, "Second", stats.TopItems[1].Description)
	assert.Equal(t, "Third", stats.TopItems[2].Description)
}
