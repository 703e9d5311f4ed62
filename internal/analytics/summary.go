// Package analytics computes the derived business metrics for the ledger.
// Everything in here is a pure fold over item snapshots: no store access,
// no clock (callers pass "now" where aging needs it), no mutation of the
// input slice beyond copying, and no error paths. Unmet preconditions
// propagate as absent values; empty subsets collapse to zeros.
package analytics

import (
	"sort"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"
)

const topListLimit = 10

// Summarize computes the flat summary statistics over the full collection.
func Summarize(items []model.Item) model.SummaryStats {
	sold, listed := Partition(items)

	stats := model.SummaryStats{
		TotalItems:      len(items),
		SoldCount:       len(sold),
		ListedCount:     len(listed),
		MonthlyProfit:   []model.MonthlyProfit{},
		TopItems:        []model.TopItem{},
		TopByEfficiency: []model.EfficiencyItem{},
	}

	var totalSpent, totalRevenue, totalProfit, invested, predicted float64
	for _, it := range items {
		totalSpent += it.Cost
	}
	for _, it := range sold {
		if it.SoldFor != nil {
			totalRevenue += *it.SoldFor
		}
		if p := it.ActualProfit(); p != nil {
			totalProfit += *p
		}
	}
	for _, it := range listed {
		invested += it.Cost
		if p := it.PredictedProfit(); p != nil {
			predicted += *p
		}
	}
	stats.TotalSpent = model.Round(totalSpent, 2)
	stats.TotalRevenue = model.Round(totalRevenue, 2)
	stats.TotalProfit = model.Round(totalProfit, 2)
	stats.CurrentInvested = model.Round(invested, 2)
	stats.PredictedProfit = model.Round(predicted, 2)

	var marginSum float64
	var marginCount int
	for _, it := range sold {
		if m := it.ActualMargin(); m != nil {
			marginSum += *m
			marginCount++
		}
	}
	if marginCount > 0 {
		stats.AvgMargin = model.Round(marginSum/float64(marginCount), 4)
	}

	var daysSum, daysCount int
	for _, it := range sold {
		if d := it.DaysToSell(); d != nil && *d > 0 {
			daysSum += *d
			daysCount++
		}
	}
	if daysCount > 0 {
		stats.AvgDaysToSell = model.Round(float64(daysSum)/float64(daysCount), 1)
	}

	stats.MonthlyProfit = monthlyProfit(sold)
	stats.TopItems = topByProfit(sold)
	stats.TopByEfficiency = topByEfficiency(sold)

	span := BusinessSpan(sold)
	stats.WeeklyProfit = model.Round(totalProfit/weeksFloor(span, 7), 2)
	if totalSpent > 0 {
		stats.MoneyMultiplier = model.Round(totalRevenue/totalSpent, 2)
	}

	return stats
}

// Partition splits the collection into its sold and listed subsets,
// preserving store order within each.
func Partition(items []model.Item) (sold, listed []model.Item) {
	for _, it := range items {
		switch it.Status {
		case model.StatusSold:
			sold = append(sold, it)
		case model.StatusListed:
			listed = append(listed, it)
		}
	}
	return sold, listed
}

// BusinessSpan returns the days between the earliest purchase and the
// latest sale among sold items, floored at 1. With no qualifying dates the
// span collapses to a single day so velocity metrics degrade to per-period
// totals instead of dividing by zero.
func BusinessSpan(sold []model.Item) int {
	var earliest, latest *time.Time
	for i := range sold {
		if b := sold[i].DateBought; b != nil && (earliest == nil || b.Before(*earliest)) {
			earliest = b
		}
		if s := sold[i].DateSold; s != nil && (latest == nil || s.After(*latest)) {
			latest = s
		}
	}
	if earliest == nil || latest == nil {
		return 1
	}
	days := int(latest.Sub(*earliest) / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

// weeksFloor converts a span in days to periods of the given length,
// floored at one full period.
func weeksFloor(spanDays, periodDays int) float64 {
	periods := float64(spanDays) / float64(periodDays)
	if periods < 1 {
		return 1
	}
	return periods
}

func monthlyProfit(sold []model.Item) []model.MonthlyProfit {
	byMonth := map[string]float64{}
	for _, it := range sold {
		p := it.ActualProfit()
		if it.DateSold == nil || p == nil {
			continue
		}
		byMonth[it.DateSold.Format("2006-01")] += *p
	}

	out := make([]model.MonthlyProfit, 0, len(byMonth))
	for month, profit := range byMonth {
		out = append(out, model.MonthlyProfit{Month: month, Profit: model.Round(profit, 2)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Month < out[b].Month })
	return out
}

func topByProfit(sold []model.Item) []model.TopItem {
	ranked := sortedByProfit(sold)
	if len(ranked) > topListLimit {
		ranked = ranked[:topListLimit]
	}
	out := make([]model.TopItem, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, model.TopItem{Description: it.Description, Profit: *it.ActualProfit()})
	}
	return out
}

func topByEfficiency(sold []model.Item) []model.EfficiencyItem {
	var ranked []model.Item
	for _, it := range sold {
		if ppd := it.ProfitPerDay(); ppd != nil && *ppd > 0 {
			ranked = append(ranked, it)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return *ranked[a].ProfitPerDay() > *ranked[b].ProfitPerDay()
	})
	if len(ranked) > topListLimit {
		ranked = ranked[:topListLimit]
	}
	out := make([]model.EfficiencyItem, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, model.EfficiencyItem{
			Description:  it.Description,
			ProfitPerDay: *it.ProfitPerDay(),
			Days:         *it.DaysToSell(),
		})
	}
	return out
}

// sortedByProfit returns the sold items that have a defined profit, sorted
// descending. The sort is stable so ties keep store order.
func sortedByProfit(sold []model.Item) []model.Item {
	var ranked []model.Item
	for _, it := range sold {
		if it.ActualProfit() != nil {
			ranked = append(ranked, it)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return *ranked[a].ActualProfit() > *ranked[b].ActualProfit()
	})
	return ranked
}
