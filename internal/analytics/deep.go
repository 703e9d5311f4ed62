package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"
)

const (
	flipListLimit  = 5
	worstListLimit = 3
	rankListLimit  = 7
)

// Analyze computes the deep multi-dimensional breakdown over the full
// collection. The caller supplies now so inventory aging stays a pure
// function of its inputs.
func Analyze(items []model.Item, now time.Time) model.DeepAnalytics {
	sold, listed := Partition(items)

	best, worst := bestAndWorstFlips(sold)
	return model.DeepAnalytics{
		Categories:     categoryBreakdown(sold),
		CostBrackets:   costBracketBreakdown(sold),
		SpeedBrackets:  speedBracketBreakdown(sold),
		PriceBrackets:  priceBracketBreakdown(sold),
		Negotiation:    negotiationAnalysis(sold),
		DayOfWeek:      dayOfWeekBreakdown(sold),
		InventoryAging: inventoryAging(listed, now),
		BestFlips:      best,
		WorstFlips:     worst,
		ROIChampions:   roiChampions(sold),
		SpeedDemons:    speedDemons(sold),
		Scorecard:      scorecard(sold),
	}
}

func categoryBreakdown(sold []model.Item) []model.CategoryStats {
	grouped := map[string][]model.Item{}
	var order []string
	for _, it := range sold {
		cat := Categorize(it.Description)
		if _, seen := grouped[cat]; !seen {
			order = append(order, cat)
		}
		grouped[cat] = append(grouped[cat], it)
	}

	out := make([]model.CategoryStats, 0, len(order))
	for _, cat := range order {
		group := grouped[cat]
		stats := model.CategoryStats{Category: cat, Count: len(group)}
		var profitSum, costSum float64
		var daysSum, daysCount int
		for _, it := range group {
			if p := it.ActualProfit(); p != nil {
				profitSum += *p
			}
			costSum += it.Cost
			if d := it.DaysToSell(); d != nil && *d > 0 {
				daysSum += *d
				daysCount++
			}
		}
		stats.TotalProfit = model.Round(profitSum, 2)
		stats.AvgProfit = model.Round(profitSum/float64(len(group)), 2)
		stats.AvgCost = model.Round(costSum/float64(len(group)), 2)
		if daysCount > 0 {
			stats.AvgDays = model.Round(float64(daysSum)/float64(daysCount), 1)
		}
		out = append(out, stats)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].TotalProfit > out[b].TotalProfit })
	return out
}

func costBracketBreakdown(sold []model.Item) []model.CostBracket {
	var out []model.CostBracket
	for _, b := range costBrackets {
		var group []model.Item
		for _, it := range sold {
			if b.contains(it.Cost) {
				group = append(group, it)
			}
		}
		if len(group) == 0 {
			continue
		}
		row := model.CostBracket{Label: b.label, Count: len(group)}
		var profitSum, roiSum float64
		var roiCount int
		for _, it := range group {
			p := it.ActualProfit()
			if p != nil {
				profitSum += *p
			}
			// Per-item ROI, not aggregate profit over aggregate cost:
			// a $1 flip that doubled counts the same as a $50 one.
			if p != nil && it.Cost > 0 {
				roiSum += *p / it.Cost * 100
				roiCount++
			}
		}
		row.TotalProfit = model.Round(profitSum, 2)
		row.AvgProfit = model.Round(profitSum/float64(len(group)), 2)
		if roiCount > 0 {
			row.AvgROI = model.Round(roiSum/float64(roiCount), 1)
		}
		out = append(out, row)
	}
	return out
}

func speedBracketBreakdown(sold []model.Item) []model.SpeedBracket {
	var out []model.SpeedBracket
	for _, b := range speedBrackets {
		var group []model.Item
		for _, it := range sold {
			if d := it.DaysToSell(); d != nil && b.contains(float64(*d)) {
				group = append(group, it)
			}
		}
		if len(group) == 0 {
			continue
		}
		row := model.SpeedBracket{Label: b.label, Count: len(group)}
		var profitSum float64
		for _, it := range group {
			if p := it.ActualProfit(); p != nil {
				profitSum += *p
			}
		}
		row.TotalProfit = model.Round(profitSum, 2)
		row.AvgProfit = model.Round(profitSum/float64(len(group)), 2)
		out = append(out, row)
	}
	return out
}

func priceBracketBreakdown(sold []model.Item) []model.PriceBracket {
	var out []model.PriceBracket
	for _, b := range priceBrackets {
		var group []model.Item
		for _, it := range sold {
			if it.SoldFor != nil && *it.SoldFor > 0 && b.contains(*it.SoldFor) {
				group = append(group, it)
			}
		}
		if len(group) == 0 {
			continue
		}
		row := model.PriceBracket{Label: b.label, Count: len(group)}
		var profitSum float64
		var daysSum, daysCount int
		for _, it := range group {
			if p := it.ActualProfit(); p != nil {
				profitSum += *p
			}
			if d := it.DaysToSell(); d != nil && *d > 0 {
				daysSum += *d
				daysCount++
			}
		}
		row.TotalProfit = model.Round(profitSum, 2)
		row.AvgProfit = model.Round(profitSum/float64(len(group)), 2)
		if daysCount > 0 {
			row.AvgDays = model.Round(float64(daysSum)/float64(daysCount), 1)
		}
		out = append(out, row)
	}
	return out
}

func negotiationAnalysis(sold []model.Item) model.Negotiation {
	neg := model.Negotiation{
		Above: []model.NegotiationItem{},
		At:    []model.NegotiationItem{},
		Below: []model.NegotiationItem{},
	}
	for _, it := range sold {
		if it.ListingPrice == nil || *it.ListingPrice <= 0 || it.SoldFor == nil {
			continue
		}
		asked, got := *it.ListingPrice, *it.SoldFor
		neg.Count++
		neg.TotalAsked += asked
		neg.TotalGot += got
		entry := model.NegotiationItem{Description: it.Description, Asked: asked, Got: got}
		switch {
		case got > asked:
			neg.Above = append(neg.Above, entry)
		case got == asked:
			neg.At = append(neg.At, entry)
		default:
			neg.Below = append(neg.Below, entry)
		}
	}
	neg.AboveCount = len(neg.Above)
	neg.AtCount = len(neg.At)
	neg.BelowCount = len(neg.Below)
	if neg.TotalAsked > 0 {
		neg.AvgDiscountPct = model.Round((1-neg.TotalGot/neg.TotalAsked)*100, 1)
	}
	neg.TotalAsked = model.Round(neg.TotalAsked, 2)
	neg.TotalGot = model.Round(neg.TotalGot, 2)
	return neg
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func dayOfWeekBreakdown(sold []model.Item) []model.DayOfWeekStats {
	type tally struct {
		count  int
		profit float64
	}
	byDay := map[string]*tally{}
	for _, it := range sold {
		if it.DateSold == nil {
			continue
		}
		// time.Weekday counts from Sunday; shift so Monday leads.
		name := weekdayNames[(int(it.DateSold.Weekday())+6)%7]
		if byDay[name] == nil {
			byDay[name] = &tally{}
		}
		byDay[name].count++
		if p := it.ActualProfit(); p != nil {
			byDay[name].profit += *p
		}
	}

	var out []model.DayOfWeekStats
	for _, name := range weekdayNames {
		t := byDay[name]
		if t == nil {
			continue
		}
		out = append(out, model.DayOfWeekStats{
			Day:         name,
			Count:       t.count,
			TotalProfit: model.Round(t.profit, 2),
			AvgProfit:   model.Round(t.profit/float64(t.count), 2),
		})
	}
	return out
}

func inventoryAging(listed []model.Item, now time.Time) []model.AgingItem {
	out := make([]model.AgingItem, 0, len(listed))
	for _, it := range listed {
		age := 0
		if it.DateBought != nil {
			age = int(now.Sub(*it.DateBought) / (24 * time.Hour))
		}
		tier := model.AgingFresh
		switch {
		case age > 60:
			tier = model.AgingStale
		case age > 30:
			tier = model.AgingAging
		}
		out = append(out, model.AgingItem{
			Description:  it.Description,
			Cost:         it.Cost,
			ListingPrice: it.ListingPrice,
			DaysHeld:     age,
			Tier:         tier,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].DaysHeld > out[b].DaysHeld })
	return out
}

// bestAndWorstFlips slices the top 5 and bottom 3 of the same
// profit-descending sort independently. Below 8 ranked items the two lists
// overlap; that is long-standing report behavior and is kept as is.
func bestAndWorstFlips(sold []model.Item) (best, worst []model.FlipEntry) {
	ranked := sortedByProfit(sold)
	best = []model.FlipEntry{}
	worst = []model.FlipEntry{}
	for i, it := range ranked {
		if i >= flipListLimit {
			break
		}
		best = append(best, flipEntry(it))
	}
	start := len(ranked) - worstListLimit
	if start < 0 {
		start = 0
	}
	for _, it := range ranked[start:] {
		worst = append(worst, flipEntry(it))
	}
	return best, worst
}

func flipEntry(it model.Item) model.FlipEntry {
	return model.FlipEntry{
		Description: it.Description,
		Cost:        it.Cost,
		SoldFor:     *it.SoldFor,
		Profit:      *it.ActualProfit(),
		Margin:      it.ActualMargin(),
	}
}

func roiChampions(sold []model.Item) []model.ROIChampion {
	var ranked []model.Item
	for _, it := range sold {
		if it.Cost > 0 && it.ActualProfit() != nil {
			ranked = append(ranked, it)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return *ranked[a].ActualProfit()/ranked[a].Cost > *ranked[b].ActualProfit()/ranked[b].Cost
	})
	if len(ranked) > rankListLimit {
		ranked = ranked[:rankListLimit]
	}
	out := make([]model.ROIChampion, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, model.ROIChampion{
			Description: it.Description,
			Cost:        it.Cost,
			SoldFor:     *it.SoldFor,
			ROIPct:      model.Round(*it.ActualProfit()/it.Cost*100, 1),
		})
	}
	return out
}

func speedDemons(sold []model.Item) []model.SpeedDemon {
	var ranked []model.Item
	for _, it := range sold {
		if d := it.DaysToSell(); d != nil && *d >= 0 {
			ranked = append(ranked, it)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return *ranked[a].DaysToSell() < *ranked[b].DaysToSell()
	})
	if len(ranked) > rankListLimit {
		ranked = ranked[:rankListLimit]
	}
	out := make([]model.SpeedDemon, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, model.SpeedDemon{
			Description:  it.Description,
			Days:         *it.DaysToSell(),
			Profit:       it.ActualProfit(),
			ProfitPerDay: it.ProfitPerDay(),
		})
	}
	return out
}

func scorecard(sold []model.Item) model.Scorecard {
	card := model.Scorecard{
		SoldCount:   len(sold),
		BiggestWin:  "N/A",
		FastestFlip: "N/A",
	}

	var totalCost, totalRevenue, totalProfit, marginSum float64
	var marginCount int
	for _, it := range sold {
		totalCost += it.Cost
		if it.SoldFor != nil {
			totalRevenue += *it.SoldFor
		}
		if p := it.ActualProfit(); p != nil {
			totalProfit += *p
		}
		if m := it.ActualMargin(); m != nil {
			marginSum += *m
			marginCount++
		}
	}
	card.TotalCost = model.Round(totalCost, 2)
	card.TotalRevenue = model.Round(totalRevenue, 2)
	card.TotalProfit = model.Round(totalProfit, 2)

	span := BusinessSpan(sold)
	card.DaysInBusiness = span
	card.WeeklyProfit = model.Round(totalProfit/weeksFloor(span, 7), 2)
	card.MonthlyProfit = model.Round(totalProfit/weeksFloor(span, 30), 2)
	card.AnnualizedProfit = model.Round(totalProfit/weeksFloor(span, 365), 2)

	if len(sold) > 0 {
		card.AvgFlipCost = model.Round(totalCost/float64(len(sold)), 2)
		card.AvgSalePrice = model.Round(totalRevenue/float64(len(sold)), 2)
		card.ItemsPerWeek = model.Round(float64(len(sold))/weeksFloor(span, 7), 1)
	}
	if totalCost > 0 {
		card.MoneyMultiplier = model.Round(totalRevenue/totalCost, 2)
		card.ProfitPerDollar = model.Round(totalProfit/totalCost, 2)
	}
	if marginCount > 0 {
		card.AvgMargin = model.Round(marginSum/float64(marginCount), 4)
	}

	if ranked := sortedByProfit(sold); len(ranked) > 0 {
		biggest := ranked[0]
		card.BiggestWin = fmt.Sprintf("%s ($%.0f)", biggest.Description, *biggest.ActualProfit())
	}
	var fastest *model.Item
	for i := range sold {
		d := sold[i].DaysToSell()
		if d == nil || *d <= 0 {
			continue
		}
		if fastest == nil || *d < *fastest.DaysToSell() {
			fastest = &sold[i]
		}
	}
	if fastest != nil {
		profit := 0.0
		if p := fastest.ActualProfit(); p != nil {
			profit = *p
		}
		card.FastestFlip = fmt.Sprintf("%s (%dd, $%.0f)", fastest.Description, *fastest.DaysToSell(), profit)
	}

	return card
}
