package model

// SummaryStats is the flat aggregate payload behind /api/stats.
// Scalar fields default to 0 and slices to empty when the collection has
// no qualifying items; nothing here is ever null.
type SummaryStats struct {
	TotalItems      int     `json:"total_items"`
	SoldCount       int     `json:"sold_count"`
	ListedCount     int     `json:"listed_count"`
	TotalSpent      float64 `json:"total_spent"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	CurrentInvested float64 `json:"current_invested"`
	PredictedProfit float64 `json:"predicted_profit"`
	AvgMargin       float64 `json:"avg_margin"`
	AvgDaysToSell   float64 `json:"avg_days_to_sell"`
	WeeklyProfit    float64 `json:"weekly_profit"`
	MoneyMultiplier float64 `json:"money_multiplier"`

	MonthlyProfit   []MonthlyProfit  `json:"monthly_profit"`
	TopItems        []TopItem        `json:"top_items"`
	TopByEfficiency []EfficiencyItem `json:"top_by_efficiency"`
}

// MonthlyProfit is one month's summed profit, keyed by calendar month.
type MonthlyProfit struct {
	Month  string  `json:"month"` // YYYY-MM
	Profit float64 `json:"profit"`
}

// TopItem is one entry in the top-profit ranking.
type TopItem struct {
	Description string  `json:"description"`
	Profit      float64 `json:"profit"`
}

// EfficiencyItem is one entry in the profit-per-day ranking.
type EfficiencyItem struct {
	Description  string  `json:"description"`
	ProfitPerDay float64 `json:"profit_per_day"`
	Days         int     `json:"days"`
}
