package model

// DeepAnalytics is the multi-dimensional breakdown payload behind
// /api/analytics. Every section except InventoryAging is computed from the
// sold subset of the ledger.
type DeepAnalytics struct {
	Categories     []CategoryStats  `json:"categories"`
	CostBrackets   []CostBracket    `json:"cost_brackets"`
	SpeedBrackets  []SpeedBracket   `json:"speed_brackets"`
	PriceBrackets  []PriceBracket   `json:"price_brackets"`
	Negotiation    Negotiation      `json:"negotiation"`
	DayOfWeek      []DayOfWeekStats `json:"day_of_week"`
	InventoryAging []AgingItem      `json:"inventory_aging"`
	BestFlips      []FlipEntry      `json:"best_flips"`
	WorstFlips     []FlipEntry      `json:"worst_flips"`
	ROIChampions   []ROIChampion    `json:"roi_champions"`
	SpeedDemons    []SpeedDemon     `json:"speed_demons"`
	Scorecard      Scorecard        `json:"scorecard"`
}

// CategoryStats is one keyword-classified category bucket.
type CategoryStats struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	TotalProfit float64 `json:"total_profit"`
	AvgProfit   float64 `json:"avg_profit"`
	AvgCost     float64 `json:"avg_cost"`
	AvgDays     float64 `json:"avg_days"` // mean of positive days-to-sell, 0 if none
}

// CostBracket is one fixed purchase-cost range.
type CostBracket struct {
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	TotalProfit float64 `json:"total_profit"`
	AvgProfit   float64 `json:"avg_profit"`
	AvgROI      float64 `json:"avg_roi"` // mean of per-item profit/cost*100, cost > 0 only
}

// SpeedBracket is one fixed days-to-sell range.
type SpeedBracket struct {
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	TotalProfit float64 `json:"total_profit"`
	AvgProfit   float64 `json:"avg_profit"`
}

// PriceBracket is one fixed sale-price range.
type PriceBracket struct {
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	TotalProfit float64 `json:"total_profit"`
	AvgProfit   float64 `json:"avg_profit"`
	AvgDays     float64 `json:"avg_days"`
}

// Negotiation compares asking prices against realized sale prices for items
// that carried both.
type Negotiation struct {
	Count          int               `json:"count"`
	TotalAsked     float64           `json:"total_asked"`
	TotalGot       float64           `json:"total_got"`
	AvgDiscountPct float64           `json:"avg_discount_pct"` // (1 - got/asked) * 100
	AboveCount     int               `json:"above_count"`
	AtCount        int               `json:"at_count"`
	BelowCount     int               `json:"below_count"`
	Above          []NegotiationItem `json:"above"`
	At             []NegotiationItem `json:"at"`
	Below          []NegotiationItem `json:"below"`
}

// NegotiationItem is one asked-vs-got comparison.
type NegotiationItem struct {
	Description string  `json:"description"`
	Asked       float64 `json:"asked"`
	Got         float64 `json:"got"`
}

// DayOfWeekStats is one weekday's sales tally. Days with zero sales are
// omitted from the breakdown entirely.
type DayOfWeekStats struct {
	Day         string  `json:"day"`
	Count       int     `json:"count"`
	TotalProfit float64 `json:"total_profit"`
	AvgProfit   float64 `json:"avg_profit"`
}

// Aging tier labels for listed inventory.
const (
	AgingFresh = "Fresh" // held 30 days or less
	AgingAging = "Aging" // 31-60 days
	AgingStale = "Stale" // over 60 days
)

// AgingItem is one listed item annotated with how long it has been held.
type AgingItem struct {
	Description  string   `json:"description"`
	Cost         float64  `json:"cost"`
	ListingPrice *float64 `json:"listing_price"`
	DaysHeld     int      `json:"days_held"`
	Tier         string   `json:"tier"`
}

// FlipEntry is one row of the best/worst flip rankings.
type FlipEntry struct {
	Description string   `json:"description"`
	Cost        float64  `json:"cost"`
	SoldFor     float64  `json:"sold_for"`
	Profit      float64  `json:"profit"`
	Margin      *float64 `json:"margin"`
}

// ROIChampion is one row of the return-on-investment ranking.
type ROIChampion struct {
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	SoldFor     float64 `json:"sold_for"`
	ROIPct      float64 `json:"roi_pct"`
}

// SpeedDemon is one row of the fastest-sale ranking.
type SpeedDemon struct {
	Description  string   `json:"description"`
	Days         int      `json:"days"`
	Profit       *float64 `json:"profit"`
	ProfitPerDay *float64 `json:"profit_per_day"`
}

// Scorecard is the fixed set of business-velocity metrics.
type Scorecard struct {
	DaysInBusiness   int     `json:"days_in_business"`
	WeeklyProfit     float64 `json:"weekly_profit"`
	MonthlyProfit    float64 `json:"monthly_profit"`
	AnnualizedProfit float64 `json:"annualized_profit"`
	AvgFlipCost      float64 `json:"avg_flip_cost"`
	AvgSalePrice     float64 `json:"avg_sale_price"`
	MoneyMultiplier  float64 `json:"money_multiplier"`
	ProfitPerDollar  float64 `json:"profit_per_dollar"`
	ItemsPerWeek     float64 `json:"items_per_week"`
	AvgMargin        float64 `json:"avg_margin"`
	BiggestWin       string  `json:"biggest_win"`
	FastestFlip      string  `json:"fastest_flip"`
	TotalCost        float64 `json:"total_cost"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalProfit      float64 `json:"total_profit"`
	SoldCount        int     `json:"sold_count"`
}
