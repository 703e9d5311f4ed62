package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item status constants
const (
	StatusListed = "Listed"
	StatusSold   = "Sold"
)

// Item represents a single unit of inventory tracked from purchase through sale
type Item struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DateBought   *time.Time `gorm:"type:date" json:"date_bought"`
	DateSold     *time.Time `gorm:"type:date" json:"date_sold"`
	Description  string     `gorm:"type:varchar(200);not null" json:"description"`
	Cost         float64    `gorm:"not null;default:0" json:"cost"`
	ListingPrice *float64   `json:"listing_price"`
	SoldFor      *float64   `json:"sold_for"`
	Status       string     `gorm:"type:varchar(20);default:'Listed'" json:"status"` // Listed, Sold
	Notes        *string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the ID in the application so the model works on both
// the postgres and sqlite drivers.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsSold reports whether the item has been marked sold.
func (i *Item) IsSold() bool {
	return i.Status == StatusSold
}

// ActualProfit returns sold_for - cost, or nil until the item has a sale
// price recorded. Status is intentionally not consulted here: a Listed item
// carrying a stray sold_for still reports a profit.
func (i *Item) ActualProfit() *float64 {
	if i.SoldFor == nil {
		return nil
	}
	p := *i.SoldFor - i.Cost
	return &p
}

// PredictedProfit returns listing_price - cost while the item is unsold.
// It is a forward-looking estimate only, so it goes nil the moment the
// status flips to Sold, even if listing_price is still set.
func (i *Item) PredictedProfit() *float64 {
	if i.IsSold() || i.ListingPrice == nil || *i.ListingPrice == 0 {
		return nil
	}
	p := *i.ListingPrice - i.Cost
	return &p
}

// ActualMargin returns (sold_for - cost) / sold_for rounded to 4 decimal
// places, or nil unless sold_for is strictly positive.
func (i *Item) ActualMargin() *float64 {
	if i.SoldFor == nil || *i.SoldFor <= 0 {
		return nil
	}
	m := Round((*i.SoldFor-i.Cost) / *i.SoldFor, 4)
	return &m
}

// DaysToSell returns the whole days between date_bought and date_sold.
// Negative values are possible when the dates are inconsistent; that is
// left for the caller to interpret.
func (i *Item) DaysToSell() *int {
	if i.DateBought == nil || i.DateSold == nil {
		return nil
	}
	d := int(i.DateSold.Sub(*i.DateBought) / (24 * time.Hour))
	return &d
}

// ProfitPerDay returns actual profit divided by days to sell, rounded to 2
// decimal places. Defined only for strictly positive holding times.
func (i *Item) ProfitPerDay() *float64 {
	days := i.DaysToSell()
	profit := i.ActualProfit()
	if days == nil || *days <= 0 || profit == nil {
		return nil
	}
	ppd := Round(*profit/float64(*days), 2)
	return &ppd
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
