package analytics

import "math"

// bracket is a fixed labeled numeric range. Bounds are inclusive on both
// ends, so values falling between two adjacent integer brackets (e.g. a
// cost of $0.50) match none of them.
type bracket struct {
	label string
	lo    float64
	hi    float64
}

func (b bracket) contains(v float64) bool {
	return v >= b.lo && v <= b.hi
}

// Purchase-cost ranges for ROI breakdowns.
var costBrackets = []bracket{
	{"$0", 0, 0},
	{"$1-15", 1, 15},
	{"$16-30", 16, 30},
	{"$31-50", 31, 50},
	{"$51+", 51, math.MaxFloat64},
}

// Days-to-sell ranges for sell-through breakdowns.
var speedBrackets = []bracket{
	{"0-1 days", 0, 1},
	{"2-7 days", 2, 7},
	{"8-14 days", 8, 14},
	{"15-30 days", 15, 30},
	{"31+ days", 31, math.MaxFloat64},
}

// Sale-price ranges for the where-the-money-is breakdown.
var priceBrackets = []bracket{
	{"$0-25", 0, 25},
	{"$26-50", 26, 50},
	{"$51-100", 51, 100},
	{"$101-200", 101, 200},
	{"$201-300", 201, 300},
	{"$300+", 301, math.MaxFloat64},
}
