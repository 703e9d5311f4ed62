package importer

import (
	"testing"

	"github.com/noahjmorrison/onnaflips/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"  ", nil},
		{"12.50", fv(12.50)},
		{"$12.50", fv(12.50)},
		{"$1,250.00", fv(1250)},
		{"0", fv(0)},
		{"-5", nil}, // refund annotations import as unset
		{"abc", nil},
	}

	for _, tt := range tests {
		got := parseMoney(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "parseMoney(%q)", tt.in)
		} else {
			require.NotNil(t, got, "parseMoney(%q)", tt.in)
			assert.Equal(t, *tt.want, *got, "parseMoney(%q)", tt.in)
		}
	}
}

func fv(v float64) *float64 { return &v }

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		in   string
		want string // YYYY-MM-DD, empty for nil
	}{
		{"", ""},
		{"2024-03-15", "2024-03-15"},
		{"03-15-24", "2024-03-15"},
		{"3/15/24", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
		{"not a date", ""},
	}

	for _, tt := range tests {
		got := parseCellDate(tt.in)
		if tt.want == "" {
			assert.Nil(t, got, "parseCellDate(%q)", tt.in)
		} else {
			require.NotNil(t, got, "parseCellDate(%q)", tt.in)
			assert.Equal(t, tt.want, got.Format("2006-01-02"), "parseCellDate(%q)", tt.in)
		}
	}
}

func TestParseRow(t *testing.T) {
	row := func(cells ...string) []string { return cells }

	t.Run("skips empty description", func(t *testing.T) {
		_, ok := parseRow(row("2024-01-01", "", "   ", "10"))
		assert.False(t, ok)
	})

	t.Run("explicit status wins", func(t *testing.T) {
		item, ok := parseRow(row("2024-01-01", "2024-01-10", "Lego set", "20", "45", "50",
			"", "", "", "", "", "Listed"))
		require.True(t, ok)
		assert.Equal(t, model.StatusListed, item.Status)
	})

	t.Run("infers sold from sale price and date", func(t *testing.T) {
		item, ok := parseRow(row("2024-01-01", "2024-01-10", "Lego set", "20", "45", "50"))
		require.True(t, ok)
		assert.Equal(t, model.StatusSold, item.Status)
		assert.Equal(t, 20.0, item.Cost)
		require.NotNil(t, item.SoldFor)
		assert.Equal(t, 50.0, *item.SoldFor)
	})

	t.Run("defaults to listed without sale evidence", func(t *testing.T) {
		item, ok := parseRow(row("2024-01-01", "", "Desk chair", "25", "70"))
		require.True(t, ok)
		assert.Equal(t, model.StatusListed, item.Status)
		require.NotNil(t, item.ListingPrice)
		assert.Equal(t, 70.0, *item.ListingPrice)
		assert.Nil(t, item.SoldFor)
	})

	t.Run("derived columns are ignored", func(t *testing.T) {
		// Columns 7-11 carry the spreadsheet's own derived values; the
		// imported item recomputes everything from source fields.
		item, ok := parseRow(row("2024-01-01", "2024-01-11", "Lego set", "20", "45", "50",
			"999", "999", "9.99", "9.99", "999", "Sold"))
		require.True(t, ok)
		require.NotNil(t, item.ActualProfit())
		assert.Equal(t, 30.0, *item.ActualProfit())
		require.NotNil(t, item.DaysToSell())
		assert.Equal(t, 10, *item.DaysToSell())
	})
}
