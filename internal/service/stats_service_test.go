package service

import (
	"context"
	"testing"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"
	"github.com/noahjmorrison/onnaflips/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubItemRepo serves a fixed snapshot; the stats service only ever reads.
type stubItemRepo struct {
	items []model.Item
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

func (s *stubItemRepo) Create(ctx context.Context, item *model.Item) error        { return nil }
func (s *stubItemRepo) CreateBatch(ctx context.Context, items []model.Item) error { return nil }
func (s *stubItemRepo) Update(ctx context.Context, item *model.Item) error        { return nil }
func (s *stubItemRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (s *stubItemRepo) DeleteAll(ctx context.Context) (int64, error)              { return 0, nil }
func (s *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return nil, nil
}

func (s *stubItemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	return s.items, nil
}

func (s *stubItemRepo) ListByStatus(ctx context.Context, status string) ([]model.Item, error) {
	var out []model.Item
	for _, it := range s.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *stubItemRepo) ListPage(ctx context.Context, status string, offset, limit int) ([]model.Item, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func (s *stubItemRepo) ListSoldBetween(ctx context.Context, start, end *time.Time) ([]model.Item, error) {
	return s.ListByStatus(ctx, model.StatusSold)
}

func fpt(v float64) *float64 { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestStatsServiceGetSummary(t *testing.T) {
	repo := &stubItemRepo{items: []model.Item{
		{
			Description: "Lego set", Cost: 20, SoldFor: fpt(50), Status: model.StatusSold,
			DateBought: datePtr(2024, time.January, 1), DateSold: datePtr(2024, time.January, 11),
		},
		{Description: "Desk chair", Cost: 30, ListingPrice: fpt(90), Status: model.StatusListed},
	}}
	svc := NewStatsService(repo)

	stats, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.SoldCount)
	assert.Equal(t, 1, stats.ListedCount)
	assert.Equal(t, 30.0, stats.TotalProfit)
	assert.Equal(t, 60.0, stats.PredictedProfit)
	require.Len(t, stats.TopItems, 1)
	assert.Equal(t, "Lego set", stats.TopItems[0].Description)
}

func TestStatsServiceGetAnalyticsUsesInjectedClock(t *testing.T) {
	repo := &stubItemRepo{items: []model.Item{
		{Description: "Shelf warmer", Cost: 10, Status: model.StatusListed,
			DateBought: datePtr(2024, time.January, 1)},
	}}
	svc := &statsService{
		itemRepo: repo,
		now: func() time.Time {
			return time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
		},
	}

	deep, err := svc.GetAnalytics(context.Background())
	require.NoError(t, err)

	require.Len(t, deep.InventoryAging, 1)
	assert.Equal(t, 91, deep.InventoryAging[0].DaysHeld)
	assert.Equal(t, model.AgingStale, deep.InventoryAging[0].Tier)
}

func TestStatsServiceEmptyLedger(t *testing.T) {
	svc := NewStatsService(&stubItemRepo{})

	stats, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalItems)
	assert.NotNil(t, stats.MonthlyProfit)

	deep, err := svc.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deep.BestFlips)
	assert.Equal(t, "N/A", deep.Scorecard.BiggestWin)
}
