package service

import (
	"context"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/analytics"
	"github.com/noahjmorrison/onnaflips/internal/model"
	"github.com/noahjmorrison/onnaflips/internal/repository"
)

type StatsService interface {
	GetSummary(ctx context.Context) (model.SummaryStats, error)
	GetAnalytics(ctx context.Context) (model.DeepAnalytics, error)
}

type statsService struct {
	itemRepo repository.ItemRepository
	now      func() time.Time
}

func NewStatsService(itemRepo repository.ItemRepository) StatsService {
	return &statsService{itemRepo: itemRepo, now: time.Now}
}

// GetSummary re-reads the whole ledger and folds it into the flat summary.
// Nothing is cached; derived values can never drift from stored fields.
func (s *statsService) GetSummary(ctx context.Context) (model.SummaryStats, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return model.SummaryStats{}, err
	}
	return analytics.Summarize(items), nil
}

// GetAnalytics re-reads the whole ledger and computes the deep breakdown.
func (s *statsService) GetAnalytics(ctx context.Context) (model.DeepAnalytics, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return model.DeepAnalytics{}, err
	}
	return analytics.Analyze(items, s.now()), nil
}
