package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"
	"github.com/noahjmorrison/onnaflips/internal/repository"
	ws "github.com/noahjmorrison/onnaflips/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("item not found")

const dateLayout = "2006-01-02"

// DTOs
type ItemRequest struct {
	DateBought   string   `json:"date_bought"` // YYYY-MM-DD, empty = unset
	DateSold     string   `json:"date_sold"`
	Description  string   `json:"description" binding:"required"`
	Cost         float64  `json:"cost" binding:"omitempty,min=0"`
	ListingPrice *float64 `json:"listing_price"`
	SoldFor      *float64 `json:"sold_for"`
	Status       string   `json:"status" binding:"omitempty,oneof=Listed Sold"`
	Notes        *string  `json:"notes"`
}

// ItemResponse carries the stored fields plus every derived field. Derived
// fields are recomputed on each request and serialize as null when their
// preconditions are unmet; consumers rely on that presence/absence.
type ItemResponse struct {
	ID              string   `json:"id"`
	DateBought      *string  `json:"date_bought"`
	DateSold        *string  `json:"date_sold"`
	Description     string   `json:"description"`
	Cost            float64  `json:"cost"`
	ListingPrice    *float64 `json:"listing_price"`
	SoldFor         *float64 `json:"sold_for"`
	Status          string   `json:"status"`
	Notes           *string  `json:"notes"`
	ActualProfit    *float64 `json:"actual_profit"`
	PredictedProfit *float64 `json:"predicted_profit"`
	ActualMargin    *float64 `json:"actual_margin"`
	DaysToSell      *int     `json:"days_to_sell"`
	ProfitPerDay    *float64 `json:"profit_per_day"`
}

type ItemService interface {
	ListItems(ctx context.Context, status string, page, limit int) ([]ItemResponse, int64, error)
	GetItem(ctx context.Context, id string) (ItemResponse, error)
	CreateItem(ctx context.Context, req ItemRequest) (ItemResponse, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error
}

type itemService struct {
	itemRepo repository.ItemRepository
	hub      *ws.Hub
}

func NewItemService(itemRepo repository.ItemRepository, hub *ws.Hub) ItemService {
	return &itemService{itemRepo: itemRepo, hub: hub}
}

func (s *itemService) ListItems(ctx context.Context, status string, page, limit int) ([]ItemResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	items, total, err := s.itemRepo.ListPage(ctx, status, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ItemResponse, 0, len(items))
	for i := range items {
		res = append(res, NewItemResponse(&items[i]))
	}
	return res, total, nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return NewItemResponse(item), nil
}

func (s *itemService) CreateItem(ctx context.Context, req ItemRequest) (ItemResponse, error) {
	item, err := itemFromRequest(req)
	if err != nil {
		return ItemResponse{}, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return ItemResponse{}, fmt.Errorf("create item: %w", err)
	}

	res := NewItemResponse(item)
	s.publish(ws.EventItemCreated, res)
	return res, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req ItemRequest) (ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return ItemResponse{}, err
	}

	updated, err := itemFromRequest(req)
	if err != nil {
		return ItemResponse{}, err
	}
	if updated.Status == "" {
		updated.Status = item.Status
	}
	updated.ID = item.ID
	updated.CreatedAt = item.CreatedAt

	if err := s.itemRepo.Update(ctx, updated); err != nil {
		return ItemResponse{}, fmt.Errorf("update item: %w", err)
	}

	res := NewItemResponse(updated)
	s.publish(ws.EventItemUpdated, res)
	return res, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.publish(ws.EventItemDeleted, NewItemResponse(item))
	return nil
}

func (s *itemService) findItem(ctx context.Context, id string) (*model.Item, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) publish(event string, data any) {
	if s.hub != nil {
		s.hub.Publish(event, data)
	}
}

// NewItemResponse builds the API view of an item with its derived fields.
func NewItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:              item.ID.String(),
		DateBought:      formatDate(item.DateBought),
		DateSold:        formatDate(item.DateSold),
		Description:     item.Description,
		Cost:            item.Cost,
		ListingPrice:    item.ListingPrice,
		SoldFor:         item.SoldFor,
		Status:          item.Status,
		Notes:           item.Notes,
		ActualProfit:    item.ActualProfit(),
		PredictedProfit: item.PredictedProfit(),
		ActualMargin:    item.ActualMargin(),
		DaysToSell:      item.DaysToSell(),
		ProfitPerDay:    item.ProfitPerDay(),
	}
}

func itemFromRequest(req ItemRequest) (*model.Item, error) {
	bought, err := parseDate(req.DateBought)
	if err != nil {
		return nil, err
	}
	sold, err := parseDate(req.DateSold)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusListed
	}
	return &model.Item{
		DateBought:   bought,
		DateSold:     sold,
		Description:  req.Description,
		Cost:         req.Cost,
		ListingPrice: req.ListingPrice,
		SoldFor:      req.SoldFor,
		Status:       status,
		Notes:        req.Notes,
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
