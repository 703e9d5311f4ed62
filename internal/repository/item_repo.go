package repository

import (
	"context"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository is the ledger's store boundary. The analytics side only
// depends on the two List reads; the rest serves the CRUD surface and the
// bulk importer.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	CreateBatch(ctx context.Context, items []model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListAll(ctx context.Context) ([]model.Item, error)
	ListByStatus(ctx context.Context, status string) ([]model.Item, error)
	ListPage(ctx context.Context, status string, offset, limit int) ([]model.Item, int64, error)
	ListSoldBetween(ctx context.Context, start, end *time.Time) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *itemRepository) CreateBatch(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Item{}).Error
}

func (r *itemRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := GetDB(ctx, r.db).Where("1 = 1").Delete(&model.Item{})
	return res.RowsAffected, res.Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAll returns every item in insertion order. Aggregations iterate this
// slice directly, so the ordering doubles as the tie-break order for all
// top-N rankings.
func (r *itemRepository) ListAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := GetDB(ctx, r.db).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListByStatus(ctx context.Context, status string) ([]model.Item, error) {
	var items []model.Item
	if err := GetDB(ctx, r.db).Where("status = ?", status).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPage returns the inventory page ordered newest purchase first with
// undated items last. The expression form of the NULLS LAST ordering works
// on both postgres and sqlite.
func (r *itemRepository) ListPage(ctx context.Context, status string, offset, limit int) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Item{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("date_bought IS NULL, date_bought DESC").
		Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListSoldBetween returns sold items whose sale date falls in the closed
// range, ordered by sale date. Nil bounds are open ends.
func (r *itemRepository) ListSoldBetween(ctx context.Context, start, end *time.Time) ([]model.Item, error) {
	db := GetDB(ctx, r.db).Where("status = ?", model.StatusSold)
	if start != nil {
		db = db.Where("date_sold >= ?", *start)
	}
	if end != nil {
		db = db.Where("date_sold <= ?", *end)
	}
	var items []model.Item
	if err := db.Order("date_sold asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
