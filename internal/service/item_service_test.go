package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/noahjmorrison/onnaflips/internal/model"
	"github.com/noahjmorrison/onnaflips/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testItemService(t *testing.T) ItemService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Item{}))
	return NewItemService(repository.NewItemRepository(db), nil)
}

func TestItemServiceCreateComputesDerivedFields(t *testing.T) {
	svc := testItemService(t)

	created, err := svc.CreateItem(context.Background(), ItemRequest{
		DateBought:   "2024-01-01",
		Description:  "Lego set",
		Cost:         20,
		ListingPrice: fpt(45),
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusListed, created.Status)
	require.NotNil(t, created.DateBought)
	assert.Equal(t, "2024-01-01", *created.DateBought)
	require.NotNil(t, created.PredictedProfit)
	assert.Equal(t, 25.0, *created.PredictedProfit)
	assert.Nil(t, created.ActualProfit)
	assert.Nil(t, created.DaysToSell)
}

func TestItemServiceStatusTransition(t *testing.T) {
	svc := testItemService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, ItemRequest{
		DateBought:   "2024-01-01",
		Description:  "Lego set",
		Cost:         20,
		ListingPrice: fpt(45),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, created.ID, ItemRequest{
		DateBought:   "2024-01-01",
		DateSold:     "2024-01-11",
		Description:  "Lego set",
		Cost:         20,
		ListingPrice: fpt(45),
		SoldFor:      fpt(50),
		Status:       model.StatusSold,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSold, updated.Status)
	require.NotNil(t, updated.ActualProfit)
	assert.Equal(t, 30.0, *updated.ActualProfit)
	require.NotNil(t, updated.DaysToSell)
	assert.Equal(t, 10, *updated.DaysToSell)
	// The estimate goes away on sale even though the listing price stays.
	assert.Nil(t, updated.PredictedProfit)

	fetched, err := svc.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, fetched.Status)
}

func TestItemServiceRejectsBadDates(t *testing.T) {
	svc := testItemService(t)

	_, err := svc.CreateItem(context.Background(), ItemRequest{
		Description: "Bad date",
		DateBought:  "01/02/2024",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestItemServiceNotFound(t *testing.T) {
	svc := testItemService(t)
	ctx := context.Background()

	_, err := svc.GetItem(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.GetItem(ctx, "7f6c3f1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = svc.DeleteItem(ctx, "7f6c3f1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemServiceDelete(t *testing.T) {
	svc := testItemService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, ItemRequest{Description: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, created.ID))

	_, err = svc.GetItem(ctx, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	items, total, err := svc.ListItems(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), total)
}
