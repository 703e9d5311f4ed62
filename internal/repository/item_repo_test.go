package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) ItemRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Item{}))
	return NewItemRepository(db)
}

func fp(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestItemRepositoryCRUD(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	item := &model.Item{
		Description:  "Vintage dresser",
		Cost:         40,
		ListingPrice: fp(120),
		Status:       model.StatusListed,
		DateBought:   date(2024, time.March, 1),
	}
	require.NoError(t, repo.Create(ctx, item))
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", item.ID.String())

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vintage dresser", found.Description)
	assert.Equal(t, 40.0, found.Cost)
	require.NotNil(t, found.ListingPrice)
	assert.Equal(t, 120.0, *found.ListingPrice)

	found.Status = model.StatusSold
	found.SoldFor = fp(110)
	found.DateSold = date(2024, time.March, 15)
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, updated.Status)
	require.NotNil(t, updated.SoldFor)
	assert.Equal(t, 110.0, *updated.SoldFor)

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemRepositoryListByStatus(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Item{Description: "Sold one", Status: model.StatusSold, SoldFor: fp(20)}))
	require.NoError(t, repo.Create(ctx, &model.Item{Description: "Listed one", Status: model.StatusListed}))
	require.NoError(t, repo.Create(ctx, &model.Item{Description: "Listed two", Status: model.StatusListed}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	listed, err := repo.ListByStatus(ctx, model.StatusListed)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Listed one", listed[0].Description)
	assert.Equal(t, "Listed two", listed[1].Description)
}

func TestItemRepositoryListPageOrdering(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Item{Description: "Old", DateBought: date(2024, time.January, 1)}))
	require.NoError(t, repo.Create(ctx, &model.Item{Description: "Undated"}))
	require.NoError(t, repo.Create(ctx, &model.Item{Description: "New", DateBought: date(2024, time.June, 1)}))

	items, total, err := repo.ListPage(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	// Newest purchase first, undated items pushed to the end.
	assert.Equal(t, "New", items[0].Description)
	assert.Equal(t, "Old", items[1].Description)
	assert.Equal(t, "Undated", items[2].Description)
}

func TestItemRepositoryListSoldBetween(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Item{
		Description: "January sale", Status: model.StatusSold,
		SoldFor: fp(10), DateSold: date(2024, time.January, 15),
	}))
	require.NoError(t, repo.Create(ctx, &model.Item{
		Description: "March sale", Status: model.StatusSold,
		SoldFor: fp(20), DateSold: date(2024, time.March, 10),
	}))
	require.NoError(t, repo.Create(ctx, &model.Item{
		Description: "Still listed", Status: model.StatusListed,
	}))

	start := date(2024, time.February, 1)
	inRange, err := repo.ListSoldBetween(ctx, start, nil)
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "March sale", inRange[0].Description)

	all, err := repo.ListSoldBetween(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "January sale", all[0].Description)
}

func TestItemRepositoryDeleteAll(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Item{Description: "A"}))
	require.NoError(t, repo.Create(ctx, &model.Item{Description: "B"}))

	cleared, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
