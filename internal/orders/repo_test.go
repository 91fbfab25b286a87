package orders

import (
	"context"
	"testing"
	"time"

	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_group_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_per_item NUMERIC NOT NULL,
  ordered_at DATETIME NOT NULL
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func orderRow(userID, groupID uuid.UUID, name string, orderedAt time.Time) models.Order {
	return models.Order{
		OrderGroupID: groupID,
		UserID:       userID,
		ProductName:  name,
		Quantity:     1,
		PricePerItem: decimal.RequireFromString("4.50"),
		OrderedAt:    orderedAt,
	}
}

func TestCreateAllAssignsIDs(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	groupID := uuid.New()

	rows := []models.Order{
		orderRow(userID, groupID, "Aloe", time.Now().UTC()),
		orderRow(userID, groupID, "Basil", time.Now().UTC()),
	}
	require.NoError(t, repo.CreateAll(context.Background(), rows))

	stored, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEqual(t, uuid.Nil, stored[0].ID)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestCreateAllWithNoRowsIsNoop(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.CreateAll(context.Background(), nil))
}

func TestListByUserReturnsNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateAll(context.Background(), []models.Order{
		orderRow(userID, uuid.New(), "oldest", base.Add(-48*time.Hour)),
		orderRow(userID, uuid.New(), "newest", base),
		orderRow(userID, uuid.New(), "middle", base.Add(-24*time.Hour)),
	}))

	rows, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "newest", rows[0].ProductName)
	assert.Equal(t, "middle", rows[1].ProductName)
	assert.Equal(t, "oldest", rows[2].ProductName)
}

func TestListByUserIgnoresOtherUsers(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, repo.CreateAll(context.Background(), []models.Order{
		orderRow(alice, uuid.New(), "hers", time.Now().UTC()),
		orderRow(bob, uuid.New(), "his", time.Now().UTC()),
	}))

	rows, err := repo.ListByUser(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hers", rows[0].ProductName)
}

func TestCountByGroup(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	groupID := uuid.New()

	require.NoError(t, repo.CreateAll(context.Background(), []models.Order{
		orderRow(userID, groupID, "one", time.Now().UTC()),
		orderRow(userID, groupID, "two", time.Now().UTC()),
		orderRow(userID, uuid.New(), "other group", time.Now().UTC()),
	}))

	count, err := repo.CountByGroup(context.Background(), groupID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
