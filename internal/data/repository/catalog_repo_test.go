package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var categoryRowColumns = []string{"id", "english_name", "arabic_name", "is_group", "parent", "image", "disabled", "created_at", "updated_at"}

func TestCategoryRepository_FindGroups(t *testing.T) {
	pool := newMockPool(t)
	repo := NewCategoryRepository(pool, zap.NewNop())
	id := uuid.New()
	now := time.Now()

	pool.ExpectQuery("is_group = true").
		WillReturnRows(pgxmock.NewRows(categoryRowColumns).
			AddRow(id, "Hair", "شعر", true, nil, strPtr("/files/hair.png"), false, now, now))

	got, err := repo.FindGroups(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.True(t, got[0].IsGroup)
	assert.Nil(t, got[0].Parent)
	assert.Equal(t, "/files/hair.png", *got[0].Image)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCategoryRepository_FindByParent(t *testing.T) {
	pool := newMockPool(t)
	repo := NewCategoryRepository(pool, zap.NewNop())
	parent, child := uuid.New(), uuid.New()
	now := time.Now()

	pool.ExpectQuery("parent = \\$1").
		WithArgs(parent).
		WillReturnRows(pgxmock.NewRows(categoryRowColumns).
			AddRow(child, "Cut", "قص", false, &parent, nil, false, now, now))

	got, err := repo.FindByParent(context.Background(), parent)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, parent, *got[0].Parent)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCategoryRepository_QueryError(t *testing.T) {
	pool := newMockPool(t)
	repo := NewCategoryRepository(pool, zap.NewNop())

	pool.ExpectQuery("FROM categories").WillReturnError(errors.New("conn closed"))

	_, err := repo.FindGroups(context.Background())
	assert.ErrorContains(t, err, "list categories")
}

func TestServiceRepository_FindPrice(t *testing.T) {
	pool := newMockPool(t)
	repo := NewServiceRepository(pool, zap.NewNop())
	priced, unpriced, missing := uuid.New(), uuid.New(), uuid.New()

	pool.ExpectQuery("SELECT price FROM services").
		WithArgs(priced).
		WillReturnRows(pgxmock.NewRows([]string{"price"}).AddRow(floatPtr(45)))
	pool.ExpectQuery("SELECT price FROM services").
		WithArgs(unpriced).
		WillReturnRows(pgxmock.NewRows([]string{"price"}).AddRow(nil))
	pool.ExpectQuery("SELECT price FROM services").
		WithArgs(missing).
		WillReturnError(pgx.ErrNoRows)

	price, found, err := repo.FindPrice(context.Background(), priced)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 45.0, price)

	_, found, err = repo.FindPrice(context.Background(), unpriced)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = repo.FindPrice(context.Background(), missing)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestServiceRepository_FindAllPassesFilter(t *testing.T) {
	pool := newMockPool(t)
	repo := NewServiceRepository(pool, zap.NewNop())
	category := uuid.New()
	filter := ServiceFilter{CategoryID: &category, Search: "cut"}

	pool.ExpectQuery("FROM services").
		WithArgs(filter.CategoryID, filter.SubcategoryID, "cut").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "english_name", "arabic_name", "english_description", "arabic_description",
			"price", "duration", "category", "subcategory", "image", "disabled", "created_at", "updated_at",
		}))

	services, err := repo.FindAll(context.Background(), filter)

	require.NoError(t, err)
	assert.Empty(t, services)
	assert.NoError(t, pool.ExpectationsWereMet())
}
