package repositories

import (
	"context"
	"testing"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	toys := seedCategory(t, db, "Thú bông")
	bags := seedCategory(t, db, "Amigurumi")
	seedProduct(t, db, productSeed{name: "Gấu", price: 1, createdAt: base, categories: []models.Category{toys, bags}})
	seedProduct(t, db, productSeed{name: "Thỏ", price: 1, createdAt: base, categories: []models.Category{toys}})

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Amigurumi", all[0].Name)

	byName, err := repo.GetByName(ctx, "Thú bông")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, toys.ID, byName.ID)

	missing, err := repo.GetByName(ctx, "thú bông")
	require.NoError(t, err)
	assert.Nil(t, missing)

	counts, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[toys.ID])
	assert.EqualValues(t, 1, counts[bags.ID])

	found, err := repo.GetByIDs(ctx, []string{toys.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	toys.Icon = "🧸"
	require.NoError(t, repo.Update(ctx, &toys))
	reloaded, err := repo.GetByID(ctx, toys.ID)
	require.NoError(t, err)
	assert.Equal(t, "🧸", reloaded.Icon)

	require.NoError(t, repo.Delete(ctx, toys.ID))
	gone, err := repo.GetByID(ctx, toys.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	counts, err = repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts[toys.ID])

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.EqualValues(t, 2, products)
}
