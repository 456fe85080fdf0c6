package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), &c))
	return c
}

type productSeed struct {
	name        string
	description string
	price       int64
	promotion   int64
	unavailable bool
	featured    bool
	createdAt   time.Time
	categories  []models.Category
}

func seedProduct(t *testing.T, db *gorm.DB, seed productSeed) models.Product {
	t.Helper()
	p := models.Product{
		Name:        seed.name,
		Description: seed.description,
		Price:       decimal.NewFromInt(seed.price),
		IsAvailable: !seed.unavailable,
		IsFeatured:  seed.featured,
		CreatedAt:   seed.createdAt,
	}
	if seed.promotion > 0 {
		p.PromotionPrice = decimal.NewNullDecimal(decimal.NewFromInt(seed.promotion))
	}
	ids := make([]string, 0, len(seed.categories))
	for _, c := range seed.categories {
		ids = append(ids, c.ID)
	}
	require.NoError(t, NewProductRepository(db).CreateProduct(context.Background(), &p, ids))
	return p
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}
