package seeders

import (
	"context"

	"github.com/ghecrochet/storefront/app/db/fakers"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultProductCount = 24

// DBSeed inserts the demo categories when missing, then count fake products.
func DBSeed(ctx context.Context, db *gorm.DB, count int) error {
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)

	var categories []models.Category
	for _, c := range fakers.CategoryFaker() {
		existing, err := categoryRepo.GetByName(ctx, c.Name)
		if err != nil {
			return err
		}
		if existing == nil {
			category := c
			if err := categoryRepo.Create(ctx, &category); err != nil {
				return errors.Wrapf(err, "seed category %s", c.Name)
			}
			existing = &category
		}
		categories = append(categories, *existing)
	}

	for i := 0; i < count; i++ {
		product, categoryIDs := fakers.ProductFaker(categories)
		if err := productRepo.CreateProduct(ctx, product, categoryIDs); err != nil {
			return errors.Wrapf(err, "seed product %d", i+1)
		}
	}

	zap.S().Infof("DBSeed: %d categories, %d products", len(categories), count)
	return nil
}
