package migrations

import (
	"github.com/ghecrochet/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Categories", &models.ProductCategory{}); err != nil {
		return err
	}
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.ProductCategory{}, &models.SiteSetting{})
}
