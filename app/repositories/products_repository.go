package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows the storefront listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ProductRepositoryImpl interface {
	Search(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetDiscountedProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetRelatedProducts(ctx context.Context, product *models.Product, limit int) ([]models.Product, error)
	GetAvailableForSitemap(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product, categoryIDs []string) error
	UpdateProduct(ctx context.Context, product *models.Product, categoryIDs []string) error
	DeleteProduct(ctx context.Context, id string) error
	ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error
	UpdateImages(ctx context.Context, productID string, images []string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

// editableColumns are written by the admin form; images are owned by the image manager.
var editableColumns = []string{
	"name", "description", "price", "promotion_price", "materials",
	"size_info", "care_instructions", "is_available", "is_featured", "updated_at",
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.name ASC")
	})
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("products.created_at DESC").Order("products.id DESC")
}

// likeEscaper makes the search term match literally. '!' is the escape
// character because MySQL and SQLite disagree on backslashes in literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// catalogScope applies the storefront predicates. The category predicate uses
// inner joins so a product without a matching category row is excluded.
func catalogScope(filter ProductFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("products.is_available = ?", true)

		if filter.Category != "" {
			db = db.
				Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Joins("JOIN categories c ON c.id = pc.category_id").
				Where("c.name = ?", filter.Category)
		}

		if filter.Search != "" {
			keyword := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
			db = db.Where("(LOWER(products.name) LIKE ? ESCAPE '!' OR LOWER(products.description) LIKE ? ESCAPE '!')", keyword, keyword)
		}
		return db
	}
}

func (p *productRepository) Search(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(catalogScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count catalog products")
	}

	query := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(catalogScope(filter), preloadCategories, newestFirst)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, 0, errors.Wrap(err, "find catalog products")
	}
	return products, total, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Scopes(preloadCategories).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get product %s", id)
	}
	return &product, nil
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).
		Scopes(preloadCategories, newestFirst).
		Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (p *productRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Scopes(preloadCategories, newestFirst).
		Where("is_featured = ? AND is_available = ?", true, true).
		Limit(limit).
		Find(&products).Error
	return products, errors.Wrap(err, "featured products")
}

func (p *productRepository) GetDiscountedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Scopes(preloadCategories, newestFirst).
		Where("promotion_price IS NOT NULL AND promotion_price > 0").
		Where("is_available = ?", true).
		Limit(limit).
		Find(&products).Error
	return products, errors.Wrap(err, "discounted products")
}

func (p *productRepository) GetRelatedProducts(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	categoryIDs := product.CategoryIDs()
	if len(categoryIDs) == 0 {
		return []models.Product{}, nil
	}

	sharedCategory := p.db.Model(&models.ProductCategory{}).
		Select("product_id").
		Where("category_id IN ?", categoryIDs)

	var products []models.Product
	err := p.db.WithContext(ctx).
		Scopes(preloadCategories, newestFirst).
		Where("is_available = ?", true).
		Where("id <> ?", product.ID).
		Where("id IN (?)", sharedCategory).
		Limit(limit).
		Find(&products).Error
	return products, errors.Wrapf(err, "related products for %s", product.ID)
}

func (p *productRepository) GetAvailableForSitemap(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Select("id", "updated_at").
		Where("is_available = ?", true).
		Order("updated_at DESC").
		Find(&products).Error
	return products, errors.Wrap(err, "sitemap products")
}

func (p *productRepository) CreateProduct(ctx context.Context, product *models.Product, categoryIDs []string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return errors.Wrap(err, "create product")
		}
		return replaceCategories(tx, product.ID, categoryIDs)
	})
}

func (p *productRepository) UpdateProduct(ctx context.Context, product *models.Product, categoryIDs []string) error {
	product.UpdatedAt = time.Now()
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).
			Select(editableColumns).
			Omit(clause.Associations).
			Updates(product).Error; err != nil {
			return errors.Wrapf(err, "update product %s", product.ID)
		}
		return replaceCategories(tx, product.ID, categoryIDs)
	})
}

func (p *productRepository) DeleteProduct(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return errors.Wrapf(err, "delete categories of product %s", id)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return errors.Wrapf(err, "delete product %s", id)
		}
		return nil
	})
}

func (p *productRepository) ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceCategories(tx, productID, categoryIDs)
	})
}

// replaceCategories drops every association of the product before inserting
// the new set; there is no merge with the previous rows.
func replaceCategories(tx *gorm.DB, productID string, categoryIDs []string) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return errors.Wrapf(err, "clear categories of product %s", productID)
	}

	seen := make(map[string]bool, len(categoryIDs))
	rows := make([]models.ProductCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.ProductCategory{ProductID: productID, CategoryID: id})
	}
	if len(rows) == 0 {
		return nil
	}

	if err := tx.Create(&rows).Error; err != nil {
		return errors.Wrapf(err, "insert categories of product %s", productID)
	}
	return nil
}

func (p *productRepository) UpdateImages(ctx context.Context, productID string, images []string) error {
	if images == nil {
		images = []string{}
	}
	result := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Select("images", "updated_at").
		Updates(&models.Product{Images: images, UpdatedAt: time.Now()})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update images of product %s", productID)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(gorm.ErrRecordNotFound, "update images of product %s", productID)
	}
	return nil
}
