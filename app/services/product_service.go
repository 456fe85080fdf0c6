package services

import (
	"context"
	"strings"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/storage"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput carries the admin-editable fields of a product.
type ProductInput struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	PromotionPrice   decimal.NullDecimal
	Materials        string
	SizeInfo         string
	CareInstructions string
	IsAvailable      bool
	IsFeatured       bool
	CategoryIDs      []string
}

type ProductService struct {
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	bucket     storage.Bucket
}

func NewProductService(
	products repositories.ProductRepositoryImpl,
	categories repositories.CategoryRepositoryImpl,
	bucket storage.Bucket,
) *ProductService {
	return &ProductService{products: products, categories: categories, bucket: bucket}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	categoryIDs, err := s.validate(ctx, &in)
	if err != nil {
		return nil, err
	}

	product := &models.Product{Images: []string{}}
	apply(product, in)
	if err := s.products.CreateProduct(ctx, product, categoryIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

// Update rewrites the editable fields and replaces the whole category set.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := s.validate(ctx, &in)
	if err != nil {
		return nil, err
	}

	apply(product, in)
	if err := s.products.UpdateProduct(ctx, product, categoryIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the product row, then its stored images. A failed image
// delete is logged and does not fail the call.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}

	names := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		names = append(names, storage.NameFromURL(img))
	}
	if len(names) > 0 {
		if err := s.bucket.Delete(ctx, names...); err != nil {
			zap.S().Warnf("Delete: images of product %s left in storage: %v", id, err)
		}
	}
	return nil
}

func (s *ProductService) validate(ctx context.Context, in *ProductInput) ([]string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrEmptyName
	}
	if in.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if in.PromotionPrice.Valid && in.PromotionPrice.Decimal.IsNegative() {
		return nil, ErrInvalidPrice
	}

	ids := uniqueNonEmpty(in.CategoryIDs)
	if len(ids) == 0 {
		return nil, ErrNoCategories
	}
	found, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, errors.Wrapf(ErrUnknownCategory, "%d of %d categories exist", len(found), len(ids))
	}
	return ids, nil
}

func apply(product *models.Product, in ProductInput) {
	product.Name = in.Name
	product.Description = strings.TrimSpace(in.Description)
	product.Price = in.Price
	product.PromotionPrice = in.PromotionPrice
	product.Materials = strings.TrimSpace(in.Materials)
	product.SizeInfo = strings.TrimSpace(in.SizeInfo)
	product.CareInstructions = strings.TrimSpace(in.CareInstructions)
	product.IsAvailable = in.IsAvailable
	product.IsFeatured = in.IsFeatured
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
