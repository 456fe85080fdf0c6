package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/repositories"
)

const MaxIconRunes = 4

type CategoryInput struct {
	Name        string
	Description string
	Icon        string
}

type CategoryService struct {
	categories repositories.CategoryRepositoryImpl
}

func NewCategoryService(categories repositories.CategoryRepositoryImpl) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *CategoryService) ProductCounts(ctx context.Context) (map[string]int64, error) {
	return s.categories.CountProducts(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := s.validate(ctx, "", &in); err != nil {
		return nil, err
	}
	category := &models.Category{Name: in.Name, Description: in.Description, Icon: in.Icon}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, id, &in); err != nil {
		return nil, err
	}
	category.Name, category.Description, category.Icon = in.Name, in.Description, in.Icon
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete drops the category and its product links; linked products remain.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func (s *CategoryService) validate(ctx context.Context, selfID string, in *CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Icon = strings.TrimSpace(in.Icon)

	if in.Name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(in.Icon) > MaxIconRunes {
		return ErrIconTooLong
	}

	existing, err := s.categories.GetByName(ctx, in.Name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrDuplicateCategory
	}
	return nil
}
