package services

import "github.com/pkg/errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrNoCategories      = errors.New("at least one category is required")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrIconTooLong       = errors.New("category icon is too long")
	ErrEmptyName         = errors.New("name is required")

	ErrTooManyImages        = errors.New("product already holds the maximum number of images")
	ErrNoImageFiles         = errors.New("no image files given")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image file too large")
	ErrUnknownSiteImage     = errors.New("unknown site image slot")
)
