package services

import (
	"context"
	"math"
	"net/url"
	"strings"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	DefaultPageSize   = 12
	FeaturedLimit     = 6
	DiscountedLimit   = 6
	RelatedLimit      = 4
	FallbackHomeImage = "/static/main-image.jpg"

	// MaxPage bounds the requested page so the row offset stays representable.
	MaxPage = math.MaxInt32
)

// CatalogQuery is the storefront filter state of one request.
type CatalogQuery struct {
	Category string
	Search   string
	Page     int
}

// NewCatalogQuery reads category, search and page from the request values.
// A missing, unparsable or non-positive page becomes 1; larger pages are
// capped at MaxPage.
func NewCatalogQuery(values url.Values) CatalogQuery {
	page := cast.ToInt64(strings.TrimSpace(values.Get("page")))
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return CatalogQuery{
		Category: strings.TrimSpace(values.Get("category")),
		Search:   strings.TrimSpace(values.Get("search")),
		Page:     int(page),
	}
}

// Values renders the query back into URL values, omitting empty fields.
func (q CatalogQuery) Values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

type CatalogPage struct {
	Items      []models.Product
	TotalCount int64
	Page       int
	PageSize   int
}

func (p CatalogPage) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

type HomeContent struct {
	HeroImage        string
	CustomOrderImage string
	Featured         []models.Product
	Discounted       []models.Product
}

type CatalogService struct {
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	settings   repositories.SiteSettingRepositoryImpl
	pageSize   int
}

func NewCatalogService(
	products repositories.ProductRepositoryImpl,
	categories repositories.CategoryRepositoryImpl,
	settings repositories.SiteSettingRepositoryImpl,
	pageSize int,
) *CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &CatalogService{products: products, categories: categories, settings: settings, pageSize: pageSize}
}

func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// Browse runs the storefront listing. Failures are logged and surface as an
// empty page so the caller can render the empty state.
func (s *CatalogService) Browse(ctx context.Context, q CatalogQuery) CatalogPage {
	page := CatalogPage{Items: []models.Product{}, Page: q.Page, PageSize: s.pageSize}
	if page.Page < 1 {
		page.Page = 1
	}

	items, total, err := s.products.Search(ctx, repositories.ProductFilter{
		Category: q.Category,
		Search:   q.Search,
		Limit:    s.pageSize,
		Offset:   pageOffset(page.Page, s.pageSize),
	})
	if err != nil {
		zap.S().Errorf("Browse: failed to query catalog (category=%q search=%q page=%d): %v", q.Category, q.Search, page.Page, err)
		return page
	}

	if items != nil {
		page.Items = items
	}
	page.TotalCount = total
	return page
}

// pageOffset is the row offset of page, clamped to math.MaxInt32 rows. A
// clamped offset is past any real catalog, so the page comes back empty with
// its total count intact.
func pageOffset(page, size int) int {
	offset := (int64(page) - 1) * int64(size)
	if page > MaxPage || offset < 0 || offset > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(offset)
}

// Product looks a product up by id whatever its availability.
func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) Related(ctx context.Context, product *models.Product) []models.Product {
	related, err := s.products.GetRelatedProducts(ctx, product, RelatedLimit)
	if err != nil {
		zap.S().Warnf("Related: failed to load related products for %s: %v", product.ID, err)
		return []models.Product{}
	}
	return related
}

func (s *CatalogService) Categories(ctx context.Context) []models.Category {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		zap.S().Warnf("Categories: failed to load categories: %v", err)
		return []models.Category{}
	}
	return categories
}

func (s *CatalogService) Home(ctx context.Context) HomeContent {
	home := HomeContent{
		HeroImage:        FallbackHomeImage,
		CustomOrderImage: FallbackHomeImage,
		Featured:         []models.Product{},
		Discounted:       []models.Product{},
	}

	images, err := s.settings.GetByKeys(ctx, models.SiteImageSlots)
	if err != nil {
		zap.S().Warnf("Home: failed to load site images: %v", err)
	} else {
		if v, ok := images[models.SettingHomeHeroImage]; ok {
			home.HeroImage = v
		}
		if v, ok := images[models.SettingHomeCustomOrderImage]; ok {
			home.CustomOrderImage = v
		}
	}

	if featured, err := s.products.GetFeaturedProducts(ctx, FeaturedLimit); err != nil {
		zap.S().Warnf("Home: failed to load featured products: %v", err)
	} else if featured != nil {
		home.Featured = featured
	}

	if discounted, err := s.products.GetDiscountedProducts(ctx, DiscountedLimit); err != nil {
		zap.S().Warnf("Home: failed to load discounted products: %v", err)
	} else if discounted != nil {
		home.Discounted = discounted
	}
	return home
}

func (s *CatalogService) SitemapProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAvailableForSitemap(ctx)
}
