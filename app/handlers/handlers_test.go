package handlers

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/migrations"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/pagination"
	"github.com/ghecrochet/storefront/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	db         *gorm.DB
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	router     *mux.Router
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))

	app := &testApp{
		db:         db,
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
	}
	catalog := services.NewCatalogService(app.products, app.categories, repositories.NewSiteSettingRepository(db), 0)
	render := renderer.New("../../templates", false)

	products := NewProductHandler(catalog, render)
	sitemap := NewSitemapHandler(render, catalog, app.categories, "https://ghecrochet.vn/")

	app.router = mux.NewRouter()
	app.router.HandleFunc("/products", products.Products).Methods("GET")
	app.router.HandleFunc("/products/{id}", products.ProductDetail).Methods("GET")
	app.router.HandleFunc("/sitemap.xml", sitemap.Sitemap).Methods("GET")
	return app
}

func (a *testApp) category(t *testing.T, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, a.categories.Create(context.Background(), &c))
	return c
}

func (a *testApp) product(t *testing.T, name string, available bool, cats ...models.Category) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.NewFromInt(150000), IsAvailable: available}
	var ids []string
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	require.NoError(t, a.products.CreateProduct(context.Background(), &p, ids))
	return p
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestProductsFiltersByCategory(t *testing.T) {
	app := newTestApp(t)
	amigurumi := app.category(t, "Amigurumi")
	keychain := app.category(t, "Keychain")
	app.product(t, "Brown Bear", true, amigurumi)
	app.product(t, "Blue Keyring", true, keychain)

	rec := app.get("/products?category=Amigurumi")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Brown Bear")
	assert.NotContains(t, body, "Blue Keyring")
}

func TestProductsEmptyState(t *testing.T) {
	app := newTestApp(t)
	app.category(t, "Amigurumi")

	rec := app.get("/products?search=nothing-matches")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Không tìm thấy sản phẩm phù hợp.")
}

func TestProductDetail(t *testing.T) {
	app := newTestApp(t)
	amigurumi := app.category(t, "Amigurumi")
	bear := app.product(t, "Brown Bear", true, amigurumi)
	app.product(t, "Grey Bunny", true, amigurumi)

	rec := app.get("/products/" + bear.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brown Bear")
	assert.Contains(t, rec.Body.String(), "Grey Bunny")

	assert.Equal(t, http.StatusNotFound, app.get("/products/missing").Code)
}

func TestSitemap(t *testing.T) {
	app := newTestApp(t)
	lucky := app.category(t, "Lucky Box - Hộp Quà May Mắn")
	bear := app.product(t, "Brown Bear", true, lucky)
	hidden := app.product(t, "Hidden", false, lucky)

	rec := app.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	var set urlSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))

	byLoc := map[string]sitemapURL{}
	for _, u := range set.URLs {
		byLoc[u.Loc] = u
	}

	assert.Contains(t, byLoc, "https://ghecrochet.vn/")
	assert.Contains(t, byLoc, "https://ghecrochet.vn/contact")

	productURL, ok := byLoc["https://ghecrochet.vn/products/"+bear.ID]
	require.True(t, ok)
	assert.Equal(t, 0.8, productURL.Priority)
	assert.Equal(t, bear.UpdatedAt.UTC().Format(time.RFC3339), productURL.LastMod)
	assert.NotContains(t, byLoc, "https://ghecrochet.vn/products/"+hidden.ID)

	categoryLoc := "https://ghecrochet.vn" + pagination.PageURL("/products", services.CatalogQuery{Category: lucky.Name}.Values(), 1)
	assert.Contains(t, byLoc, categoryLoc)
	assert.NotContains(t, categoryLoc, " ")
}
