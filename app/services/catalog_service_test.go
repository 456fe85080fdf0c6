package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogQuery(t *testing.T) {
	q := NewCatalogQuery(url.Values{"category": {"  Amigurumi "}, "search": {" gấu "}, "page": {"3"}})
	assert.Equal(t, CatalogQuery{Category: "Amigurumi", Search: "gấu", Page: 3}, q)

	for _, raw := range []string{"", "0", "-2", "abc"} {
		assert.Equal(t, 1, NewCatalogQuery(url.Values{"page": {raw}}).Page, raw)
	}

	assert.Equal(t, MaxPage, NewCatalogQuery(url.Values{"page": {"1000000000000000000"}}).Page)

	assert.Equal(t, url.Values{"category": {"Amigurumi"}, "search": {"gấu"}}, q.Values())
	assert.Empty(t, CatalogQuery{Page: 2}.Values())
}

func TestCatalogPageTotalPages(t *testing.T) {
	assert.Equal(t, 2, CatalogPage{TotalCount: 14, PageSize: 12}.TotalPages())
	assert.Equal(t, 1, CatalogPage{TotalCount: 12, PageSize: 12}.TotalPages())
	assert.Equal(t, 0, CatalogPage{TotalCount: 0, PageSize: 12}.TotalPages())
}

func TestBrowsePages(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Amigurumi")
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 14; i++ {
		f.product(t, fmt.Sprintf("P%02d", i), start.Add(time.Duration(i)*time.Minute), nil, c)
	}
	svc := NewCatalogService(f.products, f.categories, f.settings, 12)
	ctx := context.Background()

	first := svc.Browse(ctx, CatalogQuery{Page: 1})
	assert.Len(t, first.Items, 12)
	assert.EqualValues(t, 14, first.TotalCount)
	assert.Equal(t, 2, first.TotalPages())

	second := svc.Browse(ctx, CatalogQuery{Page: 2})
	require.Len(t, second.Items, 2)
	assert.Equal(t, "P02", second.Items[0].Name)
	assert.Equal(t, "P01", second.Items[1].Name)

	past := svc.Browse(ctx, CatalogQuery{Page: 5})
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)
	assert.EqualValues(t, 14, past.TotalCount)

	for _, q := range []CatalogQuery{
		NewCatalogQuery(url.Values{"page": {"1000000000000000000"}}),
		{Page: math.MaxInt},
	} {
		far := svc.Browse(ctx, q)
		assert.Empty(t, far.Items, "page %d", q.Page)
		assert.EqualValues(t, 14, far.TotalCount, "page %d", q.Page)
	}

	none := svc.Browse(ctx, CatalogQuery{Category: "Không có", Page: 1})
	assert.Empty(t, none.Items)
	assert.Zero(t, none.TotalCount)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 12))
	assert.Equal(t, 12, pageOffset(2, 12))
	assert.Equal(t, math.MaxInt32, pageOffset(MaxPage, 12))
	assert.Equal(t, math.MaxInt32, pageOffset(math.MaxInt, 12))
}

func TestBrowseFailureIsEmptyPage(t *testing.T) {
	f := newFixture(t)
	f.product(t, "P", time.Now(), nil)
	f.products.failSearch = true
	svc := NewCatalogService(f.products, f.categories, f.settings, 12)

	page := svc.Browse(context.Background(), CatalogQuery{Page: 2})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalCount)
	assert.Equal(t, 2, page.Page)
}

func TestHomeFallsBackToDefaultImage(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.products, f.categories, f.settings, 12)
	ctx := context.Background()

	home := svc.Home(ctx)
	assert.Equal(t, FallbackHomeImage, home.HeroImage)
	assert.Equal(t, FallbackHomeImage, home.CustomOrderImage)
	assert.NotNil(t, home.Featured)

	hero := "/uploads/site/home_hero_image-1.jpg"
	require.NoError(t, f.settings.Upsert(ctx, models.SettingHomeHeroImage, &hero))
	home = svc.Home(ctx)
	assert.Equal(t, hero, home.HeroImage)
	assert.Equal(t, FallbackHomeImage, home.CustomOrderImage)
}

func TestProductNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.products, f.categories, f.settings, 12)
	_, err := svc.Product(context.Background(), "missing")
	assert.Equal(t, ErrProductNotFound, err)
}
