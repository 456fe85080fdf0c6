package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/pagination"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type SitemapHandler struct {
	render     *render.Render
	catalog    *services.CatalogService
	categories repositories.CategoryRepositoryImpl
	baseURL    string
	now        func() time.Time
}

func NewSitemapHandler(r *render.Render, catalog *services.CatalogService, categories repositories.CategoryRepositoryImpl, baseURL string) *SitemapHandler {
	return &SitemapHandler{
		render:     r,
		catalog:    catalog,
		categories: categories,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

func lastMod(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Sitemap lists the static pages, every available product and every category
// listing. Lookup failures drop that group and keep the rest.
func (h *SitemapHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	now := lastMod(h.now())
	set := urlSet{XMLNS: sitemapNS}
	set.URLs = append(set.URLs,
		sitemapURL{Loc: h.baseURL + "/", LastMod: now, ChangeFreq: "weekly", Priority: 1},
		sitemapURL{Loc: h.baseURL + "/products", LastMod: now, ChangeFreq: "daily", Priority: 0.9},
		sitemapURL{Loc: h.baseURL + "/about", LastMod: now, ChangeFreq: "monthly", Priority: 0.6},
		sitemapURL{Loc: h.baseURL + "/contact", LastMod: now, ChangeFreq: "monthly", Priority: 0.5},
	)

	products, err := h.catalog.SitemapProducts(r.Context())
	if err != nil {
		zap.S().Errorf("Sitemap: failed to load products: %v", err)
	}
	for _, p := range products {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.baseURL + "/products/" + p.ID,
			LastMod:    lastMod(p.UpdatedAt),
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	categories, err := h.categories.GetAll(r.Context())
	if err != nil {
		zap.S().Errorf("Sitemap: failed to load categories: %v", err)
	}
	for _, c := range categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.baseURL + pagination.PageURL("/products", services.CatalogQuery{Category: c.Name}.Values(), 1),
			LastMod:    lastMod(c.CreatedAt),
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	_ = h.render.XML(w, http.StatusOK, set)
}
