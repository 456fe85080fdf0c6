package handlers

import (
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/ghecrochet/storefront/app/utils/pagination"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog *services.CatalogService
	render  *render.Render
}

func NewProductHandler(catalog *services.CatalogService, r *render.Render) *ProductHandler {
	return &ProductHandler{catalog, r}
}

type ProductListPageData struct {
	other.BasePageData
	Products   []models.Product
	Categories []models.Category
	Filter     services.CatalogQuery
	TotalCount int64
	TotalPages int
	Pager      pagination.Pager
}

type ProductDetailPageData struct {
	other.BasePageData
	Product  *models.Product
	Related  []models.Product
	Category *models.Category
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	query := services.NewCatalogQuery(r.URL.Query())
	page := h.catalog.Browse(r.Context(), query)

	data := &ProductListPageData{
		Products:   page.Items,
		Categories: h.catalog.Categories(r.Context()),
		Filter:     query,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages(),
		Pager:      pagination.New("/products", query.Values(), page.Page, page.TotalPages()),
	}
	data.Title = "Sản phẩm"
	if query.Category != "" {
		data.Title = query.Category
	}
	data.Breadcrumbs = breadcrumb.Trail(breadcrumb.Breadcrumb{Name: "Sản phẩm", URL: "/products"})
	helpers.GetBaseData(r, &data.BasePageData)

	_ = h.render.HTML(w, http.StatusOK, "products", data)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		zap.S().Errorf("ProductDetail: failed to load product %s: %v", id, err)
		http.Error(w, "Không thể tải sản phẩm", http.StatusInternalServerError)
		return
	}

	data := &ProductDetailPageData{
		Product: product,
		Related: h.catalog.Related(r.Context(), product),
	}
	data.Title = product.Name
	data.Description = product.Description

	crumbs := []breadcrumb.Breadcrumb{{Name: "Sản phẩm", URL: "/products"}}
	if len(product.Categories) > 0 {
		data.Category = &product.Categories[0]
		crumbs = append(crumbs, breadcrumb.Breadcrumb{
			Name: data.Category.Name,
			URL:  pagination.PageURL("/products", services.CatalogQuery{Category: data.Category.Name}.Values(), 1),
		})
	}
	crumbs = append(crumbs, breadcrumb.Breadcrumb{Name: product.Name, URL: "/products/" + product.ID})
	data.Breadcrumbs = breadcrumb.Trail(crumbs...)
	helpers.GetBaseData(r, &data.BasePageData)

	_ = h.render.HTML(w, http.StatusOK, "product", data)
}
