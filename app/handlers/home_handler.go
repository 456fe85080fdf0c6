package handlers

import (
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	render  *render.Render
	catalog *services.CatalogService
}

func NewHomeHandler(r *render.Render, catalog *services.CatalogService) *HomeHandler {
	return &HomeHandler{
		render:  r,
		catalog: catalog,
	}
}

type HomePageData struct {
	other.BasePageData
	HeroImage        string
	CustomOrderImage string
	Featured         []models.Product
	Discounted       []models.Product
	Categories       []models.Category
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	home := h.catalog.Home(r.Context())

	data := &HomePageData{
		HeroImage:        home.HeroImage,
		CustomOrderImage: home.CustomOrderImage,
		Featured:         home.Featured,
		Discounted:       home.Discounted,
		Categories:       h.catalog.Categories(r.Context()),
	}
	data.Title = helpers.SiteName + " - Đồ len handmade"
	data.Description = "Thú bông, móc khóa, túi và quà tặng móc len thủ công."
	helpers.GetBaseData(r, &data.BasePageData)

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}
