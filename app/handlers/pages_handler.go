package handlers

import (
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/unrolled/render"
)

type PageHandler struct {
	render *render.Render
}

func NewPageHandler(r *render.Render) *PageHandler {
	return &PageHandler{render: r}
}

func (h *PageHandler) static(w http.ResponseWriter, r *http.Request, name, title, path string) {
	data := &other.BasePageData{
		Title:       title,
		Breadcrumbs: breadcrumb.Trail(breadcrumb.Breadcrumb{Name: title, URL: path}),
	}
	helpers.GetBaseData(r, data)
	_ = h.render.HTML(w, http.StatusOK, name, data)
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.static(w, r, "about", "Về chúng tôi", "/about")
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.static(w, r, "contact", "Liên hệ", "/contact")
}
