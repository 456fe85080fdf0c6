package admin

import (
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const homeImagesPath = "/admin/home-images"

func (h *AdminHandler) HomeImagesPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminHomeImagesPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData, "Ảnh trang chủ",
		breadcrumb.Breadcrumb{Name: "Ảnh trang chủ", URL: homeImagesPath})

	values, err := h.images.SiteImages(r.Context())
	if err != nil {
		zap.S().Errorf("HomeImagesPage: failed to load site images: %v", err)
		data.Message = "Không tải được ảnh trang chủ."
		data.MessageStatus = "error"
	}
	for _, key := range models.SiteImageSlots {
		data.Slots = append(data.Slots, SiteImageSlot{Key: key, Label: siteImageLabels[key], URL: values[key]})
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/home_images", data)
}

func (h *AdminHandler) SetHomeImagePost(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		zap.S().Warnf("SetHomeImagePost: error parsing upload for %s: %v", key, err)
		helpers.RedirectWithMessage(w, r, homeImagesPath, "error", "Không đọc được ảnh tải lên.")
		return
	}
	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		status, msg := h.imageErrorMessage(services.ErrNoImageFiles)
		helpers.RedirectWithMessage(w, r, homeImagesPath, status, msg)
		return
	}

	file, err := services.ReadImageFile(headers[0])
	if err == nil {
		_, err = h.images.SetSiteImage(r.Context(), key, file)
	}
	if err != nil {
		zap.S().Errorf("SetHomeImagePost: slot %s: %v", key, err)
		status, msg := h.imageErrorMessage(err)
		helpers.RedirectWithMessage(w, r, homeImagesPath, status, msg)
		return
	}
	helpers.RedirectWithMessage(w, r, homeImagesPath, "success", "Đã cập nhật ảnh.")
}

func (h *AdminHandler) ClearHomeImagePost(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := h.images.ClearSiteImage(r.Context(), key); err != nil {
		zap.S().Errorf("ClearHomeImagePost: slot %s: %v", key, err)
		status, msg := h.imageErrorMessage(err)
		helpers.RedirectWithMessage(w, r, homeImagesPath, status, msg)
		return
	}
	helpers.RedirectWithMessage(w, r, homeImagesPath, "success", "Đã gỡ ảnh, trang chủ sẽ dùng ảnh mặc định.")
}
