package admin

import (
	"mime/multipart"
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/ghecrochet/storefront/app/utils/imageset"
	"github.com/gorilla/mux"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const maxMultipartMemory = 32 << 20

func imagesPath(productID string) string {
	return "/admin/products/" + productID + "/images"
}

func readImageFiles(headers []*multipart.FileHeader) ([]services.ImageFile, error) {
	files := make([]services.ImageFile, 0, len(headers))
	for _, fh := range headers {
		file, err := services.ReadImageFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func (h *AdminHandler) ProductImagesPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.productLookupFailed(w, r, "ProductImagesPage", id, err)
		return
	}

	data := &AdminImagePageData{
		Product:   product,
		MaxImages: h.images.MaxImages(),
		Remaining: imageset.Remaining(product.Images, h.images.MaxImages()),
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData, "Ảnh sản phẩm",
		breadcrumb.Breadcrumb{Name: "Sản phẩm", URL: "/admin/products"},
		breadcrumb.Breadcrumb{Name: product.Name, URL: "/admin/products/" + id + "/edit"},
		breadcrumb.Breadcrumb{Name: "Ảnh", URL: imagesPath(id)})

	_ = h.render.HTML(w, http.StatusOK, "admin/products/images", data)
}

func (h *AdminHandler) AddProductImagesPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		zap.S().Warnf("AddProductImagesPost: error parsing upload for %s: %v", id, err)
		helpers.RedirectWithMessage(w, r, imagesPath(id), "error", "Không đọc được ảnh tải lên.")
		return
	}

	files, err := readImageFiles(r.MultipartForm.File["images"])
	if err == nil {
		_, err = h.images.AddProductImages(r.Context(), id, files)
	}
	if err != nil {
		zap.S().Errorf("AddProductImagesPost: product %s: %v", id, err)
		status, msg := h.imageErrorMessage(err)
		helpers.RedirectWithMessage(w, r, imagesPath(id), status, msg)
		return
	}
	helpers.RedirectWithMessage(w, r, imagesPath(id), "success", "Đã thêm ảnh.")
}

func (h *AdminHandler) RemoveProductImagePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, imagesPath(id), "error", "Không đọc được dữ liệu biểu mẫu.")
		return
	}

	if _, err := h.images.RemoveProductImage(r.Context(), id, r.PostFormValue("url")); err != nil {
		zap.S().Errorf("RemoveProductImagePost: product %s: %v", id, err)
		status, msg := h.imageErrorMessage(err)
		helpers.RedirectWithMessage(w, r, imagesPath(id), status, msg)
		return
	}
	helpers.RedirectWithMessage(w, r, imagesPath(id), "success", "Đã xóa ảnh.")
}

func (h *AdminHandler) ReplaceProductImagePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		zap.S().Warnf("ReplaceProductImagePost: error parsing upload for %s: %v", id, err)
		helpers.RedirectWithMessage(w, r, imagesPath(id), "error", "Không đọc được ảnh tải lên.")
		return
	}

	index, err := cast.ToIntE(r.PostFormValue("index"))
	if err != nil {
		helpers.RedirectWithMessage(w, r, imagesPath(id), "error", "Ảnh cần thay không tồn tại.")
		return
	}
	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		status, msg := h.imageErrorMessage(services.ErrNoImageFiles)
		helpers.RedirectWithMessage(w, r, imagesPath(id), status, msg)
		return
	}

	file, err := services.ReadImageFile(headers[0])
	if err == nil {
		_, err = h.images.ReplaceProductImage(r.Context(), id, index, file)
	}
	if err != nil {
		zap.S().Errorf("ReplaceProductImagePost: product %s index %d: %v", id, index, err)
		status, msg := h.imageErrorMessage(err)
		helpers.RedirectWithMessage(w, r, imagesPath(id), status, msg)
		return
	}
	helpers.RedirectWithMessage(w, r, imagesPath(id), "success", "Đã thay ảnh.")
}

func (h *AdminHandler) PromoteProductImagePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, imagesPath(id), "error", "Không đọc được dữ liệu biểu mẫu.")
		return
	}

	if _, err := h.images.PromoteProductImage(r.Context(), id, r.PostFormValue("url")); err != nil {
		zap.S().Errorf("PromoteProductImagePost: product %s: %v", id, err)
		status, msg := h.imageErrorMessage(err)
		helpers.RedirectWithMessage(w, r, imagesPath(id), status, msg)
		return
	}
	helpers.RedirectWithMessage(w, r, imagesPath(id), "success", "Đã đặt làm ảnh chính.")
}
