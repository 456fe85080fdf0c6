package admin

import (
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const categoriesPath = "/admin/categories"

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminCategoryPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData, "Quản lý danh mục",
		breadcrumb.Breadcrumb{Name: "Danh mục", URL: categoriesPath})

	categories, err := h.categories.List(r.Context())
	if err != nil {
		zap.S().Errorf("GetCategoriesPage: failed to list categories: %v", err)
		data.Message = "Không tải được danh sách danh mục."
		data.MessageStatus = "error"
	}
	data.Categories = categories

	counts, err := h.categories.ProductCounts(r.Context())
	if err != nil {
		zap.S().Warnf("GetCategoriesPage: failed to count products: %v", err)
	}
	data.ProductCounts = counts

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, form *CategoryForm, errs map[string]string) {
	data := &AdminCategoryPageData{CategoryData: form, IsEdit: form.ID != "", Errors: errs}
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	title := "Thêm danh mục"
	data.FormAction = categoriesPath + "/new"
	if data.IsEdit {
		title = "Sửa danh mục"
		data.FormAction = categoriesPath + "/" + form.ID + "/edit"
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData, title,
		breadcrumb.Breadcrumb{Name: "Danh mục", URL: categoriesPath},
		breadcrumb.Breadcrumb{Name: title, URL: data.FormAction})

	_ = h.render.HTML(w, status, "admin/categories/form", data)
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, http.StatusOK, &CategoryForm{}, nil)
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		h.categoryLookupFailed(w, r, "EditCategoryPage", id, err)
		return
	}
	h.renderCategoryForm(w, r, http.StatusOK, &CategoryForm{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Icon:        category.Icon,
	}, nil)
}

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, "")
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, mux.Vars(r)["id"])
}

func (h *AdminHandler) saveCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		zap.S().Warnf("saveCategory: error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, categoriesPath, "error", "Không đọc được dữ liệu biểu mẫu.")
		return
	}
	form := &CategoryForm{
		ID:          id,
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Icon:        r.PostFormValue("icon"),
	}

	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.renderCategoryForm(w, r, http.StatusUnprocessableEntity, form, helpers.FormatValidationErrors(verrs))
			return
		}
	}

	in := services.CategoryInput{Name: form.Name, Description: form.Description, Icon: form.Icon}
	var err error
	if id == "" {
		_, err = h.categories.Create(r.Context(), in)
	} else {
		_, err = h.categories.Update(r.Context(), id, in)
	}

	switch {
	case err == nil:
		helpers.RedirectWithMessage(w, r, categoriesPath, "success", "Đã lưu danh mục.")
	case errors.Is(err, services.ErrDuplicateCategory):
		h.renderCategoryForm(w, r, http.StatusUnprocessableEntity, form, map[string]string{"name": "Tên danh mục đã tồn tại."})
	case errors.Is(err, services.ErrIconTooLong):
		h.renderCategoryForm(w, r, http.StatusUnprocessableEntity, form, map[string]string{"icon": "Biểu tượng tối đa 4 ký tự."})
	case errors.Is(err, services.ErrEmptyName):
		h.renderCategoryForm(w, r, http.StatusUnprocessableEntity, form, map[string]string{"name": "Tên danh mục là bắt buộc."})
	default:
		h.categoryLookupFailed(w, r, "saveCategory", id, err)
	}
}

func (h *AdminHandler) DeleteCategoryPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.categoryLookupFailed(w, r, "DeleteCategoryPost", id, err)
		return
	}
	helpers.RedirectWithMessage(w, r, categoriesPath, "success", "Đã xóa danh mục.")
}

func (h *AdminHandler) categoryLookupFailed(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	if errors.Is(err, services.ErrCategoryNotFound) {
		helpers.RedirectWithMessage(w, r, categoriesPath, "error", "Không tìm thấy danh mục.")
		return
	}
	zap.S().Errorf("%s: failed on category %s: %v", op, id, err)
	helpers.RedirectWithMessage(w, r, categoriesPath, "error", "Có lỗi xảy ra, vui lòng thử lại.")
}
