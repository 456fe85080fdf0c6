package admin

import (
	"net/http"
	"strings"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func productFormFromRequest(r *http.Request) ProductForm {
	return ProductForm{
		Name:             strings.TrimSpace(r.PostFormValue("name")),
		Description:      r.PostFormValue("description"),
		Price:            strings.TrimSpace(r.PostFormValue("price")),
		PromotionPrice:   strings.TrimSpace(r.PostFormValue("promotion_price")),
		Materials:        r.PostFormValue("materials"),
		SizeInfo:         r.PostFormValue("size_info"),
		CareInstructions: r.PostFormValue("care_instructions"),
		IsAvailable:      r.PostFormValue("is_available") == "on",
		IsFeatured:       r.PostFormValue("is_featured") == "on",
		CategoryIDs:      r.PostForm["category_ids"],
	}
}

func productFormFromModel(p *models.Product) *ProductForm {
	form := &ProductForm{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price.StringFixed(0),
		Materials:        p.Materials,
		SizeInfo:         p.SizeInfo,
		CareInstructions: p.CareInstructions,
		IsAvailable:      p.IsAvailable,
		IsFeatured:       p.IsFeatured,
		CategoryIDs:      p.CategoryIDs(),
	}
	if p.PromotionPrice.Valid {
		form.PromotionPrice = p.PromotionPrice.Decimal.StringFixed(0)
	}
	return form
}

func (f ProductForm) toInput() (services.ProductInput, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return services.ProductInput{}, errors.Wrap(err, "price")
	}
	in := services.ProductInput{
		Name:             f.Name,
		Description:      f.Description,
		Price:            price,
		Materials:        f.Materials,
		SizeInfo:         f.SizeInfo,
		CareInstructions: f.CareInstructions,
		IsAvailable:      f.IsAvailable,
		IsFeatured:       f.IsFeatured,
		CategoryIDs:      f.CategoryIDs,
	}
	if f.PromotionPrice != "" {
		promo, err := decimal.NewFromString(f.PromotionPrice)
		if err != nil {
			return services.ProductInput{}, errors.Wrap(err, "promotion price")
		}
		in.PromotionPrice = decimal.NewNullDecimal(promo)
	}
	return in, nil
}

func productServiceErrors(err error) map[string]string {
	switch {
	case errors.Is(err, services.ErrNoCategories):
		return map[string]string{"categoryids": "Chọn ít nhất một danh mục."}
	case errors.Is(err, services.ErrUnknownCategory):
		return map[string]string{"categoryids": "Danh mục không tồn tại."}
	case errors.Is(err, services.ErrInvalidPrice):
		return map[string]string{"price": "Giá không được âm."}
	case errors.Is(err, services.ErrEmptyName):
		return map[string]string{"name": "Tên sản phẩm là bắt buộc."}
	}
	return nil
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, form *ProductForm, errs map[string]string) {
	data := &AdminProductPageData{
		ProductData: form,
		IsEdit:      form.ID != "",
		Errors:      errs,
	}
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}

	categories, err := h.categories.List(r.Context())
	if err != nil {
		zap.S().Errorf("renderProductForm: failed to load categories: %v", err)
		data.Message = "Không tải được danh mục."
		data.MessageStatus = "error"
	}
	data.Categories = categories

	if data.IsEdit {
		data.FormAction = "/admin/products/" + form.ID + "/edit"
		h.populateBaseDataForAdmin(r, &data.BasePageData, "Sửa sản phẩm",
			breadcrumb.Breadcrumb{Name: "Sản phẩm", URL: "/admin/products"},
			breadcrumb.Breadcrumb{Name: form.Name, URL: data.FormAction})
	} else {
		data.FormAction = "/admin/products/new"
		h.populateBaseDataForAdmin(r, &data.BasePageData, "Thêm sản phẩm",
			breadcrumb.Breadcrumb{Name: "Sản phẩm", URL: "/admin/products"},
			breadcrumb.Breadcrumb{Name: "Thêm mới", URL: data.FormAction})
	}

	_ = h.render.HTML(w, status, "admin/products/form", data)
}

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminProductPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData, "Quản lý sản phẩm",
		breadcrumb.Breadcrumb{Name: "Sản phẩm", URL: "/admin/products"})

	products, err := h.products.List(r.Context())
	if err != nil {
		zap.S().Errorf("GetProductsPage: failed to list products: %v", err)
		data.Message = "Không tải được danh sách sản phẩm."
		data.MessageStatus = "error"
	}
	data.Products = products

	_ = h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, http.StatusOK, &ProductForm{IsAvailable: true}, nil)
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		zap.S().Warnf("AddProductPost: error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/products/new", "error", "Không đọc được dữ liệu biểu mẫu.")
		return
	}
	form := productFormFromRequest(r)
	h.saveProduct(w, r, &form)
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.productLookupFailed(w, r, "EditProductPage", id, err)
		return
	}
	h.renderProductForm(w, r, http.StatusOK, productFormFromModel(product), nil)
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		zap.S().Warnf("EditProductPost: error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/products/"+id+"/edit", "error", "Không đọc được dữ liệu biểu mẫu.")
		return
	}
	form := productFormFromRequest(r)
	form.ID = id
	h.saveProduct(w, r, &form)
}

// saveProduct validates the form and creates or updates depending on form.ID.
func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, form *ProductForm) {
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.renderProductForm(w, r, http.StatusUnprocessableEntity, form, helpers.FormatValidationErrors(verrs))
			return
		}
		zap.S().Errorf("saveProduct: validator failed: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Dữ liệu không hợp lệ.")
		return
	}

	in, err := form.toInput()
	if err != nil {
		h.renderProductForm(w, r, http.StatusUnprocessableEntity, form, map[string]string{"price": "Giá không hợp lệ."})
		return
	}

	var product *models.Product
	if form.ID == "" {
		product, err = h.products.Create(r.Context(), in)
	} else {
		product, err = h.products.Update(r.Context(), form.ID, in)
	}
	if err != nil {
		if errs := productServiceErrors(err); errs != nil {
			h.renderProductForm(w, r, http.StatusUnprocessableEntity, form, errs)
			return
		}
		if errors.Is(err, services.ErrProductNotFound) {
			h.productLookupFailed(w, r, "saveProduct", form.ID, err)
			return
		}
		zap.S().Errorf("saveProduct: failed to save product %q: %v", form.Name, err)
		h.renderProductForm(w, r, http.StatusInternalServerError, form, map[string]string{"general": "Không thể lưu sản phẩm."})
		return
	}

	if form.ID == "" {
		helpers.RedirectWithMessage(w, r, "/admin/products/"+product.ID+"/images", "success", "Đã tạo sản phẩm. Hãy thêm ảnh.")
		return
	}
	helpers.RedirectWithMessage(w, r, "/admin/products", "success", "Đã cập nhật sản phẩm.")
}

func (h *AdminHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.products.Delete(r.Context(), id); err != nil {
		h.productLookupFailed(w, r, "DeleteProductPost", id, err)
		return
	}
	helpers.RedirectWithMessage(w, r, "/admin/products", "success", "Đã xóa sản phẩm.")
}

func (h *AdminHandler) productLookupFailed(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	if errors.Is(err, services.ErrProductNotFound) {
		helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Không tìm thấy sản phẩm.")
		return
	}
	zap.S().Errorf("%s: failed on product %s: %v", op, id, err)
	helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Có lỗi xảy ra, vui lòng thử lại.")
}
