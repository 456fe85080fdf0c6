package admin

import (
	"fmt"
	"net/http"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/ghecrochet/storefront/app/utils/imageset"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render     *render.Render
	validator  *validator.Validate
	products   *services.ProductService
	categories *services.CategoryService
	images     *services.ImageService
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	products *services.ProductService,
	categories *services.CategoryService,
	images *services.ImageService,
) *AdminHandler {
	return &AdminHandler{
		render:     render,
		validator:  validator,
		products:   products,
		categories: categories,
		images:     images,
	}
}

type AdminProductPageData struct {
	other.BasePageData
	Products    []models.Product
	ProductData *ProductForm
	IsEdit      bool
	FormAction  string
	Errors      map[string]string
	Categories  []models.Category
}

type ProductForm struct {
	ID               string
	Name             string   `validate:"required,max=255"`
	Description      string   `validate:"max=5000"`
	Price            string   `validate:"required,numeric"`
	PromotionPrice   string   `validate:"omitempty,numeric"`
	Materials        string   `validate:"max=255"`
	SizeInfo         string   `validate:"max=255"`
	CareInstructions string   `validate:"max=5000"`
	IsAvailable      bool
	IsFeatured       bool
	CategoryIDs      []string `validate:"min=1,dive,required"`
}

type AdminImagePageData struct {
	other.BasePageData
	Product   *models.Product
	MaxImages int
	Remaining int
}

type AdminCategoryPageData struct {
	other.BasePageData
	Categories    []models.Category
	ProductCounts map[string]int64
	CategoryData  *CategoryForm
	IsEdit        bool
	FormAction    string
	Errors        map[string]string
}

type CategoryForm struct {
	ID          string
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=1000"`
	Icon        string `validate:"max=32"`
}

type SiteImageSlot struct {
	Key   string
	Label string
	URL   string
}

type AdminHomeImagesPageData struct {
	other.BasePageData
	Slots []SiteImageSlot
}

var siteImageLabels = map[string]string{
	models.SettingHomeHeroImage:        "Ảnh bìa trang chủ",
	models.SettingHomeCustomOrderImage: "Ảnh đặt hàng theo yêu cầu",
}

func (h *AdminHandler) populateBaseDataForAdmin(r *http.Request, base *other.BasePageData, title string, crumbs ...breadcrumb.Breadcrumb) {
	base.Title = title
	base.IsAdminPage = true
	base.Breadcrumbs = breadcrumb.Trail(append([]breadcrumb.Breadcrumb{{Name: "Quản trị", URL: "/admin/products"}}, crumbs...)...)
	helpers.GetBaseData(r, base)
}

// Dashboard sends the console root to the product list.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

// imageErrorMessage turns an image operation failure into a message for the
// flash banner, and the banner status to show it with.
func (h *AdminHandler) imageErrorMessage(err error) (string, string) {
	switch {
	case errors.Is(err, services.ErrTooManyImages):
		return "error", fmt.Sprintf("Mỗi sản phẩm chỉ có tối đa %d ảnh.", h.images.MaxImages())
	case errors.Is(err, services.ErrUnsupportedImageType):
		return "error", "Chỉ chấp nhận ảnh JPG, PNG hoặc WebP."
	case errors.Is(err, services.ErrImageTooLarge):
		return "error", "Ảnh vượt quá dung lượng cho phép (5MB)."
	case errors.Is(err, services.ErrNoImageFiles):
		return "error", "Vui lòng chọn ít nhất một ảnh."
	case errors.Is(err, imageset.ErrIndexOutOfRange):
		return "error", "Ảnh cần thay không tồn tại."
	case errors.Is(err, services.ErrProductNotFound):
		return "error", "Không tìm thấy sản phẩm."
	case errors.Is(err, services.ErrUnknownSiteImage):
		return "error", "Vị trí ảnh không hợp lệ."
	}

	var imgErr *services.ImageError
	if errors.As(err, &imgErr) {
		switch imgErr.Stage {
		case services.StageUpload:
			return "error", "Tải ảnh lên thất bại, vui lòng thử lại."
		case services.StageStorage:
			return "error", "Không thể xóa ảnh khỏi kho lưu trữ."
		case services.StageDatabase:
			return "error", "Không thể lưu thay đổi ảnh."
		case services.StageCleanup:
			return "warning", "Đã thay ảnh, nhưng chưa xóa được ảnh cũ."
		}
	}
	return "error", "Có lỗi xảy ra khi xử lý ảnh."
}
