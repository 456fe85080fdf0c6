package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ghecrochet/storefront/app/helpers"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
	"github.com/ghecrochet/storefront/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginPageData struct {
	other.BasePageData
	Email  string
	Errors map[string]string
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data *LoginPageData) {
	data.Title = "Đăng nhập"
	data.IsAuthPage = true
	data.Breadcrumbs = breadcrumb.Trail(breadcrumb.Breadcrumb{Name: "Đăng nhập", URL: "/login"})
	helpers.GetBaseData(r, &data.BasePageData)
	_ = h.render.HTML(w, status, "auth/login", data)
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if user := helpers.CurrentUser(r); user != nil && user.IsAdmin() {
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, &LoginPageData{})
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		zap.S().Warnf("LoginPostHandler: error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Có lỗi khi xử lý dữ liệu.")
		return
	}

	form := LoginForm{
		Email:    strings.TrimSpace(strings.ToLower(r.PostFormValue("email"))),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Struct(&form); err != nil {
		data := &LoginPageData{Email: form.Email}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			data.Errors = helpers.FormatValidationErrors(verrs)
		}
		h.renderLogin(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		zap.S().Errorf("LoginPostHandler: error getting user by email '%s': %v", form.Email, err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Lỗi máy chủ, vui lòng thử lại.")
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(form.Password)) {
		zap.S().Infof("LoginPostHandler: invalid credentials for email: %s", form.Email)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Email hoặc mật khẩu không đúng.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		zap.S().Errorf("LoginPostHandler: error setting user session: %v", err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Không thể tạo phiên đăng nhập.")
		return
	}
	if err := h.userRepo.UpdateLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		zap.S().Warnf("LoginPostHandler: failed to record last login for %s: %v", user.ID, err)
	}

	target := "/"
	if user.IsAdmin() {
		target = "/admin/products"
	}
	helpers.RedirectWithMessage(w, r, target, "success", "Đăng nhập thành công.")
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		zap.S().Errorf("LogoutHandler: error clearing session: %v", err)
	}
	helpers.RedirectWithMessage(w, r, "/login", "success", "Đã đăng xuất.")
}
