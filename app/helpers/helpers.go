package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"

	SiteName = "Ghẹ Crochet"
)

// GetBaseData fills the layout fields shared by every page.
func GetBaseData(r *http.Request, base *other.BasePageData) {
	if base.Title == "" {
		base.Title = SiteName
	}
	base.Query = r.URL.Query()
	base.MessageStatus = r.URL.Query().Get("status")
	base.Message = r.URL.Query().Get("message")
	base.CurrentPath = r.URL.Path
	base.IsAdminRoute = strings.HasPrefix(r.URL.Path, "/admin")
	base.CSRFToken = csrf.Token(r)
	base.CSRFField = csrf.TemplateField(r)

	if user := CurrentUser(r); user != nil {
		base.IsLoggedIn = true
		base.UserID = user.ID
		base.User = &other.UserForTemplate{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}
		base.IsAdminPage = user.IsAdmin()
	}
}

func CurrentUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RedirectWithMessage sends the browser to path with a status/message flash.
func RedirectWithMessage(w http.ResponseWriter, r *http.Request, path, status, message string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	target := fmt.Sprintf("%s%sstatus=%s&message=%s", path, sep, url.QueryEscape(status), url.QueryEscape(message))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s là bắt buộc.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s phải là địa chỉ email hợp lệ.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s phải là số.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s tối thiểu %s.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s tối đa %s.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s không hợp lệ (%s).", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		zap.S().Debugf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}
