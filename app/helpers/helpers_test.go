package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/other"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGetBaseData(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/products?status=success&message=%C4%90%C3%A3+l%C6%B0u", nil)
	user := &models.User{ID: "u1", Name: "Chủ shop", Role: models.RoleAdmin}
	req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, user))

	var base other.BasePageData
	GetBaseData(req, &base)

	assert.Equal(t, SiteName, base.Title)
	assert.Equal(t, "success", base.MessageStatus)
	assert.Equal(t, "Đã lưu", base.Message)
	assert.True(t, base.IsLoggedIn)
	assert.True(t, base.IsAdminPage)
	assert.True(t, base.IsAdminRoute)
	require.NotNil(t, base.User)
	assert.Equal(t, "Chủ shop", base.User.Name)
}

func TestRedirectWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/images", nil)
	RedirectWithMessage(rec, req, "/admin/products/1/edit", "error", "Tối đa 5 ảnh")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/products/1/edit", loc.Path)
	assert.Equal(t, "error", loc.Query().Get("status"))
	assert.Equal(t, "Tối đa 5 ảnh", loc.Query().Get("message"))
}

func TestFormatValidationErrors(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"email"`
	}
	err := validator.New().Struct(form{Email: "nope"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err.(validator.ValidationErrors))
	assert.Contains(t, msgs, "name")
	assert.Contains(t, msgs, "email")
}

func TestPasswordCompare(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, PasswordCompare(string(hash), []byte("secret")))
	assert.False(t, PasswordCompare(string(hash), []byte("wrong")))
}
