package middlewares

import (
	"net/http"
	"net/url"

	"github.com/ghecrochet/storefront/app/helpers"
	"go.uber.org/zap"
)

// AdminAuthMiddleware lets through only signed-in users holding the admin role.
// It expects AuthMiddleware to have run first.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := helpers.CurrentUser(r)
		if user == nil {
			zap.S().Infof("AdminAuthMiddleware: anonymous request to %s, redirecting to login", r.URL.Path)
			http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Bạn cần đăng nhập để vào trang quản trị."), http.StatusFound)
			return
		}

		if !user.IsAdmin() {
			zap.S().Warnf("AdminAuthMiddleware: user %s (%s) attempted to access admin panel without admin role", user.ID, user.Email)
			http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Bạn không có quyền truy cập trang này."), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
