package other

import (
	"net/url"

	"github.com/ghecrochet/storefront/app/utils/breadcrumb"
)

type UserForTemplate struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type BasePageData struct {
	Title         string
	Description   string
	IsLoggedIn    bool
	User          *UserForTemplate
	UserID        string
	CSRFToken     string
	CSRFField     interface{}
	Message       string
	MessageStatus string
	Query         url.Values
	Breadcrumbs   []breadcrumb.Breadcrumb
	IsAuthPage    bool
	IsAdminPage   bool
	CurrentPath   string
	IsAdminRoute  bool
}
