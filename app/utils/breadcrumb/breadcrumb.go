package breadcrumb

type Breadcrumb struct {
	Name string
	URL  string
}

// Trail prepends the storefront root to the given crumbs.
func Trail(crumbs ...Breadcrumb) []Breadcrumb {
	return append([]Breadcrumb{{Name: "Trang chủ", URL: "/"}}, crumbs...)
}
