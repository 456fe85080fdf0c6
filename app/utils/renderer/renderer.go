package renderer

import (
	"encoding/xml"
	"html/template"
	"net/url"
	"time"

	"github.com/ghecrochet/storefront/app/utils/calc"
	"github.com/ghecrochet/storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatVND":   format.VND,
		"queryEscape": url.QueryEscape,
		"discountPercent": func(price decimal.Decimal, promotion decimal.NullDecimal) int {
			if !promotion.Valid {
				return 0
			}
			return calc.DiscountPercent(price, promotion.Decimal)
		},
		"formatDate": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"contains": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"until": func(count int) []int {
			items := make([]int, count)
			for i := 0; i < count; i++ {
				items[i] = i
			}
			return items
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"year": func() int { return time.Now().Year() },
	}
}

// New builds the HTML renderer over dir. Templates are re-read on every
// request when development is true.
func New(dir string, development bool) *render.Render {
	if dir == "" {
		dir = "templates"
	}
	return render.New(render.Options{
		Directory:     dir,
		Layout:        "layout",
		Extensions:    []string{".html"},
		Funcs:         []template.FuncMap{Funcs()},
		IsDevelopment: development,
		PrefixXML:     []byte(xml.Header),
	})
}
