package pagination

import (
	"net/url"
	"strconv"
)

// maxFullPages is the largest page count shown without ellipses.
const maxFullPages = 7

type Link struct {
	Number   int
	URL      string
	Active   bool
	Disabled bool
	Ellipsis bool
}

type Pager struct {
	Prev  Link
	Next  Link
	Pages []Link
	Show  bool
}

// New builds the pager for basePath. Every link carries the non-page query
// values of values unchanged; page 1 omits the page parameter.
func New(basePath string, values url.Values, current, totalPages int) Pager {
	if totalPages <= 1 {
		return Pager{}
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	p := Pager{Show: true}
	p.Prev = Link{Number: current - 1, Disabled: current == 1}
	if !p.Prev.Disabled {
		p.Prev.URL = PageURL(basePath, values, current-1)
	}
	p.Next = Link{Number: current + 1, Disabled: current == totalPages}
	if !p.Next.Disabled {
		p.Next.URL = PageURL(basePath, values, current+1)
	}

	for _, n := range window(current, totalPages) {
		if n == 0 {
			p.Pages = append(p.Pages, Link{Ellipsis: true, Disabled: true})
			continue
		}
		p.Pages = append(p.Pages, Link{
			Number: n,
			URL:    PageURL(basePath, values, n),
			Active: n == current,
		})
	}
	return p
}

// PageURL returns basePath with values and the given page number encoded.
func PageURL(basePath string, values url.Values, page int) string {
	q := url.Values{}
	for k, vs := range values {
		if k == "page" {
			continue
		}
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return basePath
	}
	return basePath + "?" + q.Encode()
}

// window lists the page numbers to render; 0 marks an ellipsis.
func window(current, total int) []int {
	if total <= maxFullPages {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}
	start, end := current-1, current+1
	if start < 2 {
		start = 2
	}
	if end > total-1 {
		end = total - 1
	}
	if start > 2 {
		pages = append(pages, 0)
	}
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}
	if end < total-1 {
		pages = append(pages, 0)
	}
	return append(pages, total)
}
