package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHiddenForSinglePage(t *testing.T) {
	assert.False(t, New("/products", url.Values{}, 1, 1).Show)
	assert.False(t, New("/products", url.Values{}, 1, 0).Show)
}

func TestNewDisablesEnds(t *testing.T) {
	p := New("/products", url.Values{}, 1, 2)
	require.True(t, p.Show)
	assert.True(t, p.Prev.Disabled)
	assert.Empty(t, p.Prev.URL)
	assert.False(t, p.Next.Disabled)
	assert.Equal(t, "/products?page=2", p.Next.URL)

	p = New("/products", url.Values{}, 2, 2)
	assert.False(t, p.Prev.Disabled)
	assert.Equal(t, "/products", p.Prev.URL)
	assert.True(t, p.Next.Disabled)
}

func TestLinksPreserveFilters(t *testing.T) {
	values := url.Values{
		"category": {"Lucky Box - Hộp Quà May Mắn"},
		"search":   {"gấu bông"},
		"page":     {"1"},
	}
	p := New("/products", values, 1, 3)

	next, err := url.Parse(p.Next.URL)
	require.NoError(t, err)
	assert.Equal(t, "/products", next.Path)
	assert.Equal(t, "Lucky Box - Hộp Quà May Mắn", next.Query().Get("category"))
	assert.Equal(t, "gấu bông", next.Query().Get("search"))
	assert.Equal(t, "2", next.Query().Get("page"))

	for _, link := range p.Pages {
		u, err := url.Parse(link.URL)
		require.NoError(t, err)
		assert.Equal(t, "Lucky Box - Hộp Quà May Mắn", u.Query().Get("category"))
	}
}

func numbers(p Pager) []int {
	var out []int
	for _, l := range p.Pages {
		if l.Ellipsis {
			out = append(out, 0)
			continue
		}
		out = append(out, l.Number)
	}
	return out
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, numbers(New("/p", nil, 4, 7)))
	assert.Equal(t, []int{1, 2, 0, 10}, numbers(New("/p", nil, 1, 10)))
	assert.Equal(t, []int{1, 0, 4, 5, 6, 0, 10}, numbers(New("/p", nil, 5, 10)))
	assert.Equal(t, []int{1, 0, 9, 10}, numbers(New("/p", nil, 10, 10)))
	assert.Equal(t, []int{1, 2, 3, 0, 10}, numbers(New("/p", nil, 2, 10)))
}

func TestActivePage(t *testing.T) {
	p := New("/p", nil, 2, 3)
	for _, l := range p.Pages {
		assert.Equal(t, l.Number == 2, l.Active)
	}
}
