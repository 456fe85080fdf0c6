package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSessionRoundTrip(t *testing.T) {
	store := NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	assert.Empty(t, store.GetUserID(req))

	rec := httptest.NewRecorder()
	require.NoError(t, store.SetUserID(rec, req, "user-1"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	assert.Equal(t, "user-1", store.GetUserID(next))

	rec = httptest.NewRecorder()
	require.NoError(t, store.ClearSession(rec, next))
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestForeignCookieIsIgnored(t *testing.T) {
	signer := NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), nil)
	other := NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, signer.SetUserID(rec, req, "user-1"))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	assert.Empty(t, other.GetUserID(next))
}
