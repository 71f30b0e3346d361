package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies the cookies set on rec onto a fresh request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func TestFlashRedirectThenPop(t *testing.T) {
	rec := httptest.NewRecorder()
	FlashRedirect(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "/account", FlashError, "Invalid username or password")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))

	next := carry(rec)
	rec2 := httptest.NewRecorder()
	flashes := PopFlashes(rec2, next)
	require.Len(t, flashes, 1)
	assert.Equal(t, Flash{Category: FlashError, Message: "Invalid username or password"}, flashes[0])

	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestSetFlashKeepsPendingMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, httptest.NewRequest(http.MethodGet, "/", nil), FlashInfo, "first")

	rec2 := httptest.NewRecorder()
	SetFlash(rec2, carry(rec), FlashSuccess, "second")

	flashes := PopFlashes(httptest.NewRecorder(), carry(rec2))
	require.Len(t, flashes, 2)
	assert.Equal(t, "first", flashes[0].Message)
	assert.Equal(t, "second", flashes[1].Message)
}

func TestPopFlashesEmptyAndGarbage(t *testing.T) {
	rec := httptest.NewRecorder()
	flashes := PopFlashes(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotNil(t, flashes)
	assert.Empty(t, flashes)
	assert.Empty(t, rec.Result().Cookies())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "%%%"})
	assert.Empty(t, PopFlashes(httptest.NewRecorder(), req))
}
