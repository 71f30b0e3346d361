package auth

import (
	"net/http"
	"time"
)

// NewSessionCookie builds the session cookie carrying sid for ttl.
func NewSessionCookie(sid string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
	}
}

// ExpiredSessionCookie builds a cookie that makes the browser drop the session.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	c := NewSessionCookie("", 0, secure)
	c.MaxAge = -1
	return c
}
