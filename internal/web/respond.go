// Package web holds the response helpers shared by the page handlers:
// JSON views, flash messages and post/redirect/get redirects.
package web

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Redirect sends a 303 so the browser follows up with a GET.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// FlashRedirect queues a flash message and redirects.
func FlashRedirect(w http.ResponseWriter, r *http.Request, url, category, message string) {
	SetFlash(w, r, category, message)
	Redirect(w, r, url)
}
