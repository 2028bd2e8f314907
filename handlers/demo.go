package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed assets/demo.html
var demoPage []byte

// Demo serves a small page with text size and contrast tabs that
// exercises the settings and theme endpoints.
func Demo() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		rw.WriteHeader(http.StatusOK)
		rw.Write(demoPage) // nolint
	})
}
