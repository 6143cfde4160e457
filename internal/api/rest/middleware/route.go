package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// routeName returns the matched path template, or "unmatched".
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
