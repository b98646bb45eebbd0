// Package middleware provides HTTP middleware for the API server.
package middleware

import "net/http"

// Use wraps a handler with the given middlewares. The first middleware in
// the list is the outermost.
func Use(handler http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var h http.Handler = handler

	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
