// Copyright 2025 Joseph Cumines
//
// Bearer API key authentication for HTTP transport

package transport

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// authMiddleware requires "Authorization: Bearer <apiKey>" on every request
// except the health check. An empty apiKey disables authentication. The
// scheme is matched case-sensitively and the key in constant time.
func authMiddleware(apiKey string, next http.Handler) http.Handler {
	if apiKey == "" {
		return next
	}
	want := []byte(apiKey)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "Authorization header required")
			return
		}
		key, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok {
			unauthorized(w, "Invalid authorization format")
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), want) != 1 {
			unauthorized(w, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="things-mcp"`)
	http.Error(w, msg, http.StatusUnauthorized)
}
