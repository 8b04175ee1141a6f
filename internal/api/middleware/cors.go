package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORS lets browser clients served from allowedOrigins call the API with
// a bearer token. Cookies are never used, so credentials stay disabled.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         600,
	})
}
