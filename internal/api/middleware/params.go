// Package middleware holds the chi middleware shared by every API route:
// bearer authentication, access logging, CORS and path parameter checks.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// RequireUUID rejects requests whose path parameter param is missing or not
// a UUID with 400, before any handler touches the database.
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.RequireUUID("uuid"))
//	    r.Put("/", handler.UpdateVehicle)
//	})
func RequireUUID(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if id == "" {
				response.RespondError(w, http.StatusBadRequest, param+" is required", "")
				return
			}
			if err := validation.ValidateUUID(id); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
