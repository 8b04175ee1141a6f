package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// userID returns the authenticated user of the request.
func userID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// validationDetails returns the per-field messages of a validation error, or
// the error text for anything else.
func validationDetails(err error) any {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return err.Error()
}

// splitList splits a comma separated query parameter, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
