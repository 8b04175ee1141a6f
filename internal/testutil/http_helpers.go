package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/middleware"
)

// NewRequestWithURLParams creates a request carrying chi URL parameters, for
// calling a handler directly without a router.
//
//	req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/fuel/vehicles/"+id, map[string]string{"uuid": id})
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if len(params) == 0 {
		return req
	}
	return WithURLParams(req, params)
}

// NewRequestWithQueryParams creates a request with an encoded query string.
//
//	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report", map[string]string{
//	    "start_date": "2024-01-01",
//	    "end_date":   "2024-12-31",
//	})
func NewRequestWithQueryParams(method, path string, queryParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}

// NewJSONRequest creates an HTTP request whose body is v encoded as JSON.
// A string v is sent verbatim, which allows testing malformed bodies.
//
// Example:
//
//	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transactions", map[string]any{"symbol": "VNM"})
func NewJSONRequest(t *testing.T, method, path string, v any) *http.Request {
	t.Helper()

	var body []byte
	switch b := v.(type) {
	case string:
		body = []byte(b)
	default:
		var err error
		if body, err = json.Marshal(v); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithURLParams adds chi URL parameters to an existing request.
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AsUser marks the request as authenticated for userID, as the auth
// middleware would.
func AsUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}
