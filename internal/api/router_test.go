package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *fernet.Key) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	var key fernet.Key
	require.NoError(t, key.Generate())

	router := NewRouter(Services{
		System:      testutil.NewTestSystemService(t, db),
		Transaction: testutil.NewTestTransactionService(t, db),
		Price:       testutil.NewTestPriceService(t, db),
		Portfolio:   testutil.NewTestPortfolioService(t, db),
		Expense:     testutil.NewTestExpenseService(t, db),
		Fuel:        testutil.NewTestFuelService(t, db),
	}, Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		TokenKeys:      []*fernet.Key{&key},
		TokenTTL:       time.Hour,
		Logger:         zerolog.Nop(),
	})

	return router, &key
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Auth(t *testing.T) {
	router, key := newTestRouter(t)

	t.Run("system endpoints are public", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		for _, path := range []string{"/api/transactions", "/api/portfolio", "/api/expenses/summary", "/api/fuel/report"} {
			w := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		}
	})

	t.Run("a forged token is rejected", func(t *testing.T) {
		var other fernet.Key
		require.NoError(t, other.Generate())
		tok, err := middleware.IssueToken(testutil.TestUserID, &other)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, serve(router, req).Code)
	})

	t.Run("a valid token reaches the handler", func(t *testing.T) {
		tok, err := middleware.IssueToken(testutil.TestUserID, key)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := serve(router, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("malformed ids are rejected before the handler", func(t *testing.T) {
		tok, err := middleware.IssueToken(testutil.TestUserID, key)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions/not-a-uuid", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		assert.Equal(t, http.StatusBadRequest, serve(router, req).Code)
	})
}

func TestRouter_CORS(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/transactions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	w := serve(router, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
