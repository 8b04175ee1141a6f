package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/testutil"
)

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	setupHandler := func(t *testing.T, prices map[string]float64) (*PortfolioHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockPriceProvider(prices)
		return NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, provider)), db
	}

	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	t.Run("values holdings at current prices", func(t *testing.T) {
		handler, db := setupHandler(t, map[string]float64{"VNM": 12000})
		testutil.NewTransaction("VNM").WithDate(day).WithQuantity(100).WithPrice(10000).Build(t, db)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), testutil.TestUserID)
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.PortfolioResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got.Holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(got.Holdings))
		}
		h := got.Holdings[0]
		if h.MarketValue.String() != "1200000" {
			t.Errorf("Expected market value 1200000, got %s", h.MarketValue)
		}
		if h.UnrealizedPL.String() != "200000" {
			t.Errorf("Expected unrealized P/L 200000, got %s", h.UnrealizedPL)
		}
		if got.PriceStatus.Requested != 1 || got.PriceStatus.Resolved != 1 {
			t.Errorf("Unexpected price status: %+v", got.PriceStatus)
		}
	})

	t.Run("lists symbols without a price", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		testutil.NewTransaction("HPG").WithDate(day).Build(t, db)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), testutil.TestUserID)
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.PortfolioResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got.PriceStatus.Missing) != 1 || got.PriceStatus.Missing[0] != "HPG" {
			t.Errorf("Expected HPG missing, got %v", got.PriceStatus.Missing)
		}
		if !got.Holdings[0].CurrentPrice.IsZero() {
			t.Errorf("Expected zero current price, got %s", got.Holdings[0].CurrentPrice)
		}
	})

	t.Run("returns an empty portfolio for a new user", func(t *testing.T) {
		handler, _ := setupHandler(t, nil)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), "brand-new")
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		var got model.PortfolioResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got.Holdings) != 0 {
			t.Errorf("Expected no holdings, got %d", len(got.Holdings))
		}
		if !got.Summary.TotalInvested.IsZero() {
			t.Errorf("Expected nothing invested, got %s", got.Summary.TotalInvested)
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		db.Close()

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), testutil.TestUserID)
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_GetReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

	testutil.NewTransaction("VNM").WithDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)).WithQuantity(100).WithPrice(10000).Build(t, db)
	testutil.NewTransaction("VNM").Sell().WithDate(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)).WithQuantity(40).WithPrice(12000).Build(t, db)
	testutil.NewTransaction("VNM").Sell().WithDate(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)).WithQuantity(10).WithPrice(9000).Build(t, db)

	t.Run("reports sells inside the window against the prior cost", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report", map[string]string{
			"startDate": "2024-02-01",
			"endDate":   "2024-02-10",
		})
		w := httptest.NewRecorder()

		handler.GetReport(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got accounting.Report
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got.Details) != 1 {
			t.Fatalf("Expected 1 sell in the window, got %d", len(got.Details))
		}
		if got.RealizedPL.String() != "80000" {
			t.Errorf("Expected realized P/L 80000, got %s", got.RealizedPL)
		}
		if !got.TotalBuy.IsZero() {
			t.Errorf("Expected no buys in the window, got %s", got.TotalBuy)
		}
		if got.TotalSell.String() != "480000" {
			t.Errorf("Expected total sell 480000, got %s", got.TotalSell)
		}
	})

	t.Run("returns an empty report without dates", func(t *testing.T) {
		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/report", nil), testutil.TestUserID)
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var got accounting.Report
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got.Details) != 0 || !got.RealizedPL.IsZero() {
			t.Errorf("Expected an empty report, got %+v", got)
		}
	})

	t.Run("returns 400 for a malformed date", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report", map[string]string{
			"startDate": "01/02/2024",
			"endDate":   "2024-02-10",
		})
		w := httptest.NewRecorder()

		handler.GetReport(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
