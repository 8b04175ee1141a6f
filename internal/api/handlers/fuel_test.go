package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/household"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/testutil"
)

func setupFuelHandler(t *testing.T) (*FuelHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := NewFuelHandler(testutil.NewTestFuelService(t, db))
	handler.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return handler, db
}

func TestFuelHandler_Vehicles(t *testing.T) {
	t.Run("creates and lists vehicles", func(t *testing.T) {
		handler, _ := setupFuelHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/fuel/vehicles", map[string]any{
			"name":         "Honda Vision",
			"licensePlate": "29-B1 123.45",
		})
		w := httptest.NewRecorder()

		handler.CreateVehicle(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.ListVehicles(w, testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/fuel/vehicles", nil), testutil.TestUserID))

		var got []model.Vehicle
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got) != 1 || got[0].LicensePlate != "29-B1 123.45" {
			t.Errorf("Unexpected vehicles: %+v", got)
		}
	})

	t.Run("returns 400 without a name", func(t *testing.T) {
		handler, _ := setupFuelHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/fuel/vehicles", map[string]any{"name": ""})
		w := httptest.NewRecorder()

		handler.CreateVehicle(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("renames a vehicle", func(t *testing.T) {
		handler, db := setupFuelHandler(t)
		v := testutil.CreateVehicle(t, db, "Wave")

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/fuel/vehicles/"+v.ID, map[string]any{"name": "Wave Alpha"})
		req = testutil.WithURLParams(req, map[string]string{"uuid": v.ID})
		w := httptest.NewRecorder()

		handler.UpdateVehicle(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("deleting a vehicle removes its logs", func(t *testing.T) {
		handler, db := setupFuelHandler(t)
		v := testutil.CreateVehicle(t, db, "Wave")
		testutil.CreateFuelLog(t, db, v, 80000, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/fuel/vehicles/"+v.ID, map[string]string{"uuid": v.ID})
		w := httptest.NewRecorder()

		handler.DeleteVehicle(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM fuel_log`).Scan(&count); err != nil {
			t.Fatalf("Failed to count fuel logs: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected no fuel logs, got %d", count)
		}
	})

	t.Run("returns 404 when updating an unknown vehicle", func(t *testing.T) {
		handler, _ := setupFuelHandler(t)
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/fuel/vehicles/"+id, map[string]any{"name": "x"})
		req = testutil.WithURLParams(req, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.UpdateVehicle(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestFuelHandler_CreateFuelLog(t *testing.T) {
	t.Run("records the refuel and a matching expense", func(t *testing.T) {
		handler, db := setupFuelHandler(t)
		v := testutil.CreateVehicle(t, db, "Vision")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/fuel/logs", map[string]any{
			"vehicleId": v.ID,
			"amount":    "75000",
			"date":      "2024-06-20",
		})
		w := httptest.NewRecorder()

		handler.CreateFuelLog(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var got model.FuelLog
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if got.ExpenseID == "" {
			t.Fatal("Expected a linked expense")
		}

		var amount, category string
		err := db.QueryRow(`
			SELECT e.amount, c.name FROM expense e JOIN expense_category c ON c.id = e.category_id WHERE e.id = ?
		`, got.ExpenseID).Scan(&amount, &category)
		if err != nil {
			t.Fatalf("Failed to load linked expense: %v", err)
		}
		if amount != "75000" || category != testutil.TestFuelCategory {
			t.Errorf("Unexpected expense: amount %s, category %s", amount, category)
		}
	})

	t.Run("returns 404 for an unknown vehicle", func(t *testing.T) {
		handler, _ := setupFuelHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/fuel/logs", map[string]any{
			"vehicleId": testutil.MakeID(),
			"amount":    "75000",
			"date":      "2024-06-20",
		})
		w := httptest.NewRecorder()

		handler.CreateFuelLog(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestFuelHandler_ListUpdateDeleteFuelLogs(t *testing.T) {
	handler, db := setupFuelHandler(t)
	vision := testutil.CreateVehicle(t, db, "Vision")
	wave := testutil.CreateVehicle(t, db, "Wave")

	l1 := testutil.CreateFuelLog(t, db, vision, 70000, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	testutil.CreateFuelLog(t, db, wave, 50000, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC))
	testutil.CreateFuelLog(t, db, vision, 65000, time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC))

	t.Run("filters by vehicle and year", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/fuel/logs", map[string]string{
			"vehicleId": vision.ID,
			"year":      "2024",
		})
		w := httptest.NewRecorder()

		handler.ListFuelLogs(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got []model.FuelLog
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got) != 1 || got[0].ID != l1.ID {
			t.Errorf("Expected only the June Vision log, got %+v", got)
		}
		if got[0].VehicleName != "Vision" {
			t.Errorf("Expected vehicle name Vision, got %q", got[0].VehicleName)
		}
	})

	t.Run("lists every log without filters", func(t *testing.T) {
		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/fuel/logs", nil), testutil.TestUserID)
		w := httptest.NewRecorder()

		handler.ListFuelLogs(w, req)

		var got []model.FuelLog
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if len(got) != 3 {
			t.Errorf("Expected 3 logs, got %d", len(got))
		}
	})

	t.Run("updates the amount of a log", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/fuel/logs/"+l1.ID, map[string]any{"amount": "72000"})
		req = testutil.WithURLParams(req, map[string]string{"uuid": l1.ID})
		w := httptest.NewRecorder()

		handler.UpdateFuelLog(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.FuelLog
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if got.Amount.String() != "72000" {
			t.Errorf("Expected amount 72000, got %s", got.Amount)
		}
	})

	t.Run("deletes a log and 404s afterwards", func(t *testing.T) {
		for _, want := range []int{http.StatusNoContent, http.StatusNotFound} {
			req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/fuel/logs/"+l1.ID, map[string]string{"uuid": l1.ID})
			w := httptest.NewRecorder()

			handler.DeleteFuelLog(w, testutil.AsUser(req, testutil.TestUserID))

			if w.Code != want {
				t.Errorf("Expected %d, got %d", want, w.Code)
			}
		}
	})
}

func TestFuelHandler_GetReport(t *testing.T) {
	handler, db := setupFuelHandler(t)
	vision := testutil.CreateVehicle(t, db, "Vision")
	wave := testutil.CreateVehicle(t, db, "Wave")

	testutil.CreateFuelLog(t, db, vision, 70000, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	testutil.CreateFuelLog(t, db, vision, 60000, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	testutil.CreateFuelLog(t, db, wave, 50000, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC))

	t.Run("defaults to the current year", func(t *testing.T) {
		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/fuel/report", nil), testutil.TestUserID)
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got household.FuelReport
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if got.Year != 2024 {
			t.Errorf("Expected year 2024, got %d", got.Year)
		}
		if got.Total.String() != "180000" || got.LogCount != 3 {
			t.Errorf("Expected 3 logs totalling 180000, got %d totalling %s", got.LogCount, got.Total)
		}
		if len(got.ByVehicle) != 2 {
			t.Errorf("Expected 2 vehicles, got %d", len(got.ByVehicle))
		}
	})

	t.Run("reports a single month", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/fuel/report", map[string]string{"year": "2024", "month": "6"})
		w := httptest.NewRecorder()

		handler.GetReport(w, testutil.AsUser(req, testutil.TestUserID))

		var got household.FuelReport
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if got.Total.String() != "110000" || got.LogCount != 2 {
			t.Errorf("Expected 2 logs totalling 110000, got %d totalling %s", got.LogCount, got.Total)
		}
	})

	t.Run("returns 400 for an invalid month", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/fuel/report", map[string]string{"month": "0"})
		w := httptest.NewRecorder()

		handler.GetReport(w, testutil.AsUser(req, testutil.TestUserID))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
