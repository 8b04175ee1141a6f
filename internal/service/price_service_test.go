package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/marketdata"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/testutil"
)

func TestPriceService_GetPrices(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPriceService(t, db)

	testutil.CreateMarketPrice(t, db, "VNM", 70000, "ssi")
	testutil.CreateMarketPrice(t, db, "FPT", 120000, "vndirect")

	t.Run("returns every stored price without a filter", func(t *testing.T) {
		prices, err := svc.GetPrices(ctx, nil)
		if err != nil {
			t.Fatalf("GetPrices() returned unexpected error: %v", err)
		}
		if len(prices) != 2 {
			t.Errorf("Expected 2 prices, got %d", len(prices))
		}
	})

	t.Run("normalizes and drops blank symbols", func(t *testing.T) {
		prices, err := svc.GetPrices(ctx, []string{" vnm", "", "HPG"})
		if err != nil {
			t.Fatalf("GetPrices() returned unexpected error: %v", err)
		}
		if len(prices) != 1 || prices[0].Symbol != "VNM" {
			t.Errorf("Expected only VNM, got %+v", prices)
		}
	})
}

func TestPriceService_UpdatePrice(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	provider := testutil.NewMockPriceProvider(map[string]float64{"VNM": 70000})
	svc := testutil.NewTestPriceService(t, db, provider)

	got, err := svc.UpdatePrice(ctx, "vnm", decimal.NewFromInt(72500))
	if err != nil {
		t.Fatalf("UpdatePrice() returned unexpected error: %v", err)
	}
	if got.Symbol != "VNM" || got.Source != marketdata.SourceManual {
		t.Errorf("Expected manual VNM price, got %+v", got)
	}
	if !got.Price.Equal(decimal.NewFromInt(72500)) {
		t.Errorf("Expected price 72500, got %s", got.Price)
	}

	// A forced refresh replaces the manual price.
	testutil.NewTransaction("VNM").Build(t, db)
	if _, err := svc.RefreshPrices(ctx, testutil.TestUserID); err != nil {
		t.Fatalf("RefreshPrices() returned unexpected error: %v", err)
	}
	prices, err := svc.GetPrices(ctx, []string{"VNM"})
	if err != nil {
		t.Fatalf("GetPrices() returned unexpected error: %v", err)
	}
	if len(prices) != 1 || !prices[0].Price.Equal(decimal.NewFromInt(70000)) || prices[0].Source != "mock" {
		t.Errorf("Expected refreshed mock price 70000, got %+v", prices)
	}
}

func TestPriceService_RefreshPrices(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches open positions only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockPriceProvider(map[string]float64{"VNM": 70000, "FPT": 120000})
		svc := testutil.NewTestPriceService(t, db, provider)

		testutil.NewTransaction("VNM").Build(t, db)
		testutil.NewTransaction("FPT").WithDate(day(2024, 1, 1)).Build(t, db)
		testutil.NewTransaction("FPT").Sell().WithDate(day(2024, 2, 1)).Build(t, db)

		res, err := svc.RefreshPrices(ctx, testutil.TestUserID)
		if err != nil {
			t.Fatalf("RefreshPrices() returned unexpected error: %v", err)
		}
		if res.Total != 1 || res.Updated != 1 {
			t.Errorf("Expected 1 of 1 updated, got %d of %d", res.Updated, res.Total)
		}
		if provider.Queries() != 1 {
			t.Errorf("Expected 1 provider query, got %d", provider.Queries())
		}
		if len(res.Missing) != 0 {
			t.Errorf("Expected nothing missing, got %v", res.Missing)
		}
	})

	t.Run("reports symbols no provider knows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockPriceProvider(map[string]float64{"VNM": 70000})
		svc := testutil.NewTestPriceService(t, db, provider)

		testutil.NewTransaction("VNM").Build(t, db)
		testutil.NewTransaction("ZZZ").Build(t, db)

		res, err := svc.RefreshPrices(ctx, testutil.TestUserID)
		if err != nil {
			t.Fatalf("RefreshPrices() returned unexpected error: %v", err)
		}
		if len(res.Missing) != 1 || res.Missing[0] != "ZZZ" {
			t.Errorf("Expected ZZZ missing, got %v", res.Missing)
		}
		if !res.Prices["ZZZ"].IsZero() {
			t.Errorf("Expected zero price for ZZZ, got %s", res.Prices["ZZZ"])
		}
	})

	t.Run("falls back to the stored price when providers fail", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockPriceProvider(nil).WithError(errors.New("upstream down"))
		svc := testutil.NewTestPriceService(t, db, provider)

		testutil.NewTransaction("VNM").Build(t, db)
		testutil.CreateMarketPrice(t, db, "VNM", 68000, "ssi")

		res, err := svc.RefreshPrices(ctx, testutil.TestUserID)
		if err != nil {
			t.Fatalf("RefreshPrices() returned unexpected error: %v", err)
		}
		if res.Updated != 0 || len(res.Missing) != 0 {
			t.Errorf("Expected no update and nothing missing, got %+v", res)
		}
		if !res.Prices["VNM"].Equal(decimal.NewFromInt(68000)) {
			t.Errorf("Expected stored price 68000, got %s", res.Prices["VNM"])
		}
	})

	t.Run("handles closed database connection", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		db.Close()

		if _, err := svc.RefreshPrices(ctx, testutil.TestUserID); err == nil {
			t.Error("Expected error when database is closed, got nil")
		}
	})
}

func TestPriceService_RefreshAllPrices(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	provider := testutil.NewMockPriceProvider(map[string]float64{"VNM": 70000, "FPT": 120000})
	svc := testutil.NewTestPriceService(t, db, provider)

	testutil.NewTransaction("VNM").Build(t, db)
	testutil.NewTransaction("VNM").ForUser("second-user").Build(t, db)
	testutil.NewTransaction("FPT").ForUser("second-user").Build(t, db)

	res, err := svc.RefreshAllPrices(ctx)
	if err != nil {
		t.Fatalf("RefreshAllPrices() returned unexpected error: %v", err)
	}
	if res.Requested != 2 || res.Updated != 2 {
		t.Errorf("Expected 2 of 2 updated, got %d of %d", res.Updated, res.Requested)
	}
	if provider.Queries() != 2 {
		t.Errorf("Expected each symbol fetched once, got %d queries", provider.Queries())
	}
}
