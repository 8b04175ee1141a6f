package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *validation.Error, got %v", err)
	}
	return verr.Fields
}

func TestValidateCreateTransaction(t *testing.T) {
	valid := request.CreateTransactionRequest{
		Symbol:   "vnm",
		Type:     "buy",
		Date:     "2024-01-15",
		Quantity: decimal.NewFromInt(100),
		Price:    decimal.NewFromInt(70000),
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := ValidateCreateTransaction(valid); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts a zero price", func(t *testing.T) {
		req := valid
		req.Price = decimal.Zero
		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		req := request.CreateTransactionRequest{
			Symbol:   "  ",
			Type:     "hold",
			Date:     "15/01/2024",
			Quantity: decimal.Zero,
			Price:    decimal.NewFromInt(-1),
		}

		fields := fieldErrors(t, ValidateCreateTransaction(req))
		for _, f := range []string{"symbol", "type", "date", "quantity", "price"} {
			if _, ok := fields[f]; !ok {
				t.Errorf("Expected error for field %s, got %v", f, fields)
			}
		}
	})
}

func TestValidateUpdateTransaction(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		if err := ValidateUpdateTransaction(request.UpdateTransactionRequest{}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		q := decimal.NewFromInt(-5)
		fields := fieldErrors(t, ValidateUpdateTransaction(request.UpdateTransactionRequest{Quantity: &q}))
		if fields["quantity"] == "" {
			t.Errorf("Expected quantity error, got %v", fields)
		}
	})
}

func TestValidateUpdatePrice(t *testing.T) {
	if err := ValidateUpdatePrice("FPT", request.UpdatePriceRequest{Price: decimal.NewFromInt(95000)}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	fields := fieldErrors(t, ValidateUpdatePrice("FPT", request.UpdatePriceRequest{}))
	if fields["price"] == "" {
		t.Errorf("Expected price error, got %v", fields)
	}
}

func TestValidateCreateExpense(t *testing.T) {
	t.Run("uncategorized entry is valid", func(t *testing.T) {
		req := request.CreateExpenseRequest{Type: "expense", Date: "2024-03-01", Amount: decimal.NewFromInt(50000)}
		if err := ValidateCreateExpense(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("malformed category id is rejected", func(t *testing.T) {
		req := request.CreateExpenseRequest{Type: "income", Date: "2024-03-01", Amount: decimal.NewFromInt(1), CategoryID: "nope"}
		fields := fieldErrors(t, ValidateCreateExpense(req))
		if fields["categoryId"] == "" {
			t.Errorf("Expected categoryId error, got %v", fields)
		}
	})
}

func TestValidateCreateFuelLog(t *testing.T) {
	fields := fieldErrors(t, ValidateCreateFuelLog(request.CreateFuelLogRequest{}))
	for _, f := range []string{"vehicleId", "amount", "date"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("Expected error for field %s, got %v", f, fields)
		}
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-05-01T10:00:00+07:00")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Hour() != 3 || got.Location().String() != "UTC" {
		t.Errorf("Expected 03:00 UTC, got %v", got)
	}

	if _, err := ParseTime("yesterday"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Expected ErrInvalidDate, got %v", err)
	}
}
