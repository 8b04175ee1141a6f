package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
)

// TestUserID owns every row built by the factories unless overridden.
const TestUserID = "test-user"

// TransactionBuilder provides a fluent interface for creating test stock transactions.
//
// Example usage:
//
//	// Simple creation with defaults (BUY 100 @ 10000 today)
//	tx := testutil.NewTransaction("VNM").Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction("FPT").
//	    Sell().
//	    WithQuantity(50).
//	    WithPrice(120000).
//	    WithDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	UserID    string
	Symbol    string
	Type      string
	Date      time.Time
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Note      string
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(symbol string) *TransactionBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &TransactionBuilder{
		ID:        MakeID(),
		UserID:    TestUserID,
		Symbol:    symbol,
		Type:      "BUY",
		Date:      now.Truncate(24 * time.Hour),
		Quantity:  decimal.NewFromInt(100),
		Price:     decimal.NewFromInt(10000),
		CreatedAt: now,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// ForUser sets the owning user.
func (b *TransactionBuilder) ForUser(userID string) *TransactionBuilder {
	b.UserID = userID
	return b
}

// Sell makes the transaction a SELL.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = "SELL"
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(q float64) *TransactionBuilder {
	b.Quantity = decimal.NewFromFloat(q)
	return b
}

// WithPrice sets the per-unit price.
func (b *TransactionBuilder) WithPrice(p float64) *TransactionBuilder {
	b.Price = decimal.NewFromFloat(p)
	return b
}

// WithNote sets the note.
func (b *TransactionBuilder) WithNote(note string) *TransactionBuilder {
	b.Note = note
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO stock_transaction (id, user_id, symbol, type, transaction_date, quantity, price, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Symbol, b.Type, repository.FormatTime(b.Date),
		b.Quantity.String(), b.Price.String(), b.Note, repository.FormatTime(b.CreatedAt))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		UserID:    b.UserID,
		Symbol:    b.Symbol,
		Type:      b.Type,
		Date:      b.Date.UTC(),
		Quantity:  b.Quantity,
		Price:     b.Price,
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
	}
}

// CreateMarketPrice stores a last known price for symbol.
//
// Example usage:
//
//	testutil.CreateMarketPrice(t, db, "VNM", 70000, "ssi")
func CreateMarketPrice(t *testing.T, db *sql.DB, symbol string, price float64, source string) model.MarketPrice {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	p := decimal.NewFromFloat(price)

	_, err := db.Exec(`INSERT INTO market_price (symbol, price, source, updated_at) VALUES (?, ?, ?, ?)`,
		symbol, p.String(), source, repository.FormatTime(now))
	if err != nil {
		t.Fatalf("Failed to create test market price: %v", err)
	}

	return model.MarketPrice{Symbol: symbol, Price: p, Source: source, UpdatedAt: now}
}

// CreateCategory creates an expense category of the test user.
//
// Example usage:
//
//	salary := testutil.CreateCategory(t, db, "Lương", "income")
func CreateCategory(t *testing.T, db *sql.DB, name, entryType string) model.ExpenseCategory {
	t.Helper()

	c := model.ExpenseCategory{
		ID:        MakeID(),
		UserID:    TestUserID,
		Name:      name,
		Type:      entryType,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := db.Exec(`INSERT INTO expense_category (id, user_id, name, type, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Type, repository.FormatTime(c.CreatedAt))
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return c
}

// ExpenseBuilder provides a fluent interface for creating household entries.
//
// Example usage:
//
//	testutil.NewExpense(50000).WithCategory(food).OnDate(date).Build(t, db)
//	testutil.NewExpense(2000000).Income().Build(t, db)
type ExpenseBuilder struct {
	ID           string
	UserID       string
	CategoryID   string
	CategoryName string
	Type         string
	Date         time.Time
	Amount       decimal.Decimal
	Note         string
}

// NewExpense creates an uncategorized expense entry dated today.
func NewExpense(amount float64) *ExpenseBuilder {
	return &ExpenseBuilder{
		ID:     MakeID(),
		UserID: TestUserID,
		Type:   "expense",
		Date:   time.Now().UTC().Truncate(24 * time.Hour),
		Amount: decimal.NewFromFloat(amount),
	}
}

// Income makes the entry an income.
func (b *ExpenseBuilder) Income() *ExpenseBuilder {
	b.Type = "income"
	return b
}

// WithCategory files the entry under c and takes its type.
func (b *ExpenseBuilder) WithCategory(c model.ExpenseCategory) *ExpenseBuilder {
	b.CategoryID = c.ID
	b.CategoryName = c.Name
	b.Type = c.Type
	return b
}

// OnDate sets the entry date.
func (b *ExpenseBuilder) OnDate(date time.Time) *ExpenseBuilder {
	b.Date = date
	return b
}

// Build creates the entry in the database and returns it.
func (b *ExpenseBuilder) Build(t *testing.T, db *sql.DB) model.Expense {
	t.Helper()

	var categoryID any
	if b.CategoryID != "" {
		categoryID = b.CategoryID
	}
	createdAt := time.Now().UTC().Truncate(time.Second)

	_, err := db.Exec(`
		INSERT INTO expense (id, user_id, category_id, type, transaction_date, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.UserID, categoryID, b.Type, repository.FormatTime(b.Date), b.Amount.String(), b.Note, repository.FormatTime(createdAt))
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}

	return model.Expense{
		ID:           b.ID,
		UserID:       b.UserID,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		Type:         b.Type,
		Date:         b.Date.UTC(),
		Amount:       b.Amount,
		Note:         b.Note,
		CreatedAt:    createdAt,
	}
}

// CreateVehicle creates a vehicle of the test user.
//
// Example usage:
//
//	bike := testutil.CreateVehicle(t, db, "Wave Alpha")
func CreateVehicle(t *testing.T, db *sql.DB, name string) model.Vehicle {
	t.Helper()

	v := model.Vehicle{
		ID:        MakeID(),
		UserID:    TestUserID,
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := db.Exec(`INSERT INTO vehicle (id, user_id, name, license_plate, created_at) VALUES (?, ?, ?, NULL, ?)`,
		v.ID, v.UserID, v.Name, repository.FormatTime(v.CreatedAt))
	if err != nil {
		t.Fatalf("Failed to create test vehicle: %v", err)
	}

	return v
}

// CreateFuelLog records a refuel of v on date without a linked expense.
//
// Example usage:
//
//	testutil.CreateFuelLog(t, db, bike, 80000, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
func CreateFuelLog(t *testing.T, db *sql.DB, v model.Vehicle, amount float64, date time.Time) model.FuelLog {
	t.Helper()

	l := model.FuelLog{
		ID:          MakeID(),
		UserID:      v.UserID,
		VehicleID:   v.ID,
		VehicleName: v.Name,
		Amount:      decimal.NewFromFloat(amount),
		Date:        date.UTC(),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	_, err := db.Exec(`
		INSERT INTO fuel_log (id, user_id, vehicle_id, amount, log_date, note, expense_id, created_at)
		VALUES (?, ?, ?, ?, ?, NULL, NULL, ?)
	`, l.ID, l.UserID, l.VehicleID, l.Amount.String(), repository.FormatTime(l.Date), repository.FormatTime(l.CreatedAt))
	if err != nil {
		t.Fatalf("Failed to create test fuel log: %v", err)
	}

	return l
}
