package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	a := testutil.NewTransaction("VNM").WithDate(day(2024, 1, 5)).Build(t, db)
	b := testutil.NewTransaction("VNM").Sell().WithDate(day(2024, 1, 5)).WithQuantity(10).Build(t, db)
	c := testutil.NewTransaction("VNMX").WithDate(day(2024, 2, 1)).Build(t, db)
	testutil.NewTransaction("FPT").WithDate(day(2024, 3, 1)).Build(t, db)
	testutil.NewTransaction("VNM").ForUser("other").Build(t, db)

	t.Run("oldest first, insertion order within a day", func(t *testing.T) {
		txs, err := repo.ListByUser(ctx, testutil.TestUserID, model.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 4)
		assert.Equal(t, a.ID, txs[0].ID)
		assert.Equal(t, b.ID, txs[1].ID)
		assert.Equal(t, c.ID, txs[2].ID)
	})

	t.Run("symbol matches as a substring", func(t *testing.T) {
		txs, err := repo.ListByUser(ctx, testutil.TestUserID, model.TransactionFilter{Symbol: "vnm"})
		require.NoError(t, err)
		assert.Len(t, txs, 3)
	})

	t.Run("type and inclusive date range", func(t *testing.T) {
		txs, err := repo.ListByUser(ctx, testutil.TestUserID, model.TransactionFilter{
			Type:      "buy",
			StartDate: day(2024, 1, 5),
			EndDate:   day(2024, 2, 1),
		})
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, a.ID, txs[0].ID)
		assert.Equal(t, c.ID, txs[1].ID)
	})

	t.Run("until cutoff", func(t *testing.T) {
		txs, err := repo.ListByUserUntil(ctx, testutil.TestUserID, day(2024, 1, 31))
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("distinct users", func(t *testing.T) {
		users, err := repo.ListUserIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"other", testutil.TestUserID}, users)
	})
}

func TestTransactionRepository_InsertTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	existing := testutil.NewTransaction("VNM").Build(t, db)

	batch := []model.Transaction{
		{ID: testutil.MakeID(), UserID: testutil.TestUserID, Symbol: "FPT", Type: "BUY", Date: day(2024, 1, 1),
			Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1), CreatedAt: time.Now()},
		{ID: existing.ID, UserID: testutil.TestUserID, Symbol: "HPG", Type: "BUY", Date: day(2024, 1, 1),
			Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1), CreatedAt: time.Now()},
	}

	err := repo.InsertTransactions(ctx, batch)
	require.Error(t, err)

	txs, err := repo.ListByUser(ctx, testutil.TestUserID, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 1, "a failed batch must not leave partial rows")
}

func TestTransactionRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	tx := testutil.NewTransaction("VNM").ForUser("other").Build(t, db)

	_, err := repo.GetTransaction(ctx, testutil.TestUserID, tx.ID)
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)

	tx.UserID = testutil.TestUserID
	assert.ErrorIs(t, repo.UpdateTransaction(ctx, &tx), apperrors.ErrTransactionNotFound)
	assert.ErrorIs(t, repo.DeleteTransaction(ctx, testutil.TestUserID, tx.ID), apperrors.ErrTransactionNotFound)
}

func TestPriceRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)

	require.NoError(t, repo.SavePrice(ctx, "VNM", decimal.NewFromInt(70000), "ssi"))
	require.NoError(t, repo.SavePrice(ctx, "FPT", decimal.NewFromInt(120000), "vndirect"))
	require.NoError(t, repo.SavePrice(ctx, "VNM", decimal.NewFromInt(71000), "manual"))

	p, err := repo.GetPrice(ctx, "VNM")
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(71000)))
	assert.Equal(t, "manual", p.Source)

	all, err := repo.ListPrices(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "FPT", all[0].Symbol)

	loaded, err := repo.LoadPrices(ctx, []string{"VNM", "HPG"})
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.True(t, loaded["VNM"].Equal(decimal.NewFromInt(71000)))

	_, err = repo.GetPrice(ctx, "HPG")
	assert.ErrorIs(t, err, apperrors.ErrPriceNotFound)
}

func TestExpenseRepositories(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	categories := repository.NewExpenseCategoryRepository(db)
	expenses := repository.NewExpenseRepository(db)

	food := testutil.CreateCategory(t, db, "Ăn uống", "expense")
	testutil.CreateCategory(t, db, "Lương", "income")
	testutil.NewExpense(100000).WithCategory(food).OnDate(day(2024, 5, 31)).Build(t, db)
	june := testutil.NewExpense(200000).WithCategory(food).OnDate(day(2024, 6, 1)).Build(t, db)
	testutil.NewExpense(300000).OnDate(day(2023, 6, 1)).Build(t, db)

	t.Run("finds a category by name and type", func(t *testing.T) {
		c, err := categories.FindCategoryByName(ctx, testutil.TestUserID, "Ăn uống", "expense")
		require.NoError(t, err)
		assert.Equal(t, food.ID, c.ID)

		_, err = categories.FindCategoryByName(ctx, testutil.TestUserID, "Ăn uống", "income")
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})

	t.Run("duplicate maps to ErrDuplicateEntry", func(t *testing.T) {
		dup := model.ExpenseCategory{ID: testutil.MakeID(), UserID: testutil.TestUserID, Name: "Ăn uống", Type: "expense", CreatedAt: time.Now()}
		err := categories.InsertCategory(ctx, &dup)
		assert.True(t, errors.Is(err, apperrors.ErrDuplicateEntry), "got %v", err)
	})

	t.Run("month and year filters", func(t *testing.T) {
		got, err := expenses.ListExpenses(ctx, testutil.TestUserID, model.ExpenseFilter{Month: 6, Year: 2024})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, june.ID, got[0].ID)
		assert.Equal(t, "Ăn uống", got[0].CategoryName)

		got, err = expenses.ListExpenses(ctx, testutil.TestUserID, model.ExpenseFilter{Month: 6})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("category filter, newest first", func(t *testing.T) {
		got, err := expenses.ListExpenses(ctx, testutil.TestUserID, model.ExpenseFilter{CategoryID: food.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, june.ID, got[0].ID)
	})
}

func TestFuelRepositories(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	vehicles := repository.NewVehicleRepository(db)
	logs := repository.NewFuelLogRepository(db)

	bike := testutil.CreateVehicle(t, db, "Wave Alpha")
	car := testutil.CreateVehicle(t, db, "Vios")
	l1 := testutil.CreateFuelLog(t, db, bike, 80000, day(2024, 5, 2))
	testutil.CreateFuelLog(t, db, car, 600000, day(2024, 6, 15))
	testutil.CreateFuelLog(t, db, bike, 70000, day(2023, 5, 2))

	t.Run("filters by vehicle and period", func(t *testing.T) {
		got, err := logs.ListFuelLogs(ctx, testutil.TestUserID, repository.FuelLogFilter{VehicleID: bike.ID, Year: 2024})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, l1.ID, got[0].ID)
		assert.Equal(t, "Wave Alpha", got[0].VehicleName)

		got, err = logs.ListFuelLogs(ctx, testutil.TestUserID, repository.FuelLogFilter{Month: 5})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("links an expense", func(t *testing.T) {
		e := testutil.NewExpense(80000).Build(t, db)
		require.NoError(t, logs.SetExpenseID(ctx, testutil.TestUserID, l1.ID, e.ID))

		got, err := logs.GetFuelLog(ctx, testutil.TestUserID, l1.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, got.ExpenseID)
	})

	t.Run("deleting a vehicle removes its logs", func(t *testing.T) {
		require.NoError(t, vehicles.DeleteVehicle(ctx, testutil.TestUserID, bike.ID))

		got, err := logs.ListFuelLogs(ctx, testutil.TestUserID, repository.FuelLogFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, car.ID, got[0].VehicleID)

		_, err = vehicles.GetVehicle(ctx, testutil.TestUserID, bike.ID)
		assert.ErrorIs(t, err, apperrors.ErrVehicleNotFound)
	})
}
