package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseSelect = `
	SELECT e.id, e.user_id, e.category_id, c.name, e.type, e.transaction_date, e.amount, e.note, e.created_at
	FROM expense e
	LEFT JOIN expense_category c ON c.id = e.category_id
`

// ListExpenses returns a user's entries matching filter, newest first.
// Month and Year compare against the UTC calendar date of the entry.
func (r *ExpenseRepository) ListExpenses(ctx context.Context, userID string, filter model.ExpenseFilter) ([]model.Expense, error) {
	query := expenseSelect + ` WHERE e.user_id = ?`
	args := []any{userID}

	if filter.Type != "" {
		query += ` AND e.type = ?`
		args = append(args, filter.Type)
	}
	if filter.CategoryID != "" {
		query += ` AND e.category_id = ?`
		args = append(args, filter.CategoryID)
	}
	if filter.Year > 0 {
		query += ` AND CAST(strftime('%Y', e.transaction_date) AS INTEGER) = ?`
		args = append(args, filter.Year)
	}
	if filter.Month > 0 {
		query += ` AND CAST(strftime('%m', e.transaction_date) AS INTEGER) = ?`
		args = append(args, filter.Month)
	}

	query += ` ORDER BY e.transaction_date DESC, e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}

// GetExpense returns one entry of a user.
// Returns apperrors.ErrExpenseNotFound when it does not exist.
func (r *ExpenseRepository) GetExpense(ctx context.Context, userID, id string) (model.Expense, error) {
	row := r.db.QueryRowContext(ctx, expenseSelect+` WHERE e.id = ? AND e.user_id = ?`, id, userID)

	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return model.Expense{}, apperrors.ErrExpenseNotFound
	}
	return e, err
}

// InsertExpense stores a new entry.
func (r *ExpenseRepository) InsertExpense(ctx context.Context, e *model.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expense (id, user_id, category_id, type, transaction_date, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, nullString(e.CategoryID), e.Type, FormatTime(e.Date), e.Amount, nullString(e.Note), FormatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// UpdateExpense overwrites the mutable fields of an entry.
func (r *ExpenseRepository) UpdateExpense(ctx context.Context, e *model.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expense
		SET category_id = ?, type = ?, transaction_date = ?, amount = ?, note = ?
		WHERE id = ? AND user_id = ?
	`, nullString(e.CategoryID), e.Type, FormatTime(e.Date), e.Amount, nullString(e.Note), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireAffected(res, apperrors.ErrExpenseNotFound)
}

// DeleteExpense removes an entry of a user.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expense WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(res, apperrors.ErrExpenseNotFound)
}

func scanExpense(s scanner) (model.Expense, error) {
	var e model.Expense
	var categoryID, categoryName, note sql.NullString
	var dateStr, createdAtStr string

	err := s.Scan(&e.ID, &e.UserID, &categoryID, &categoryName, &e.Type, &dateStr, &e.Amount, &note, &createdAtStr)
	if err == sql.ErrNoRows {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("failed to scan expense results: %w", err)
	}

	if e.Date, err = ParseTime(dateStr); err != nil {
		return e, err
	}
	if e.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return e, err
	}
	e.CategoryID = categoryID.String
	e.CategoryName = categoryName.String
	e.Note = note.String

	return e, nil
}
