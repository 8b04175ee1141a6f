package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// ExpenseCategoryRepository provides data access methods for the expense_category table.
type ExpenseCategoryRepository struct {
	db *sql.DB
}

// NewExpenseCategoryRepository creates a new ExpenseCategoryRepository with the provided database connection.
func NewExpenseCategoryRepository(db *sql.DB) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, type, created_at`

// ListCategories returns a user's categories, optionally restricted to one type,
// ordered by type then name.
func (r *ExpenseCategoryRepository) ListCategories(ctx context.Context, userID, entryType string) ([]model.ExpenseCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM expense_category WHERE user_id = ?`
	args := []any{userID}
	if entryType != "" {
		query += ` AND type = ?`
		args = append(args, entryType)
	}
	query += ` ORDER BY type ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense_category table: %w", err)
	}
	defer rows.Close()

	categories := []model.ExpenseCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense_category table: %w", err)
	}

	return categories, nil
}

// GetCategory returns one category of a user.
// Returns apperrors.ErrCategoryNotFound when it does not exist.
func (r *ExpenseCategoryRepository) GetCategory(ctx context.Context, userID, id string) (model.ExpenseCategory, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM expense_category WHERE id = ? AND user_id = ?`, id, userID)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return model.ExpenseCategory{}, apperrors.ErrCategoryNotFound
	}
	return c, err
}

// FindCategoryByName looks a category up by its unique (name, type) pair.
// Returns apperrors.ErrCategoryNotFound when it does not exist.
func (r *ExpenseCategoryRepository) FindCategoryByName(ctx context.Context, userID, name, entryType string) (model.ExpenseCategory, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM expense_category WHERE user_id = ? AND name = ? AND type = ?`,
		userID, name, entryType)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return model.ExpenseCategory{}, apperrors.ErrCategoryNotFound
	}
	return c, err
}

// InsertCategory stores a new category.
// Returns apperrors.ErrDuplicateEntry when the user already has one with the same name and type.
func (r *ExpenseCategoryRepository) InsertCategory(ctx context.Context, c *model.ExpenseCategory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expense_category (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Type, FormatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", mapConstraintError(err))
	}
	return nil
}

// UpdateCategory renames or retypes a category.
func (r *ExpenseCategoryRepository) UpdateCategory(ctx context.Context, c *model.ExpenseCategory) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expense_category SET name = ?, type = ? WHERE id = ? AND user_id = ?`,
		c.Name, c.Type, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", mapConstraintError(err))
	}
	return requireAffected(res, apperrors.ErrCategoryNotFound)
}

// DeleteCategory removes a category. Its entries become uncategorized.
func (r *ExpenseCategoryRepository) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expense_category WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireAffected(res, apperrors.ErrCategoryNotFound)
}

func scanCategory(s scanner) (model.ExpenseCategory, error) {
	var c model.ExpenseCategory
	var createdAtStr string

	err := s.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &createdAtStr)
	if err == sql.ErrNoRows {
		return c, err
	}
	if err != nil {
		return c, fmt.Errorf("failed to scan expense_category results: %w", err)
	}

	c.CreatedAt, err = ParseTime(createdAtStr)
	return c, err
}
