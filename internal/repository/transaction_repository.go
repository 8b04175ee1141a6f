package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the stock_transaction table.
// Every query is scoped to a single user.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, symbol, type, transaction_date, quantity, price, note, created_at`

// ListByUser retrieves a user's transactions matching filter, oldest first.
// Rows sharing a date keep insertion order, which the replay relies on for
// stable ordering.
//
// Symbol matches as a substring. StartDate and EndDate are inclusive instants;
// zero values leave that side open.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transaction WHERE user_id = ?`
	args := []any{userID}

	if filter.Symbol != "" {
		query += ` AND symbol LIKE ?`
		args = append(args, "%"+strings.ToUpper(filter.Symbol)+"%")
	}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, strings.ToUpper(filter.Type))
	}
	if !filter.StartDate.IsZero() {
		query += ` AND transaction_date >= ?`
		args = append(args, FormatTime(filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		query += ` AND transaction_date <= ?`
		args = append(args, FormatTime(filter.EndDate))
	}

	query += ` ORDER BY transaction_date ASC, created_at ASC, rowid ASC`

	return r.query(ctx, query, args...)
}

// ListByUserUntil retrieves every transaction of a user dated at or before cutoff.
func (r *TransactionRepository) ListByUserUntil(ctx context.Context, userID string, cutoff time.Time) ([]model.Transaction, error) {
	return r.ListByUser(ctx, userID, model.TransactionFilter{EndDate: cutoff})
}

// ListUserIDs returns every user that has at least one transaction.
func (r *TransactionRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM stock_transaction ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_transaction table: %w", err)
	}

	return users, nil
}

// GetTransaction retrieves a single transaction of a user.
// Returns apperrors.ErrTransactionNotFound when it does not exist.
func (r *TransactionRepository) GetTransaction(ctx context.Context, userID, id string) (model.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM stock_transaction WHERE id = ? AND user_id = ?`, id, userID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// InsertTransaction stores a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	_, err := r.db.ExecContext(ctx, insertTransactionQuery, transactionArgs(t)...)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// InsertTransactions stores all transactions atomically.
func (r *TransactionRepository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, insertTransactionQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range txs {
		if _, err := stmt.ExecContext(ctx, transactionArgs(&txs[i])...); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites the mutable fields of a transaction.
// Returns apperrors.ErrTransactionNotFound when no row of that user matches.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stock_transaction
		SET symbol = ?, type = ?, transaction_date = ?, quantity = ?, price = ?, note = ?
		WHERE id = ? AND user_id = ?
	`, t.Symbol, t.Type, FormatTime(t.Date), t.Quantity, t.Price, nullString(t.Note), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireAffected(res, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction of a user.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stock_transaction WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireAffected(res, apperrors.ErrTransactionNotFound)
}

const insertTransactionQuery = `
	INSERT INTO stock_transaction (` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func transactionArgs(t *model.Transaction) []any {
	return []any{
		t.ID, t.UserID, t.Symbol, t.Type, FormatTime(t.Date),
		t.Quantity, t.Price, nullString(t.Note), FormatTime(t.CreatedAt),
	}
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_transaction table: %w", err)
	}

	return transactions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var note sql.NullString

	err := s.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Type, &dateStr, &t.Quantity, &t.Price, &note, &createdAtStr)
	if err == sql.ErrNoRows {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan stock_transaction results: %w", err)
	}

	if t.Date, err = ParseTime(dateStr); err != nil {
		return t, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return t, err
	}
	t.Note = note.String

	return t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
