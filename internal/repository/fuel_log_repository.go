package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// FuelLogRepository provides data access methods for the fuel_log table.
type FuelLogRepository struct {
	db *sql.DB
}

// NewFuelLogRepository creates a new FuelLogRepository with the provided database connection.
func NewFuelLogRepository(db *sql.DB) *FuelLogRepository {
	return &FuelLogRepository{db: db}
}

// FuelLogFilter narrows a fuel log listing. Zero values match everything.
type FuelLogFilter struct {
	VehicleID string
	Year      int
	Month     int
}

const fuelLogSelect = `
	SELECT f.id, f.user_id, f.vehicle_id, v.name, f.amount, f.log_date, f.note, f.expense_id, f.created_at
	FROM fuel_log f
	JOIN vehicle v ON v.id = f.vehicle_id
`

// ListFuelLogs returns a user's fuel logs matching filter, newest first.
func (r *FuelLogRepository) ListFuelLogs(ctx context.Context, userID string, filter FuelLogFilter) ([]model.FuelLog, error) {
	query := fuelLogSelect + ` WHERE f.user_id = ?`
	args := []any{userID}

	if filter.VehicleID != "" {
		query += ` AND f.vehicle_id = ?`
		args = append(args, filter.VehicleID)
	}
	if filter.Year > 0 {
		query += ` AND CAST(strftime('%Y', f.log_date) AS INTEGER) = ?`
		args = append(args, filter.Year)
	}
	if filter.Month > 0 {
		query += ` AND CAST(strftime('%m', f.log_date) AS INTEGER) = ?`
		args = append(args, filter.Month)
	}

	query += ` ORDER BY f.log_date DESC, f.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fuel_log table: %w", err)
	}
	defer rows.Close()

	logs := []model.FuelLog{}
	for rows.Next() {
		l, err := scanFuelLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fuel_log table: %w", err)
	}

	return logs, nil
}

// GetFuelLog returns one fuel log of a user.
// Returns apperrors.ErrFuelLogNotFound when it does not exist.
func (r *FuelLogRepository) GetFuelLog(ctx context.Context, userID, id string) (model.FuelLog, error) {
	row := r.db.QueryRowContext(ctx, fuelLogSelect+` WHERE f.id = ? AND f.user_id = ?`, id, userID)

	l, err := scanFuelLog(row)
	if err == sql.ErrNoRows {
		return model.FuelLog{}, apperrors.ErrFuelLogNotFound
	}
	return l, err
}

// InsertFuelLog stores a new fuel log.
func (r *FuelLogRepository) InsertFuelLog(ctx context.Context, l *model.FuelLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fuel_log (id, user_id, vehicle_id, amount, log_date, note, expense_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.UserID, l.VehicleID, l.Amount, FormatTime(l.Date), nullString(l.Note), nullString(l.ExpenseID), FormatTime(l.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert fuel log: %w", err)
	}
	return nil
}

// UpdateFuelLog overwrites the mutable fields of a fuel log.
func (r *FuelLogRepository) UpdateFuelLog(ctx context.Context, l *model.FuelLog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fuel_log
		SET vehicle_id = ?, amount = ?, log_date = ?, note = ?
		WHERE id = ? AND user_id = ?
	`, l.VehicleID, l.Amount, FormatTime(l.Date), nullString(l.Note), l.ID, l.UserID)
	if err != nil {
		return fmt.Errorf("failed to update fuel log: %w", err)
	}
	return requireAffected(res, apperrors.ErrFuelLogNotFound)
}

// SetExpenseID links a fuel log to the expense entry recorded for it.
func (r *FuelLogRepository) SetExpenseID(ctx context.Context, userID, id, expenseID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fuel_log SET expense_id = ? WHERE id = ? AND user_id = ?`,
		nullString(expenseID), id, userID)
	if err != nil {
		return fmt.Errorf("failed to link fuel log expense: %w", err)
	}
	return requireAffected(res, apperrors.ErrFuelLogNotFound)
}

// DeleteFuelLog removes a fuel log of a user. The linked expense entry is kept.
func (r *FuelLogRepository) DeleteFuelLog(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fuel_log WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete fuel log: %w", err)
	}
	return requireAffected(res, apperrors.ErrFuelLogNotFound)
}

func scanFuelLog(s scanner) (model.FuelLog, error) {
	var l model.FuelLog
	var note, expenseID sql.NullString
	var dateStr, createdAtStr string

	err := s.Scan(&l.ID, &l.UserID, &l.VehicleID, &l.VehicleName, &l.Amount, &dateStr, &note, &expenseID, &createdAtStr)
	if err == sql.ErrNoRows {
		return l, err
	}
	if err != nil {
		return l, fmt.Errorf("failed to scan fuel_log results: %w", err)
	}

	if l.Date, err = ParseTime(dateStr); err != nil {
		return l, err
	}
	if l.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return l, err
	}
	l.Note = note.String
	l.ExpenseID = expenseID.String

	return l, nil
}
