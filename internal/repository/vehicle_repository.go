package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// VehicleRepository provides data access methods for the vehicle table.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new VehicleRepository with the provided database connection.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, user_id, name, license_plate, created_at`

// ListVehicles returns a user's vehicles ordered by name.
func (r *VehicleRepository) ListVehicles(ctx context.Context, userID string) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicle WHERE user_id = ? ORDER BY name ASC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle table: %w", err)
	}
	defer rows.Close()

	vehicles := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle table: %w", err)
	}

	return vehicles, nil
}

// GetVehicle returns one vehicle of a user.
// Returns apperrors.ErrVehicleNotFound when it does not exist.
func (r *VehicleRepository) GetVehicle(ctx context.Context, userID, id string) (model.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicle WHERE id = ? AND user_id = ?`, id, userID)

	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return model.Vehicle{}, apperrors.ErrVehicleNotFound
	}
	return v, err
}

// InsertVehicle stores a new vehicle.
func (r *VehicleRepository) InsertVehicle(ctx context.Context, v *model.Vehicle) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicle (`+vehicleColumns+`) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.Name, nullString(v.LicensePlate), FormatTime(v.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

// UpdateVehicle overwrites the name and plate of a vehicle.
func (r *VehicleRepository) UpdateVehicle(ctx context.Context, v *model.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vehicle SET name = ?, license_plate = ? WHERE id = ? AND user_id = ?`,
		v.Name, nullString(v.LicensePlate), v.ID, v.UserID)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return requireAffected(res, apperrors.ErrVehicleNotFound)
}

// DeleteVehicle removes a vehicle together with its fuel logs.
func (r *VehicleRepository) DeleteVehicle(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicle WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return requireAffected(res, apperrors.ErrVehicleNotFound)
}

func scanVehicle(s scanner) (model.Vehicle, error) {
	var v model.Vehicle
	var plate sql.NullString
	var createdAtStr string

	err := s.Scan(&v.ID, &v.UserID, &v.Name, &plate, &createdAtStr)
	if err == sql.ErrNoRows {
		return v, err
	}
	if err != nil {
		return v, fmt.Errorf("failed to scan vehicle results: %w", err)
	}

	v.LicensePlate = plate.String
	v.CreatedAt, err = ParseTime(createdAtStr)
	return v, err
}
