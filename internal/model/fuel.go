package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is a vehicle whose fuel spend is tracked.
type Vehicle struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	LicensePlate string    `json:"licensePlate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FuelLog is one refuel. ExpenseID links the household expense recorded for it.
type FuelLog struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	VehicleID   string          `json:"vehicleId"`
	VehicleName string          `json:"vehicleName,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Note        string          `json:"note,omitempty"`
	ExpenseID   string          `json:"expenseId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
