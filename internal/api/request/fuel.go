package request

import "github.com/shopspring/decimal"

type CreateVehicleRequest struct {
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
}

type UpdateVehicleRequest struct {
	Name         *string `json:"name,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`
}

type CreateFuelLogRequest struct {
	VehicleID string          `json:"vehicleId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Note      string          `json:"note"`
}

type UpdateFuelLogRequest struct {
	VehicleID *string          `json:"vehicleId,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Date      *string          `json:"date,omitempty"`
	Note      *string          `json:"note,omitempty"`
}
