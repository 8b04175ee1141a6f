package validation

import (
	"strings"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
)

func ValidateCreateVehicle(req request.CreateVehicleRequest) error {
	errors := make(map[string]string)

	checkName(errors, "name", strings.TrimSpace(req.Name), 100)
	if len(req.LicensePlate) > 20 {
		errors["licensePlate"] = "licensePlate must be 20 characters or less"
	}

	return orNil(errors)
}

func ValidateUpdateVehicle(req request.UpdateVehicleRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		checkName(errors, "name", strings.TrimSpace(*req.Name), 100)
	}
	if req.LicensePlate != nil && len(*req.LicensePlate) > 20 {
		errors["licensePlate"] = "licensePlate must be 20 characters or less"
	}

	return orNil(errors)
}

func ValidateCreateFuelLog(req request.CreateFuelLogRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.VehicleID); err != nil {
		errors["vehicleId"] = err.Error()
	}
	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}
	checkDate(errors, "date", strings.TrimSpace(req.Date))

	return orNil(errors)
}

func ValidateUpdateFuelLog(req request.UpdateFuelLogRequest) error {
	errors := make(map[string]string)

	if req.VehicleID != nil {
		if err := ValidateUUID(*req.VehicleID); err != nil {
			errors["vehicleId"] = err.Error()
		}
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}
	if req.Date != nil {
		checkDate(errors, "date", strings.TrimSpace(*req.Date))
	}

	return orNil(errors)
}
