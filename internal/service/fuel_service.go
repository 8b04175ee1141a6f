package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/household"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// FuelService tracks vehicles and their refuels. Each refuel is mirrored as a
// household expense in the fuel category.
type FuelService struct {
	vehicleRepo    *repository.VehicleRepository
	fuelLogRepo    *repository.FuelLogRepository
	expenseService *ExpenseService
	categoryName   string
	log            zerolog.Logger
	now            func() time.Time
}

// NewFuelService creates a new FuelService. categoryName names the expense
// category refuels are recorded under; it is created on first use.
func NewFuelService(
	vehicleRepo *repository.VehicleRepository,
	fuelLogRepo *repository.FuelLogRepository,
	expenseService *ExpenseService,
	categoryName string,
	log zerolog.Logger,
) *FuelService {
	return &FuelService{
		vehicleRepo:    vehicleRepo,
		fuelLogRepo:    fuelLogRepo,
		expenseService: expenseService,
		categoryName:   categoryName,
		log:            log.With().Str("service", "fuel").Logger(),
		now:            time.Now,
	}
}

// ListVehicles returns the user's vehicles.
func (s *FuelService) ListVehicles(ctx context.Context, userID string) ([]model.Vehicle, error) {
	return s.vehicleRepo.ListVehicles(ctx, userID)
}

// CreateVehicle adds a vehicle.
func (s *FuelService) CreateVehicle(ctx context.Context, userID string, req request.CreateVehicleRequest) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{
		ID:           newID(),
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		LicensePlate: strings.TrimSpace(req.LicensePlate),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.vehicleRepo.InsertVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicle renames a vehicle or changes its plate.
func (s *FuelService) UpdateVehicle(ctx context.Context, userID, id string, req request.UpdateVehicleRequest) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetVehicle(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		vehicle.Name = strings.TrimSpace(*req.Name)
	}
	if req.LicensePlate != nil {
		vehicle.LicensePlate = strings.TrimSpace(*req.LicensePlate)
	}

	if err := s.vehicleRepo.UpdateVehicle(ctx, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// DeleteVehicle removes a vehicle and its fuel logs. Expenses already
// recorded for those logs are kept.
func (s *FuelService) DeleteVehicle(ctx context.Context, userID, id string) error {
	return s.vehicleRepo.DeleteVehicle(ctx, userID, id)
}

// ListFuelLogs returns the user's fuel logs matching filter, newest first.
func (s *FuelService) ListFuelLogs(ctx context.Context, userID string, filter repository.FuelLogFilter) ([]model.FuelLog, error) {
	return s.fuelLogRepo.ListFuelLogs(ctx, userID, filter)
}

// CreateFuelLog records a refuel and a matching expense entry. Failing to
// record the expense is logged and does not fail the refuel.
func (s *FuelService) CreateFuelLog(ctx context.Context, userID string, req request.CreateFuelLogRequest) (*model.FuelLog, error) {
	vehicle, err := s.vehicleRepo.GetVehicle(ctx, userID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	date, err := validation.ParseTime(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, err
	}

	fuelLog := &model.FuelLog{
		ID:          newID(),
		UserID:      userID,
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Name,
		Amount:      req.Amount,
		Date:        date,
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.fuelLogRepo.InsertFuelLog(ctx, fuelLog); err != nil {
		return nil, fmt.Errorf("failed to create fuel log: %w", err)
	}

	expenseID, err := s.recordExpense(ctx, userID, vehicle, fuelLog)
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Str("fuelLog", fuelLog.ID).Msg("Failed to record fuel expense")
		return fuelLog, nil
	}
	fuelLog.ExpenseID = expenseID

	return fuelLog, nil
}

// UpdateFuelLog applies the fields set in req to an existing fuel log. The
// linked expense entry is not changed.
func (s *FuelService) UpdateFuelLog(ctx context.Context, userID, id string, req request.UpdateFuelLogRequest) (*model.FuelLog, error) {
	fuelLog, err := s.fuelLogRepo.GetFuelLog(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.VehicleID != nil && *req.VehicleID != fuelLog.VehicleID {
		vehicle, err := s.vehicleRepo.GetVehicle(ctx, userID, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		fuelLog.VehicleID = vehicle.ID
		fuelLog.VehicleName = vehicle.Name
	}
	patch(&fuelLog.Amount, req.Amount)
	if req.Date != nil {
		if fuelLog.Date, err = validation.ParseTime(strings.TrimSpace(*req.Date)); err != nil {
			return nil, err
		}
	}
	if req.Note != nil {
		fuelLog.Note = strings.TrimSpace(*req.Note)
	}

	if err := s.fuelLogRepo.UpdateFuelLog(ctx, &fuelLog); err != nil {
		return nil, err
	}
	return &fuelLog, nil
}

// DeleteFuelLog removes a fuel log of the user.
func (s *FuelService) DeleteFuelLog(ctx context.Context, userID, id string) error {
	return s.fuelLogRepo.DeleteFuelLog(ctx, userID, id)
}

// GetReport totals the user's fuel spend for a year or a single month.
func (s *FuelService) GetReport(ctx context.Context, userID string, q household.FuelQuery) (household.FuelReport, error) {
	logs, err := s.fuelLogRepo.ListFuelLogs(ctx, userID, repository.FuelLogFilter{Year: q.Year, Month: q.Month})
	if err != nil {
		return household.FuelReport{}, err
	}

	entries := make([]household.FuelLog, len(logs))
	for i, l := range logs {
		entries[i] = household.FuelLog{
			ID:          l.ID,
			VehicleID:   l.VehicleID,
			VehicleName: l.VehicleName,
			Amount:      l.Amount,
			Date:        l.Date,
		}
	}

	return household.ReportFuel(entries, q), nil
}

func (s *FuelService) recordExpense(ctx context.Context, userID string, vehicle model.Vehicle, fuelLog *model.FuelLog) (string, error) {
	category, err := s.expenseService.ensureCategory(ctx, userID, s.categoryName, household.Expense)
	if err != nil {
		return "", err
	}

	expense, err := s.expenseService.CreateExpense(ctx, userID, request.CreateExpenseRequest{
		Type:       string(household.Expense),
		CategoryID: category.ID,
		Date:       fuelLog.Date.Format(time.RFC3339),
		Amount:     fuelLog.Amount,
		Note:       "Đổ xăng - " + vehicle.Name,
	})
	if err != nil {
		return "", err
	}

	if err := s.fuelLogRepo.SetExpenseID(ctx, userID, fuelLog.ID, expense.ID); err != nil {
		return "", err
	}
	return expense.ID, nil
}
