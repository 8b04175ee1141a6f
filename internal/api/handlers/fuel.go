package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// FuelHandler handles HTTP requests for vehicle and fuel log endpoints.
type FuelHandler struct {
	fuelService *service.FuelService
	now         func() time.Time
}

// NewFuelHandler creates a new FuelHandler.
func NewFuelHandler(fuelService *service.FuelService) *FuelHandler {
	return &FuelHandler{
		fuelService: fuelService,
		now:         time.Now,
	}
}

// ListVehicles handles GET requests for the user's vehicles.
//
// Endpoint: GET /api/fuel/vehicles
// Response: 200 OK with array of Vehicle
// Error: 500 Internal Server Error if retrieval fails
func (h *FuelHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.fuelService.ListVehicles(r.Context(), userID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveVehicles.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle handles POST requests to add a vehicle.
//
// Endpoint: POST /api/fuel/vehicles
// Request Body: CreateVehicleRequest (name, licensePlate)
// Response: 201 Created with Vehicle
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *FuelHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateVehicleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateVehicle(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	vehicle, err := h.fuelService.CreateVehicle(r.Context(), userID(r), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create vehicle", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, vehicle)
}

// UpdateVehicle handles PUT requests to rename a vehicle or change its plate.
//
// Endpoint: PUT /api/fuel/vehicles/{uuid}
// Request Body: UpdateVehicleRequest
// Response: 200 OK with Vehicle
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if vehicle not found
// Error: 500 Internal Server Error if update fails
func (h *FuelHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateVehicleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateVehicle(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	vehicle, err := h.fuelService.UpdateVehicle(r.Context(), userID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondFuelError(w, err, "failed to update vehicle")
		return
	}

	response.RespondJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE requests to remove a vehicle and its fuel logs.
//
// Endpoint: DELETE /api/fuel/vehicles/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if vehicle not found
// Error: 500 Internal Server Error if deletion fails
func (h *FuelHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.fuelService.DeleteVehicle(r.Context(), userID(r), chi.URLParam(r, "uuid")); err != nil {
		respondFuelError(w, err, "failed to delete vehicle")
		return
	}

	response.RespondNoContent(w)
}

// ListFuelLogs handles GET requests for the user's fuel logs, newest first.
//
// Endpoint: GET /api/fuel/logs?vehicleId=&year=&month=
// Response: 200 OK with array of FuelLog
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *FuelHandler) ListFuelLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.FuelLogFilter{VehicleID: q.Get("vehicleId")}
	if q.Get("year") != "" || q.Get("month") != "" {
		fq, err := request.ParseFuelQuery(q.Get("year"), q.Get("month"), h.now())
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
			return
		}
		filter.Year, filter.Month = fq.Year, fq.Month
	}

	logs, err := h.fuelService.ListFuelLogs(r.Context(), userID(r), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFuelLogs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, logs)
}

// CreateFuelLog handles POST requests to record a refuel. A matching expense
// entry is recorded in the fuel category.
//
// Endpoint: POST /api/fuel/logs
// Request Body: CreateFuelLogRequest (vehicleId, amount, date, note)
// Response: 201 Created with FuelLog
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the vehicle does not exist
// Error: 500 Internal Server Error if creation fails
func (h *FuelHandler) CreateFuelLog(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFuelLogRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFuelLog(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	fuelLog, err := h.fuelService.CreateFuelLog(r.Context(), userID(r), req)
	if err != nil {
		respondFuelError(w, err, "failed to create fuel log")
		return
	}

	response.RespondJSON(w, http.StatusCreated, fuelLog)
}

// UpdateFuelLog handles PUT requests to change a fuel log.
//
// Endpoint: PUT /api/fuel/logs/{uuid}
// Request Body: UpdateFuelLogRequest
// Response: 200 OK with FuelLog
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the fuel log or vehicle does not exist
// Error: 500 Internal Server Error if update fails
func (h *FuelHandler) UpdateFuelLog(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateFuelLogRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFuelLog(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	fuelLog, err := h.fuelService.UpdateFuelLog(r.Context(), userID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondFuelError(w, err, "failed to update fuel log")
		return
	}

	response.RespondJSON(w, http.StatusOK, fuelLog)
}

// DeleteFuelLog handles DELETE requests to remove a fuel log.
//
// Endpoint: DELETE /api/fuel/logs/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if fuel log not found
// Error: 500 Internal Server Error if deletion fails
func (h *FuelHandler) DeleteFuelLog(w http.ResponseWriter, r *http.Request) {
	if err := h.fuelService.DeleteFuelLog(r.Context(), userID(r), chi.URLParam(r, "uuid")); err != nil {
		respondFuelError(w, err, "failed to delete fuel log")
		return
	}

	response.RespondNoContent(w)
}

// GetReport handles GET requests for fuel spend of a year or a month.
//
// Endpoint: GET /api/fuel/report?year=2024&month=all|1-12
// Response: 200 OK with household.FuelReport
// Error: 400 Bad Request if year or month is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *FuelHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := request.ParseFuelQuery(q.Get("year"), q.Get("month"), h.now())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	report, err := h.fuelService.GetReport(r.Context(), userID(r), query)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetFuelReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

func respondFuelError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrVehicleNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrVehicleNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrFuelLogNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrFuelLogNotFound.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
