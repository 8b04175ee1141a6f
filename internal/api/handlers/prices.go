package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// PriceHandler handles HTTP requests for market price endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// GetPrices handles GET requests for stored prices. Nothing is fetched live.
//
// Endpoint: GET /api/prices?symbols=VNM,FPT
// Response: 200 OK with array of MarketPrice
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.priceService.GetPrices(r.Context(), splitList(r.URL.Query().Get("symbols")))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// UpdatePrice handles PUT requests setting a manual price for a symbol.
//
// Endpoint: PUT /api/prices/{symbol}
// Request Body: UpdatePriceRequest (price)
// Response: 200 OK with MarketPrice
// Error: 400 Bad Request if the price is not positive
// Error: 500 Internal Server Error if saving fails
func (h *PriceHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	req, err := parseJSON[request.UpdatePriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePrice(symbol, req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	price, err := h.priceService.UpdatePrice(r.Context(), symbol, req.Price)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, price)
}

// RefreshPrices handles POST requests force-fetching the prices of the user's
// open positions from the market data providers.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with PriceRefreshResponse
// Error: 504 Gateway Timeout if the request was cancelled mid-fetch
// Error: 500 Internal Server Error if the refresh fails
func (h *PriceHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.RefreshPrices(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrFailedToRefreshPrices) {
			response.RespondError(w, http.StatusGatewayTimeout, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
