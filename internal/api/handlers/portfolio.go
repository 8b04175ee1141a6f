package handlers

import (
	"net/http"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio valuation and reports.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// GetPortfolio handles GET requests for the user's current holdings.
// Symbols whose price could not be resolved are valued at cost and listed in priceStatus.missing.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioResponse
// Error: 500 Internal Server Error if transactions cannot be loaded
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), userID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// GetReport handles GET requests for the trading report of a period.
// Both dates are inclusive calendar days. A missing or inverted range yields an empty report.
//
// Endpoint: GET /api/report?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&symbol=
// Response: 200 OK with Report
// Error: 400 Bad Request if a date is malformed
// Error: 500 Internal Server Error if transactions cannot be loaded
func (h *PortfolioHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := request.ParseReportQuery(q.Get("startDate"), q.Get("endDate"), q.Get("symbol"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return
	}

	report, err := h.portfolioService.GetReport(r.Context(), userID(r), query)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
