package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/importer"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// maxImportBytes bounds uploaded spreadsheets.
const maxImportBytes = 10 << 20

// TransactionHandler serves the stock trade ledger of the authenticated user.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListTransactions handles GET requests to list the user's transactions, newest first.
// Sells carry the profit realized against the average cost at the time of the sale.
//
// Endpoint: GET /api/transactions?symbol=&type=&startDate=&endDate=
// Response: 200 OK with array of TransactionResponse
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseTransactionFilter(q.Get("symbol"), q.Get("type"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	transactions, err := h.transactionService.ListTransactions(r.Context(), userID(r), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transactions/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactionService.GetTransaction(r.Context(), userID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondTransactionError(w, err, apperrors.ErrFailedToRetrieveTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a buy or sell.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (symbol, type, date, quantity, price, note)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), userID(r), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Only the fields present in the body are changed.
//
// Endpoint: PUT /api/transactions/{uuid}
// Request Body: UpdateTransactionRequest
// Response: 200 OK with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), userID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondTransactionError(w, err, "failed to update transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(r.Context(), userID(r), chi.URLParam(r, "uuid")); err != nil {
		respondTransactionError(w, err, "failed to delete transaction")
		return
	}

	response.RespondNoContent(w)
}

// ImportTransactions handles POST requests uploading a trade spreadsheet.
// Every usable row is stored; rows that could not be read are reported back.
//
// Endpoint: POST /api/transactions/import (multipart/form-data, field "file", .csv or .xlsx)
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if the upload is missing, unreadable or has no usable row
// Error: 500 Internal Server Error if storing fails
func (h *TransactionHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid upload", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "file is required", err.Error())
		return
	}
	defer file.Close()

	rows, err := importer.ReadFile(header.Filename, file)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read file", err.Error())
		return
	}

	result, err := h.transactionService.ImportTransactions(r.Context(), userID(r), rows)
	if err != nil {
		if errors.Is(err, apperrors.ErrNothingToImport) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNothingToImport.Error(), result.Skipped)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

func respondTransactionError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, apperrors.ErrTransactionNotFound) {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
		return
	}
	response.RespondError(w, http.StatusInternalServerError, message, err.Error())
}
