package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/household"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// ExpenseHandler handles HTTP requests for household income and expense endpoints.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// ListCategories handles GET requests for the user's categories.
//
// Endpoint: GET /api/expenses/categories?type=income|expense
// Response: 200 OK with array of ExpenseCategory
// Error: 400 Bad Request if type is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	entryType := r.URL.Query().Get("type")
	if entryType != "" && !household.EntryType(entryType).Valid() {
		response.RespondError(w, http.StatusBadRequest, "invalid type", entryType)
		return
	}

	categories, err := h.expenseService.ListCategories(r.Context(), userID(r), entryType)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCategories.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST requests to add a category.
//
// Endpoint: POST /api/expenses/categories
// Request Body: CreateCategoryRequest (name, type)
// Response: 201 Created with ExpenseCategory
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the user already has a category with that name and type
// Error: 500 Internal Server Error if creation fails
func (h *ExpenseHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	category, err := h.expenseService.CreateCategory(r.Context(), userID(r), req)
	if err != nil {
		respondCategoryError(w, err, "failed to create category")
		return
	}

	response.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT requests to rename or retype a category.
//
// Endpoint: PUT /api/expenses/categories/{uuid}
// Request Body: UpdateCategoryRequest
// Response: 200 OK with ExpenseCategory
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if category not found
// Error: 409 Conflict if the new name and type are taken
// Error: 500 Internal Server Error if update fails
func (h *ExpenseHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	category, err := h.expenseService.UpdateCategory(r.Context(), userID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondCategoryError(w, err, "failed to update category")
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE requests to remove a category. Its entries become uncategorized.
//
// Endpoint: DELETE /api/expenses/categories/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if category not found
// Error: 500 Internal Server Error if deletion fails
func (h *ExpenseHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.DeleteCategory(r.Context(), userID(r), chi.URLParam(r, "uuid")); err != nil {
		respondCategoryError(w, err, "failed to delete category")
		return
	}

	response.RespondNoContent(w)
}

// ListExpenses handles GET requests for the user's entries, newest first.
//
// Endpoint: GET /api/expenses?type=&categoryId=&month=&year=
// Response: 200 OK with array of Expense
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseExpenseFilter(q.Get("type"), q.Get("categoryId"), q.Get("month"), q.Get("year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	expenses, err := h.expenseService.ListExpenses(r.Context(), userID(r), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveExpenses.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, expenses)
}

// GetExpense handles GET requests for a single entry.
//
// Endpoint: GET /api/expenses/{uuid}
// Response: 200 OK with Expense
// Error: 404 Not Found if entry not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenseService.GetExpense(r.Context(), userID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondExpenseError(w, err, apperrors.ErrFailedToRetrieveExpenses.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, expense)
}

// CreateExpense handles POST requests to record an income or expense entry.
//
// Endpoint: POST /api/expenses
// Request Body: CreateExpenseRequest (type, categoryId, date, amount, note)
// Response: 201 Created with Expense
// Error: 400 Bad Request if validation fails or the category type differs from the entry type
// Error: 404 Not Found if the category does not exist
// Error: 500 Internal Server Error if creation fails
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateExpense(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	expense, err := h.expenseService.CreateExpense(r.Context(), userID(r), req)
	if err != nil {
		respondExpenseError(w, err, "failed to create expense")
		return
	}

	response.RespondJSON(w, http.StatusCreated, expense)
}

// UpdateExpense handles PUT requests to change an entry.
//
// Endpoint: PUT /api/expenses/{uuid}
// Request Body: UpdateExpenseRequest
// Response: 200 OK with Expense
// Error: 400 Bad Request if validation fails or the category type differs from the entry type
// Error: 404 Not Found if the entry or category does not exist
// Error: 500 Internal Server Error if update fails
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateExpense(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	expense, err := h.expenseService.UpdateExpense(r.Context(), userID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondExpenseError(w, err, "failed to update expense")
		return
	}

	response.RespondJSON(w, http.StatusOK, expense)
}

// DeleteExpense handles DELETE requests to remove an entry.
//
// Endpoint: DELETE /api/expenses/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if entry not found
// Error: 500 Internal Server Error if deletion fails
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.DeleteExpense(r.Context(), userID(r), chi.URLParam(r, "uuid")); err != nil {
		respondExpenseError(w, err, "failed to delete expense")
		return
	}

	response.RespondNoContent(w)
}

// GetSummary handles GET requests for income, expense and balance totals with
// per-category breakdowns.
//
// Endpoint: GET /api/expenses/summary?type=&categoryId=&month=&year=
// Response: 200 OK with household.Summary
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseExpenseFilter(q.Get("type"), q.Get("categoryId"), q.Get("month"), q.Get("year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	summary, err := h.expenseService.GetSummary(r.Context(), userID(r), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetExpenseSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

func respondCategoryError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		response.RespondError(w, http.StatusConflict, "category already exists", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}

func respondExpenseError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrExpenseNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrExpenseNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrCategoryTypeMismatch):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrCategoryTypeMismatch.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
