package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/household"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// ExpenseService handles household income and expense tracking.
type ExpenseService struct {
	categoryRepo *repository.ExpenseCategoryRepository
	expenseRepo  *repository.ExpenseRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	categoryRepo *repository.ExpenseCategoryRepository,
	expenseRepo *repository.ExpenseRepository,
	log zerolog.Logger,
) *ExpenseService {
	return &ExpenseService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		log:          log.With().Str("service", "expense").Logger(),
		now:          time.Now,
	}
}

// ListCategories returns the user's categories, optionally of one type only.
func (s *ExpenseService) ListCategories(ctx context.Context, userID, entryType string) ([]model.ExpenseCategory, error) {
	return s.categoryRepo.ListCategories(ctx, userID, strings.ToLower(entryType))
}

// CreateCategory adds a category. Names are unique per user and type.
func (s *ExpenseService) CreateCategory(ctx context.Context, userID string, req request.CreateCategoryRequest) (*model.ExpenseCategory, error) {
	category := &model.ExpenseCategory{
		ID:        newID(),
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		Type:      strings.ToLower(strings.TrimSpace(req.Type)),
		CreatedAt: s.now().UTC(),
	}

	if err := s.categoryRepo.InsertCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or retypes a category.
func (s *ExpenseService) UpdateCategory(ctx context.Context, userID, id string, req request.UpdateCategoryRequest) (*model.ExpenseCategory, error) {
	category, err := s.categoryRepo.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		category.Type = strings.ToLower(strings.TrimSpace(*req.Type))
	}

	if err := s.categoryRepo.UpdateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category. Its entries stay, uncategorized.
func (s *ExpenseService) DeleteCategory(ctx context.Context, userID, id string) error {
	return s.categoryRepo.DeleteCategory(ctx, userID, id)
}

// ListExpenses returns the user's entries matching filter, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID string, filter model.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.ListExpenses(ctx, userID, filter)
}

// GetExpense returns one entry of the user.
func (s *ExpenseService) GetExpense(ctx context.Context, userID, id string) (model.Expense, error) {
	return s.expenseRepo.GetExpense(ctx, userID, id)
}

// CreateExpense records an income or expense entry. A category, when given,
// must belong to the user and have the entry's type.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, req request.CreateExpenseRequest) (*model.Expense, error) {
	date, err := validation.ParseTime(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, err
	}

	expense := &model.Expense{
		ID:         newID(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Type:       strings.ToLower(strings.TrimSpace(req.Type)),
		Date:       date,
		Amount:     req.Amount,
		Note:       strings.TrimSpace(req.Note),
		CreatedAt:  s.now().UTC(),
	}

	if err := s.resolveCategory(ctx, expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.InsertExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// UpdateExpense applies the fields set in req to an existing entry.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, id string, req request.UpdateExpenseRequest) (*model.Expense, error) {
	expense, err := s.expenseRepo.GetExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		expense.Type = strings.ToLower(strings.TrimSpace(*req.Type))
	}
	if req.Date != nil {
		if expense.Date, err = validation.ParseTime(strings.TrimSpace(*req.Date)); err != nil {
			return nil, err
		}
	}
	patch(&expense.CategoryID, req.CategoryID)
	patch(&expense.Amount, req.Amount)
	if req.Note != nil {
		expense.Note = strings.TrimSpace(*req.Note)
	}

	if err := s.resolveCategory(ctx, &expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.UpdateExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes an entry of the user.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, id string) error {
	return s.expenseRepo.DeleteExpense(ctx, userID, id)
}

// GetSummary totals the user's entries matching filter.
func (s *ExpenseService) GetSummary(ctx context.Context, userID string, filter model.ExpenseFilter) (household.Summary, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, filter)
	if err != nil {
		return household.Summary{}, err
	}

	entries := make([]household.Entry, len(expenses))
	for i, e := range expenses {
		entries[i] = household.Entry{
			ID:           e.ID,
			Date:         e.Date,
			Type:         household.EntryType(e.Type),
			CategoryID:   e.CategoryID,
			CategoryName: e.CategoryName,
			Amount:       e.Amount,
		}
	}

	return household.Summarize(entries, household.Filter{
		Type:       household.EntryType(filter.Type),
		CategoryID: filter.CategoryID,
		Month:      filter.Month,
		Year:       filter.Year,
	}), nil
}

func (s *ExpenseService) resolveCategory(ctx context.Context, e *model.Expense) error {
	e.CategoryName = ""
	if e.CategoryID == "" {
		return nil
	}

	category, err := s.categoryRepo.GetCategory(ctx, e.UserID, e.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != e.Type {
		return apperrors.ErrCategoryTypeMismatch
	}

	e.CategoryName = category.Name
	return nil
}

// ensureCategory returns the user's category with the given name and type,
// creating it when missing.
func (s *ExpenseService) ensureCategory(ctx context.Context, userID, name string, entryType household.EntryType) (model.ExpenseCategory, error) {
	category, err := s.categoryRepo.FindCategoryByName(ctx, userID, name, string(entryType))
	if err == nil {
		return category, nil
	}
	if err != apperrors.ErrCategoryNotFound {
		return model.ExpenseCategory{}, err
	}

	created, err := s.CreateCategory(ctx, userID, request.CreateCategoryRequest{Name: name, Type: string(entryType)})
	if err != nil {
		return model.ExpenseCategory{}, err
	}
	return *created, nil
}
