package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/importer"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/validation"
)

// TransactionSource loads the stock transactions of a user, oldest first.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error)
	ListByUserUntil(ctx context.Context, userID string, cutoff time.Time) ([]model.Transaction, error)
}

// TransactionService handles stock transaction business logic.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	log             zerolog.Logger
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(transactionRepo *repository.TransactionRepository, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		log:             log.With().Str("service", "transaction").Logger(),
		now:             time.Now,
	}
}

// ListTransactions returns the user's transactions matching filter, newest first.
// Each sell carries the profit it realized, computed by replaying the user's
// full history so that filtering never changes the cost basis.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.TransactionResponse, error) {
	all, err := s.transactionRepo.ListByUser(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	realized := make(map[string]accounting.AnnotatedTransaction, len(all))
	for _, at := range accounting.ComputePortfolio(toAccounting(all), nil).Transactions {
		realized[at.ID] = at
	}

	matching, err := s.transactionRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]model.TransactionResponse, 0, len(matching))
	for i := len(matching) - 1; i >= 0; i-- {
		t := matching[i]
		resp := model.TransactionResponse{
			Transaction: t,
			TotalValue:  t.Quantity.Mul(t.Price),
		}
		if at, ok := realized[t.ID]; ok && at.RealizedPL.Valid {
			pl := at.RealizedPL.Decimal
			resp.RealizedPL = &pl
		}
		out = append(out, resp)
	}

	return out, nil
}

// GetTransaction retrieves a single transaction of the user.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, userID, id)
}

// CreateTransaction records a new buy or sell. The request must have passed
// validation.ValidateCreateTransaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := validation.ParseTime(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:        newID(),
		UserID:    userID,
		Symbol:    accounting.NormalizeSymbol(req.Symbol),
		Type:      strings.ToUpper(strings.TrimSpace(req.Type)),
		Date:      date,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: s.now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.log.Info().
		Str("user", userID).
		Str("symbol", transaction.Symbol).
		Str("type", transaction.Type).
		Msg("Transaction created")

	return transaction, nil
}

// UpdateTransaction applies the fields set in req to an existing transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		transaction.Symbol = accounting.NormalizeSymbol(*req.Symbol)
	}
	if req.Type != nil {
		transaction.Type = strings.ToUpper(strings.TrimSpace(*req.Type))
	}
	if req.Date != nil {
		if transaction.Date, err = validation.ParseTime(strings.TrimSpace(*req.Date)); err != nil {
			return nil, err
		}
	}
	patch(&transaction.Quantity, req.Quantity)
	patch(&transaction.Price, req.Price)
	if req.Note != nil {
		transaction.Note = strings.TrimSpace(*req.Note)
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, err
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction of the user.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.transactionRepo.DeleteTransaction(ctx, userID, id)
}

// ImportTransactions stores every usable spreadsheet row as a transaction of
// the user, all or nothing. Unusable rows are reported, not stored.
// Returns apperrors.ErrNothingToImport when no row was usable.
func (s *TransactionService) ImportTransactions(ctx context.Context, userID string, rows [][]string) (model.ImportResponse, error) {
	now := s.now().UTC()
	parsed := importer.ParseRows(rows, now)

	resp := model.ImportResponse{Skipped: make([]model.ImportRowError, 0, len(parsed.Skipped))}
	for _, sk := range parsed.Skipped {
		resp.Skipped = append(resp.Skipped, model.ImportRowError{Row: sk.Row, Reason: sk.Reason})
	}

	if len(parsed.Transactions) == 0 {
		return resp, apperrors.ErrNothingToImport
	}

	transactions := make([]model.Transaction, 0, len(parsed.Transactions))
	for _, t := range parsed.Transactions {
		transactions = append(transactions, model.Transaction{
			ID:        newID(),
			UserID:    userID,
			Symbol:    t.Symbol,
			Type:      string(t.Type),
			Date:      t.Date.UTC(),
			Quantity:  t.Quantity,
			Price:     t.Price,
			Note:      t.Note,
			CreatedAt: now,
		})
	}

	if err := s.transactionRepo.InsertTransactions(ctx, transactions); err != nil {
		return resp, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportTransactions, err)
	}
	resp.Imported = len(transactions)

	s.log.Info().
		Str("user", userID).
		Int("imported", resp.Imported).
		Int("skipped", len(resp.Skipped)).
		Msg("Transactions imported")

	return resp, nil
}

func toAccounting(txs []model.Transaction) []accounting.Transaction {
	out := make([]accounting.Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.Accounting()
	}
	return out
}
