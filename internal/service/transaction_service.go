package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/models"
	appErrors "github.com/noah-isme/studio-api/pkg/errors"
)

// TransactionRepository persists financial entries.
type TransactionRepository interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, in models.NewTransactionInput) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CreateTransactionRequest holds payload for a new transaction. Status falls back to Pendente.
type CreateTransactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	DueDate     string          `json:"due_date"`
	Status      string          `json:"status"`
}

// UpdateTransactionRequest changes the settlement status.
type UpdateTransactionRequest struct {
	Status *string `json:"status"`
}

// TransactionService handles financial entry use-cases.
type TransactionService struct {
	repo   TransactionRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(repo TransactionRepository, cache *CacheService, logger *zap.Logger) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{repo: repo, cache: cache, logger: logger}
}

// List returns every transaction ordered by due date.
func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list transactions failed", zap.Error(err))
		return nil, appErrors.Store(err)
	}
	return transactions, nil
}

// Create records a transaction.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*models.Transaction, error) {
	status := models.TransactionStatus(req.Status)
	if status == "" {
		status = models.TransactionPending
	}
	created, err := s.repo.Create(ctx, models.NewTransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		DueDate:     req.DueDate,
		Status:      status,
	})
	if err != nil {
		s.logger.Error("create transaction failed", zap.Error(err))
		return nil, appErrors.Store(err)
	}
	s.cache.InvalidateStats(ctx)
	return created, nil
}

// UpdateStatus sets the status of a transaction.
func (s *TransactionService) UpdateStatus(ctx context.Context, id int64, req UpdateTransactionRequest) (*models.Transaction, error) {
	if req.Status == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status is required")
	}
	updated, err := s.repo.UpdateStatus(ctx, id, models.TransactionStatus(*req.Status))
	if err != nil {
		s.logger.Error("update transaction failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Store(err)
	}
	s.cache.InvalidateStats(ctx)
	return updated, nil
}

// Delete removes a transaction. A missing id is not an error.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete transaction failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Store(err)
	}
	if affected == 0 {
		s.logger.Debug("delete transaction matched no rows", zap.Int64("id", id))
	}
	s.cache.InvalidateStats(ctx)
	return nil
}
