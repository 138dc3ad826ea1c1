package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/72tommy72/HRMate/internal/audit"
	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

type TransactionService struct {
	transactions repository.TransactionRepository
	audit        *audit.Logger
	log          zerolog.Logger
}

func NewTransactionService(transactions repository.TransactionRepository, auditLogger *audit.Logger, logger zerolog.Logger) *TransactionService {
	return &TransactionService{transactions: transactions, audit: auditLogger, log: logger}
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	txn, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if txn == nil {
		return nil, apperrors.NotFound("Transaction")
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, int64, error) {
	txns, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	total, err := s.transactions.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return txns, total, nil
}

func (s *TransactionService) Summary(ctx context.Context, from, to *time.Time) (*model.TransactionSummary, error) {
	summary, err := s.transactions.Summary(ctx, from, to)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return summary, nil
}

func (s *TransactionService) CreateTransaction(ctx context.Context, params model.CreateTransactionParams) (*model.Transaction, error) {
	if params.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount", "must be positive")
	}
	if params.Type != model.TransactionTypeIncome && params.Type != model.TransactionTypeExpense {
		return nil, apperrors.InvalidInput("type", "must be income or expense")
	}
	if params.TransactionNumber == "" {
		params.TransactionNumber = fmt.Sprintf("TXN-%d", time.Now().UnixNano())
	}
	if params.Currency == "" {
		params.Currency = "EGP"
	}
	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	txn, err := s.transactions.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.audit.Record(ctx, model.CreateAuditLogParams{
		Action:       "transaction.create",
		Category:     "financial",
		UserID:       &params.CreatedBy,
		ResourceType: strPtr("transaction"),
		ResourceID:   &txn.ID,
	})
	return txn, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, params model.UpdateTransactionParams) (*model.Transaction, error) {
	if params.Amount != nil && *params.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount", "must be positive")
	}

	txn, err := s.transactions.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if txn == nil {
		return nil, apperrors.NotFound("Transaction")
	}
	return txn, nil
}

// Approve transitions a pending transaction to approved. Transactions that
// already left pending cannot be approved again.
func (s *TransactionService) Approve(ctx context.Context, id, approvedBy string) (*model.Transaction, error) {
	return s.setStatus(ctx, id, model.TransactionStatusApproved, approvedBy)
}

func (s *TransactionService) Reject(ctx context.Context, id, rejectedBy string) (*model.Transaction, error) {
	return s.setStatus(ctx, id, model.TransactionStatusRejected, rejectedBy)
}

func (s *TransactionService) setStatus(ctx context.Context, id string, status model.TransactionStatus, actor string) (*model.Transaction, error) {
	txn, err := s.transactions.SetStatus(ctx, id, status, actor)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if txn == nil {
		// Either unknown or no longer pending; distinguish for the caller.
		existing, err := s.transactions.FindByID(ctx, id)
		if err != nil {
			return nil, apperrors.Storage(err)
		}
		if existing == nil {
			return nil, apperrors.NotFound("Transaction")
		}
		return nil, apperrors.InvalidState(fmt.Sprintf("Transaction is already %s", existing.Status))
	}

	s.audit.Record(ctx, model.CreateAuditLogParams{
		Action:       "transaction." + string(status),
		Category:     "financial",
		UserID:       &actor,
		ResourceType: strPtr("transaction"),
		ResourceID:   &txn.ID,
	})
	return txn, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	affected, err := s.transactions.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Transaction")
	}
	return nil
}

func strPtr(s string) *string { return &s }
