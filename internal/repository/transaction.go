package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type TransactionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
	List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error)
	Count(ctx context.Context, filter model.TransactionFilter) (int64, error)
	Summary(ctx context.Context, from, to *time.Time) (*model.TransactionSummary, error)
	Create(ctx context.Context, params model.CreateTransactionParams) (*model.Transaction, error)
	Update(ctx context.Context, id string, params model.UpdateTransactionParams) (*model.Transaction, error)
	// SetStatus transitions a pending transaction; the status guard makes
	// approval idempotence a database concern rather than a service one.
	SetStatus(ctx context.Context, id string, status model.TransactionStatus, approvedBy string) (*model.Transaction, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type transactionRepo struct {
	db DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.GetContext(ctx, &txn, `SELECT * FROM transactions WHERE id = $1`, id)
	return HandleNotFound(&txn, err)
}

func transactionFilterClause(filter model.TransactionFilter, args *[]interface{}) string {
	var conds []string
	if filter.Type != nil {
		*args = append(*args, *filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(*args)))
	}
	if filter.Status != nil {
		*args = append(*args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(*args)))
	}
	if filter.CategoryID != nil {
		*args = append(*args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(*args)))
	}
	if filter.ClientID != nil {
		*args = append(*args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(*args)))
	}
	if filter.From != nil {
		*args = append(*args, *filter.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(*args)))
	}
	if filter.To != nil {
		*args = append(*args, *filter.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(*args)))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *transactionRepo) List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	args := []interface{}{}
	query := `SELECT * FROM transactions` + transactionFilterClause(filter, &args)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	txns := []model.Transaction{}
	err := r.db.SelectContext(ctx, &txns, query, args...)
	return txns, err
}

func (r *transactionRepo) Count(ctx context.Context, filter model.TransactionFilter) (int64, error) {
	args := []interface{}{}
	query := `SELECT COUNT(*) FROM transactions` + transactionFilterClause(filter, &args)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *transactionRepo) Summary(ctx context.Context, from, to *time.Time) (*model.TransactionSummary, error) {
	args := []interface{}{}
	var conds []string
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var summary model.TransactionSummary
	err := r.db.GetContext(ctx, &summary, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS total_income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS total_expense,
			COUNT(*) AS count
		FROM transactions`+where, args...)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *transactionRepo) Create(ctx context.Context, params model.CreateTransactionParams) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.GetContext(ctx, &txn, `
		INSERT INTO transactions (
			transaction_number, type, amount, currency, description, category_id,
			date, due_date, payment_method, reference, client_id, employee_id,
			tax, tags, notes, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING *
	`, params.TransactionNumber, params.Type, params.Amount, params.Currency,
		params.Description, params.CategoryID, params.Date, params.DueDate,
		params.PaymentMethod, params.Reference, params.ClientID, params.EmployeeID,
		params.Tax, params.Tags, params.Notes, params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepo) Update(ctx context.Context, id string, params model.UpdateTransactionParams) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.GetContext(ctx, &txn, `
		UPDATE transactions SET
			amount = COALESCE($2, amount),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			date = COALESCE($5, date),
			due_date = COALESCE($6, due_date),
			payment_method = COALESCE($7, payment_method),
			reference = COALESCE($8, reference),
			tax = COALESCE($9, tax),
			tags = COALESCE($10, tags),
			notes = COALESCE($11, notes),
			updated_by = $12,
			updated_at = $13
		WHERE id = $1
		RETURNING *
	`, id, params.Amount, params.Description, params.CategoryID, params.Date,
		params.DueDate, params.PaymentMethod, params.Reference, params.Tax,
		params.Tags, params.Notes, params.UpdatedBy, time.Now())
	return HandleNotFound(&txn, err)
}

func (r *transactionRepo) SetStatus(ctx context.Context, id string, status model.TransactionStatus, approvedBy string) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.GetContext(ctx, &txn, `
		UPDATE transactions SET
			status = $2,
			approved_by = $3,
			approved_at = $4,
			updated_at = $4
		WHERE id = $1 AND status = 'pending'
		RETURNING *
	`, id, status, approvedBy, time.Now())
	return HandleNotFound(&txn, err)
}

func (r *transactionRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
