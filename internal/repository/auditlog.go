package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, params model.CreateAuditLogParams) (*model.AuditLog, error)
	List(ctx context.Context, filter model.AuditLogFilter) ([]model.AuditLog, error)
	Count(ctx context.Context, filter model.AuditLogFilter) (int64, error)
}

type auditLogRepo struct {
	db DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, params model.CreateAuditLogParams) (*model.AuditLog, error) {
	var entry model.AuditLog
	err := r.db.GetContext(ctx, &entry, `
		INSERT INTO audit_logs (
			level, action, category, user_id, username, details,
			resource_type, resource_id, result, error_message, metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING *
	`, params.Level, params.Action, params.Category, params.UserID,
		params.Username, params.Details, params.ResourceType, params.ResourceID,
		params.Result, params.ErrorMessage, params.Metadata)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func auditFilterClause(filter model.AuditLogFilter, args *[]interface{}) string {
	var conds []string
	if filter.Level != nil {
		*args = append(*args, *filter.Level)
		conds = append(conds, fmt.Sprintf("level = $%d", len(*args)))
	}
	if filter.Category != nil {
		*args = append(*args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(*args)))
	}
	if filter.UserID != nil {
		*args = append(*args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(*args)))
	}
	if filter.Result != nil {
		*args = append(*args, *filter.Result)
		conds = append(conds, fmt.Sprintf("result = $%d", len(*args)))
	}
	if filter.From != nil {
		*args = append(*args, *filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(*args)))
	}
	if filter.To != nil {
		*args = append(*args, *filter.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(*args)))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *auditLogRepo) List(ctx context.Context, filter model.AuditLogFilter) ([]model.AuditLog, error) {
	args := []interface{}{}
	query := `SELECT * FROM audit_logs` + auditFilterClause(filter, &args)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	entries := []model.AuditLog{}
	err := r.db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}

func (r *auditLogRepo) Count(ctx context.Context, filter model.AuditLogFilter) (int64, error) {
	args := []interface{}{}
	query := `SELECT COUNT(*) FROM audit_logs` + auditFilterClause(filter, &args)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}
