package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type ClientRepository interface {
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindByNumber(ctx context.Context, clientNumber string) (*model.Client, error)
	List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error)
	Count(ctx context.Context, filter model.ClientFilter) (int64, error)
	Create(ctx context.Context, params model.CreateClientParams) (*model.Client, error)
	Update(ctx context.Context, id string, params model.UpdateClientParams) (*model.Client, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type clientRepo struct {
	db DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) FindByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	err := r.db.GetContext(ctx, &client, `SELECT * FROM clients WHERE id = $1`, id)
	return HandleNotFound(&client, err)
}

func (r *clientRepo) FindByNumber(ctx context.Context, clientNumber string) (*model.Client, error) {
	var client model.Client
	err := r.db.GetContext(ctx, &client, `SELECT * FROM clients WHERE client_number = $1`, clientNumber)
	return HandleNotFound(&client, err)
}

func clientFilterClause(filter model.ClientFilter, args *[]interface{}) string {
	var conds []string
	if filter.Status != nil {
		*args = append(*args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(*args)))
	}
	if filter.Priority != nil {
		*args = append(*args, *filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(*args)))
	}
	if filter.Search != nil {
		*args = append(*args, "%"+*filter.Search+"%")
		n := len(*args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR company ILIKE $%d)", n, n))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *clientRepo) List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error) {
	args := []interface{}{}
	query := `SELECT * FROM clients` + clientFilterClause(filter, &args)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	clients := []model.Client{}
	err := r.db.SelectContext(ctx, &clients, query, args...)
	return clients, err
}

func (r *clientRepo) Count(ctx context.Context, filter model.ClientFilter) (int64, error) {
	args := []interface{}{}
	query := `SELECT COUNT(*) FROM clients` + clientFilterClause(filter, &args)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *clientRepo) Create(ctx context.Context, params model.CreateClientParams) (*model.Client, error) {
	var client model.Client
	err := r.db.GetContext(ctx, &client, `
		INSERT INTO clients (
			client_number, name, company, email, phone, industry, address,
			contact_person, financial_info, priority, tags, notes, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING *
	`, params.ClientNumber, params.Name, params.Company, params.Email,
		params.Phone, params.Industry, params.Address, params.ContactPerson,
		params.FinancialInfo, params.Priority, params.Tags, params.Notes,
		params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Update(ctx context.Context, id string, params model.UpdateClientParams) (*model.Client, error) {
	var client model.Client
	err := r.db.GetContext(ctx, &client, `
		UPDATE clients SET
			name = COALESCE($2, name),
			company = COALESCE($3, company),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			industry = COALESCE($6, industry),
			address = COALESCE($7, address),
			contact_person = COALESCE($8, contact_person),
			financial_info = COALESCE($9, financial_info),
			status = COALESCE($10, status),
			priority = COALESCE($11, priority),
			tags = COALESCE($12, tags),
			notes = COALESCE($13, notes),
			updated_by = $14,
			updated_at = $15
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Company, params.Email, params.Phone,
		params.Industry, params.Address, params.ContactPerson, params.FinancialInfo,
		params.Status, params.Priority, params.Tags, params.Notes,
		params.UpdatedBy, time.Now())
	return HandleNotFound(&client, err)
}

func (r *clientRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
