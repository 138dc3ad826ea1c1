package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id string) (*model.Employee, error)
	FindByNumber(ctx context.Context, employeeNumber string) (*model.Employee, error)
	List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error)
	Count(ctx context.Context, filter model.EmployeeFilter) (int64, error)
	Create(ctx context.Context, params model.CreateEmployeeParams) (*model.Employee, error)
	Update(ctx context.Context, id string, params model.UpdateEmployeeParams) (*model.Employee, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type employeeRepo struct {
	db DB
}

func NewEmployeeRepository(db *sqlx.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) FindByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, `SELECT * FROM employees WHERE id = $1`, id)
	return HandleNotFound(&employee, err)
}

func (r *employeeRepo) FindByNumber(ctx context.Context, employeeNumber string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, `SELECT * FROM employees WHERE employee_number = $1`, employeeNumber)
	return HandleNotFound(&employee, err)
}

func employeeFilterClause(filter model.EmployeeFilter, args *[]interface{}) string {
	var conds []string
	if filter.Department != nil {
		*args = append(*args, *filter.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(*args)))
	}
	if filter.Status != nil {
		*args = append(*args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(*args)))
	}
	if filter.Search != nil {
		*args = append(*args, "%"+*filter.Search+"%")
		n := len(*args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR employee_number ILIKE $%d)", n, n))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *employeeRepo) List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	args := []interface{}{}
	query := `SELECT * FROM employees` + employeeFilterClause(filter, &args)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	employees := []model.Employee{}
	err := r.db.SelectContext(ctx, &employees, query, args...)
	return employees, err
}

func (r *employeeRepo) Count(ctx context.Context, filter model.EmployeeFilter) (int64, error) {
	args := []interface{}{}
	query := `SELECT COUNT(*) FROM employees` + employeeFilterClause(filter, &args)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *employeeRepo) Create(ctx context.Context, params model.CreateEmployeeParams) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, `
		INSERT INTO employees (
			employee_number, name, email, phone, department, position, salary,
			start_date, national_id, address, birth_date, emergency_contact,
			work_schedule, benefits, notes, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING *
	`, params.EmployeeNumber, params.Name, params.Email, params.Phone,
		params.Department, params.Position, params.Salary, params.StartDate,
		params.NationalID, params.Address, params.BirthDate, params.EmergencyContact,
		params.WorkSchedule, params.Benefits, params.Notes, params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, id string, params model.UpdateEmployeeParams) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, `
		UPDATE employees SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			department = COALESCE($5, department),
			position = COALESCE($6, position),
			salary = COALESCE($7, salary),
			end_date = COALESCE($8, end_date),
			status = COALESCE($9, status),
			address = COALESCE($10, address),
			emergency_contact = COALESCE($11, emergency_contact),
			work_schedule = COALESCE($12, work_schedule),
			benefits = COALESCE($13, benefits),
			notes = COALESCE($14, notes),
			updated_by = $15,
			updated_at = $16
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Email, params.Phone, params.Department,
		params.Position, params.Salary, params.EndDate, params.Status,
		params.Address, params.EmergencyContact, params.WorkSchedule,
		params.Benefits, params.Notes, params.UpdatedBy, time.Now())
	return HandleNotFound(&employee, err)
}

func (r *employeeRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
