package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type AttendanceRepository interface {
	FindByID(ctx context.Context, id string) (*model.Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*model.Attendance, error)
	List(ctx context.Context, filter model.AttendanceFilter) ([]model.Attendance, error)
	CheckIn(ctx context.Context, employeeID string, date time.Time, status model.AttendanceStatus, checkIn string, notes *string) (*model.Attendance, error)
	CheckOut(ctx context.Context, id string, checkOut string, workingHours, overtimeHours float64) (*model.Attendance, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type attendanceRepo struct {
	db DB
}

func NewAttendanceRepository(db *sqlx.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) FindByID(ctx context.Context, id string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.GetContext(ctx, &record, `SELECT * FROM attendance WHERE id = $1`, id)
	return HandleNotFound(&record, err)
}

func (r *attendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.GetContext(ctx, &record, `
		SELECT * FROM attendance WHERE employee_id = $1 AND date = $2
	`, employeeID, date)
	return HandleNotFound(&record, err)
}

func (r *attendanceRepo) List(ctx context.Context, filter model.AttendanceFilter) ([]model.Attendance, error) {
	args := []interface{}{}
	var conds []string
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conds = append(conds, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	query := `SELECT * FROM attendance`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	records := []model.Attendance{}
	err := r.db.SelectContext(ctx, &records, query, args...)
	return records, err
}

func (r *attendanceRepo) CheckIn(ctx context.Context, employeeID string, date time.Time, status model.AttendanceStatus, checkIn string, notes *string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.GetContext(ctx, &record, `
		INSERT INTO attendance (employee_id, date, status, check_in, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, employeeID, date, status, checkIn, notes)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) CheckOut(ctx context.Context, id string, checkOut string, workingHours, overtimeHours float64) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.GetContext(ctx, &record, `
		UPDATE attendance SET
			check_out = $2,
			working_hours = $3,
			overtime_hours = $4,
			updated_at = $5
		WHERE id = $1
		RETURNING *
	`, id, checkOut, workingHours, overtimeHours, time.Now())
	return HandleNotFound(&record, err)
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
