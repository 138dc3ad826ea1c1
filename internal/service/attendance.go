package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

const (
	standardWorkdayHours = 8.0
	lateGraceMinutes     = 15
	defaultWorkStart     = "09:00"
)

type AttendanceService struct {
	attendance repository.AttendanceRepository
	employees  repository.EmployeeRepository
	log        zerolog.Logger
}

func NewAttendanceService(attendance repository.AttendanceRepository, employees repository.EmployeeRepository, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{attendance: attendance, employees: employees, log: logger}
}

func (s *AttendanceService) ListAttendance(ctx context.Context, filter model.AttendanceFilter) ([]model.Attendance, error) {
	records, err := s.attendance.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return records, nil
}

// CheckIn opens today's attendance record for an employee. Lateness is
// judged against the default work start with a grace window.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID, checkIn string, notes *string) (*model.Attendance, error) {
	if !IsValidTimeFormat(checkIn) {
		return nil, apperrors.InvalidInput("checkIn", "must be HH:MM")
	}

	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if employee == nil {
		return nil, apperrors.NotFound("Employee")
	}

	today := dateOnly(time.Now())
	existing, err := s.attendance.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if existing != nil {
		return nil, apperrors.InvalidState("Employee already checked in today")
	}

	status := model.AttendanceStatusPresent
	if IsLate(checkIn, defaultWorkStart, lateGraceMinutes) {
		status = model.AttendanceStatusLate
	}

	record, err := s.attendance.CheckIn(ctx, employeeID, today, status, checkIn, notes)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("employee_id", employeeID).Str("check_in", checkIn).Str("status", string(status)).Msg("Employee checked in")
	return record, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, employeeID, checkOut string) (*model.Attendance, error) {
	if !IsValidTimeFormat(checkOut) {
		return nil, apperrors.InvalidInput("checkOut", "must be HH:MM")
	}

	record, err := s.attendance.FindByEmployeeAndDate(ctx, employeeID, dateOnly(time.Now()))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if record == nil || record.CheckIn == nil {
		return nil, apperrors.InvalidState("Employee has not checked in today")
	}
	if record.CheckOut != nil {
		return nil, apperrors.InvalidState("Employee already checked out today")
	}

	working, overtime, err := CalculateWorkingHours(*record.CheckIn, checkOut)
	if err != nil {
		return nil, apperrors.InvalidInput("checkOut", err.Error())
	}

	updated, err := s.attendance.CheckOut(ctx, record.ID, checkOut, working, overtime)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("Attendance record")
	}
	return updated, nil
}

func (s *AttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	affected, err := s.attendance.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Attendance record")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClock turns "HH:MM" into minutes since midnight.
func parseClock(value string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return hours*60 + minutes, nil
}

// IsValidTimeFormat reports whether value is a wall-clock time in HH:MM form.
func IsValidTimeFormat(value string) bool {
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	_, err := parseClock(value)
	return err == nil
}

// CalculateWorkingHours returns total and overtime hours between two HH:MM
// stamps. A checkout earlier than the check-in is treated as crossing
// midnight.
func CalculateWorkingHours(checkIn, checkOut string) (float64, float64, error) {
	start, err := parseClock(checkIn)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(checkOut)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		end += 24 * 60
	}

	working := float64(end-start) / 60
	overtime := 0.0
	if working > standardWorkdayHours {
		overtime = working - standardWorkdayHours
	}
	return working, overtime, nil
}

// IsLate reports whether checkIn is past workStart plus the grace window.
func IsLate(checkIn, workStart string, graceMinutes int) bool {
	in, err := parseClock(checkIn)
	if err != nil {
		return false
	}
	start, err := parseClock(workStart)
	if err != nil {
		return false
	}
	return in > start+graceMinutes
}
