package service

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/util"
)

type EmployeeService struct {
	employees repository.EmployeeRepository
	log       zerolog.Logger
}

func NewEmployeeService(employees repository.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, log: logger}
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if employee == nil {
		return nil, apperrors.NotFound("Employee")
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, int64, error) {
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	total, err := s.employees.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return employees, total, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, params model.CreateEmployeeParams) (*model.Employee, error) {
	if params.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if params.EmployeeNumber == "" {
		return nil, apperrors.MissingRequired("employeeNumber")
	}
	if params.Email != nil && !util.IsValidEmail(*params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}

	if existing, err := s.employees.FindByNumber(ctx, params.EmployeeNumber); err != nil {
		return nil, apperrors.Storage(err)
	} else if existing != nil {
		return nil, apperrors.AlreadyExists("Employee number")
	}

	employee, err := s.employees.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("employee_id", employee.ID).Str("number", employee.EmployeeNumber).Msg("Employee created")
	return employee, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, params model.UpdateEmployeeParams) (*model.Employee, error) {
	if params.Email != nil && !util.IsValidEmail(*params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}

	employee, err := s.employees.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if employee == nil {
		return nil, apperrors.NotFound("Employee")
	}
	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	affected, err := s.employees.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Employee")
	}

	s.log.Info().Str("employee_id", id).Msg("Employee deleted")
	return nil
}
