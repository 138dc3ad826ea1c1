package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type EmployeeHandler struct {
	employees *service.EmployeeService
}

func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{employeeID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
		r.Post("/", h.Create)
		r.Put("/{employeeID}", h.Update)
		r.Delete("/{employeeID}", h.Delete)
	})

	return r
}

// GET /employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.EmployeeFilter{Limit: page.Limit, Offset: page.Offset}

	query := r.URL.Query()
	if department := query.Get("department"); department != "" {
		filter.Department = &department
	}
	if status := query.Get("status"); status != "" {
		employeeStatus := model.EmployeeStatus(status)
		filter.Status = &employeeStatus
	}
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}

	employees, total, err := h.employees.ListEmployees(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:   employees,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GET /employees/{employeeID}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employees.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

type createEmployeeRequest struct {
	EmployeeNumber   string           `json:"employeeNumber"`
	Name             string           `json:"name"`
	Email            *string          `json:"email,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Department       *string          `json:"department,omitempty"`
	Position         *string          `json:"position,omitempty"`
	Salary           *float64         `json:"salary,omitempty"`
	StartDate        *time.Time       `json:"startDate,omitempty"`
	NationalID       *string          `json:"nationalId,omitempty"`
	Address          *string          `json:"address,omitempty"`
	BirthDate        *time.Time       `json:"birthDate,omitempty"`
	EmergencyContact *json.RawMessage `json:"emergencyContact,omitempty"`
	WorkSchedule     *json.RawMessage `json:"workSchedule,omitempty"`
	Benefits         *json.RawMessage `json:"benefits,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

// POST /employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	employee, err := h.employees.CreateEmployee(r.Context(), model.CreateEmployeeParams{
		EmployeeNumber:   req.EmployeeNumber,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Department:       req.Department,
		Position:         req.Position,
		Salary:           req.Salary,
		StartDate:        req.StartDate,
		NationalID:       req.NationalID,
		Address:          req.Address,
		BirthDate:        req.BirthDate,
		EmergencyContact: req.EmergencyContact,
		WorkSchedule:     req.WorkSchedule,
		Benefits:         req.Benefits,
		Notes:            req.Notes,
		CreatedBy:        actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

type updateEmployeeRequest struct {
	Name             *string               `json:"name,omitempty"`
	Email            *string               `json:"email,omitempty"`
	Phone            *string               `json:"phone,omitempty"`
	Department       *string               `json:"department,omitempty"`
	Position         *string               `json:"position,omitempty"`
	Salary           *float64              `json:"salary,omitempty"`
	EndDate          *time.Time            `json:"endDate,omitempty"`
	Status           *model.EmployeeStatus `json:"status,omitempty"`
	Address          *string               `json:"address,omitempty"`
	EmergencyContact *json.RawMessage      `json:"emergencyContact,omitempty"`
	WorkSchedule     *json.RawMessage      `json:"workSchedule,omitempty"`
	Benefits         *json.RawMessage      `json:"benefits,omitempty"`
	Notes            *string               `json:"notes,omitempty"`
}

// PUT /employees/{employeeID}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	employee, err := h.employees.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), model.UpdateEmployeeParams{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Department:       req.Department,
		Position:         req.Position,
		Salary:           req.Salary,
		EndDate:          req.EndDate,
		Status:           req.Status,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		WorkSchedule:     req.WorkSchedule,
		Benefits:         req.Benefits,
		Notes:            req.Notes,
		UpdatedBy:        actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

// DELETE /employees/{employeeID}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employees.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
