package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type AttendanceHandler struct {
	attendance *service.AttendanceService
}

func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/check-in", h.CheckIn)
	r.Post("/check-out", h.CheckOut)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin))
		r.Delete("/{attendanceID}", h.Delete)
	})

	return r
}

// GET /attendance
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.AttendanceFilter{Limit: page.Limit, Offset: page.Offset}

	query := r.URL.Query()
	if value := query.Get("employeeId"); value != "" {
		filter.EmployeeID = &value
	}
	if value := query.Get("status"); value != "" {
		status := model.AttendanceStatus(value)
		filter.Status = &status
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter.From, filter.To = from, to

	records, err := h.attendance.ListAttendance(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

type checkInRequest struct {
	EmployeeID string  `json:"employeeId"`
	CheckIn    string  `json:"checkIn"`
	Notes      *string `json:"notes,omitempty"`
}

// POST /attendance/check-in
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.attendance.CheckIn(r.Context(), req.EmployeeID, req.CheckIn, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

type checkOutRequest struct {
	EmployeeID string `json:"employeeId"`
	CheckOut   string `json:"checkOut"`
}

// POST /attendance/check-out
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req checkOutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.attendance.CheckOut(r.Context(), req.EmployeeID, req.CheckOut)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DELETE /attendance/{attendanceID}
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendance.DeleteAttendance(r.Context(), chi.URLParam(r, "attendanceID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
