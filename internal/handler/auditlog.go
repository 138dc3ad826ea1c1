package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type AuditLogHandler struct {
	logs *service.AuditLogService
}

func NewAuditLogHandler(logs *service.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{logs: logs}
}

func (h *AuditLogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// GET /logs
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.AuditLogFilter{Limit: page.Limit, Offset: page.Offset}

	query := r.URL.Query()
	if value := query.Get("level"); value != "" {
		filter.Level = &value
	}
	if value := query.Get("category"); value != "" {
		filter.Category = &value
	}
	if value := query.Get("userId"); value != "" {
		filter.UserID = &value
	}
	if value := query.Get("result"); value != "" {
		result := model.LogResult(value)
		filter.Result = &result
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter.From, filter.To = from, to

	entries, total, err := h.logs.ListLogs(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:   entries,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}
