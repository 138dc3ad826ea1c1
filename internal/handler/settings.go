package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{category}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin))
		r.Put("/{category}", h.Upsert)
	})

	return r
}

// GET /settings
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.ListSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// GET /settings/{category}
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := model.SettingsCategory(chi.URLParam(r, "category"))

	settings, err := h.settings.GetSettings(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

type upsertSettingsRequest struct {
	Settings json.RawMessage `json:"settings"`
}

// PUT /settings/{category}
func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	category := model.SettingsCategory(chi.URLParam(r, "category"))

	var req upsertSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	settings, err := h.settings.UpsertSettings(r.Context(), category, req.Settings, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
