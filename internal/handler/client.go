package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{clientID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
		r.Post("/", h.Create)
		r.Put("/{clientID}", h.Update)
		r.Delete("/{clientID}", h.Delete)
	})

	return r
}

// GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.ClientFilter{Limit: page.Limit, Offset: page.Offset}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		clientStatus := model.ClientStatus(status)
		filter.Status = &clientStatus
	}
	if priority := query.Get("priority"); priority != "" {
		filter.Priority = &priority
	}
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}

	clients, total, err := h.clients.ListClients(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:   clients,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GET /clients/{clientID}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.GetClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

type createClientRequest struct {
	ClientNumber  string           `json:"clientNumber"`
	Name          string           `json:"name"`
	Company       string           `json:"company"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Industry      *string          `json:"industry,omitempty"`
	Address       *json.RawMessage `json:"address,omitempty"`
	ContactPerson *json.RawMessage `json:"contactPerson,omitempty"`
	FinancialInfo *json.RawMessage `json:"financialInfo,omitempty"`
	Priority      *string          `json:"priority,omitempty"`
	Tags          *json.RawMessage `json:"tags,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	client, err := h.clients.CreateClient(r.Context(), model.CreateClientParams{
		ClientNumber:  req.ClientNumber,
		Name:          req.Name,
		Company:       req.Company,
		Email:         req.Email,
		Phone:         req.Phone,
		Industry:      req.Industry,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		FinancialInfo: req.FinancialInfo,
		Priority:      req.Priority,
		Tags:          req.Tags,
		Notes:         req.Notes,
		CreatedBy:     actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

type updateClientRequest struct {
	Name          *string             `json:"name,omitempty"`
	Company       *string             `json:"company,omitempty"`
	Email         *string             `json:"email,omitempty"`
	Phone         *string             `json:"phone,omitempty"`
	Industry      *string             `json:"industry,omitempty"`
	Address       *json.RawMessage    `json:"address,omitempty"`
	ContactPerson *json.RawMessage    `json:"contactPerson,omitempty"`
	FinancialInfo *json.RawMessage    `json:"financialInfo,omitempty"`
	Status        *model.ClientStatus `json:"status,omitempty"`
	Priority      *string             `json:"priority,omitempty"`
	Tags          *json.RawMessage    `json:"tags,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
}

// PUT /clients/{clientID}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	client, err := h.clients.UpdateClient(r.Context(), chi.URLParam(r, "clientID"), model.UpdateClientParams{
		Name:          req.Name,
		Company:       req.Company,
		Email:         req.Email,
		Phone:         req.Phone,
		Industry:      req.Industry,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		FinancialInfo: req.FinancialInfo,
		Status:        req.Status,
		Priority:      req.Priority,
		Tags:          req.Tags,
		Notes:         req.Notes,
		UpdatedBy:     actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// DELETE /clients/{clientID}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clients.DeleteClient(r.Context(), chi.URLParam(r, "clientID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
