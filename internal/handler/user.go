package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{userID}", h.Get)
	r.Put("/{userID}", h.Update)
	r.Delete("/{userID}", h.Delete)

	return r
}

// GET /user
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)

	users, err := h.users.ListUsers(r.Context(), page.Limit, page.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GET /user/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Email       *string           `json:"email,omitempty"`
	Role        *model.Role       `json:"role,omitempty"`
	Status      *model.UserStatus `json:"status,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	Profile     *json.RawMessage  `json:"profile,omitempty"`
	Preferences *json.RawMessage  `json:"preferences,omitempty"`
}

// PUT /user/{userID}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	user, err := h.users.UpdateUser(r.Context(), chi.URLParam(r, "userID"), model.UpdateUserParams{
		Email:       req.Email,
		Role:        req.Role,
		Status:      req.Status,
		Phone:       req.Phone,
		Profile:     req.Profile,
		Preferences: req.Preferences,
		UpdatedBy:   actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DELETE /user/{userID}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
