package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/{notificationID}/read", h.MarkRead)
	r.Delete("/{notificationID}", h.Delete)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
		r.Post("/send", h.Send)
	})

	return r
}

type sendNotificationRequest struct {
	RecipientType string                      `json:"recipientType"`
	RecipientIDs  []string                    `json:"recipientIds"`
	Channels      []model.NotificationChannel `json:"channels,omitempty"`
	Subject       *string                     `json:"subject,omitempty"`
	Message       string                      `json:"message"`
	FromPhone     string                      `json:"fromPhone,omitempty"`
}

// POST /notifications/send
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	results, err := h.notifications.Send(r.Context(), service.SendNotificationParams{
		RecipientType: req.RecipientType,
		RecipientIDs:  req.RecipientIDs,
		Channels:      req.Channels,
		Subject:       req.Subject,
		Message:       req.Message,
		FromPhone:     req.FromPhone,
		CreatedBy:     &actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, results)
}

// GET /notifications — the caller's own inbox.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	page := ParsePagination(r)

	notifications, err := h.notifications.ListForRecipient(r.Context(), actor.ID, page.Limit, page.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// POST /notifications/{notificationID}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	notification, err := h.notifications.MarkRead(r.Context(), chi.URLParam(r, "notificationID"), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notification)
}

// DELETE /notifications/{notificationID}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	if err := h.notifications.Delete(r.Context(), chi.URLParam(r, "notificationID"), actor.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
