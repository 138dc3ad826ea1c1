package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type QRSessionHandler struct {
	sessions *service.QRSessionService
}

func NewQRSessionHandler(sessions *service.QRSessionService) *QRSessionHandler {
	return &QRSessionHandler{sessions: sessions}
}

func (h *QRSessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/generate", h.Generate)
	r.Get("/{sessionID}/status", h.Status)
	r.Post("/{sessionID}/connect", h.Connect)
	r.Post("/{sessionID}/disconnect", h.Disconnect)

	return r
}

// POST /qr-session/generate
func (h *QRSessionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.CreateSession(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to create pairing session")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

type sessionStatusResponse struct {
	*model.QRSession
	ChannelStatus string `json:"channelStatus,omitempty"`
	QRCode        string `json:"qrCode,omitempty"`
}

// GET /qr-session/{sessionID}/status
func (h *QRSessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.sessions.GetSessionStatus(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := sessionStatusResponse{QRSession: session}
	if session.BoundPhone != nil {
		if status, qr, ok := h.sessions.ChannelState(*session.BoundPhone); ok {
			response.ChannelStatus = string(status)
			response.QRCode = qr
		}
	}

	writeJSON(w, http.StatusOK, response)
}

type connectRequest struct {
	Phone    string           `json:"phone"`
	Metadata *json.RawMessage `json:"metadata,omitempty"`
}

// POST /qr-session/{sessionID}/connect
func (h *QRSessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req connectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := model.BindSessionParams{
		Phone:    req.Phone,
		Metadata: req.Metadata,
	}
	if user := middleware.GetUser(r.Context()); user != nil {
		params.UserID = &user.ID
	}

	session, err := h.sessions.BindSession(r.Context(), sessionID, params)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to bind pairing session")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// POST /qr-session/{sessionID}/disconnect
func (h *QRSessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.sessions.CloseSession(r.Context(), sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to close pairing session")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}
