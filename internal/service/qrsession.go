package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/util"
	"github.com/72tommy72/HRMate/internal/whatsapp"
)

// QRSessionService owns the pairing session lifecycle. Sessions are
// short-lived records; the channels they bind live in the registry, keyed
// by phone number.
type QRSessionService struct {
	repo       repository.QRSessionRepository
	registry   *whatsapp.Registry
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewQRSessionService(repo repository.QRSessionRepository, registry *whatsapp.Registry, sessionTTL time.Duration, logger zerolog.Logger) *QRSessionService {
	return &QRSessionService{
		repo:       repo,
		registry:   registry,
		sessionTTL: sessionTTL,
		log:        logger,
	}
}

// CreateSession opens a fresh pending session with an opaque id.
func (s *QRSessionService) CreateSession(ctx context.Context) (*model.QRSession, error) {
	sessionID := uuid.NewString()
	session, err := s.repo.Create(ctx, sessionID, time.Now().Add(s.sessionTTL))
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("session_id", sessionID).Time("expires_at", session.ExpiresAt).Msg("Pairing session created")
	return session, nil
}

// GetSessionStatus returns the session, correcting a stale status on read:
// a pending or connected session past its deadline is flipped to expired
// before it is returned. The flip is guarded in SQL, so two concurrent
// readers both observe expired and only one write happens.
func (s *QRSessionService) GetSessionStatus(ctx context.Context, sessionID string) (*model.QRSession, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if session == nil {
		return nil, apperrors.NotFound("Session")
	}

	if session.Status != model.SessionStatusExpired && time.Now().After(session.ExpiresAt) {
		if err := s.repo.MarkExpired(ctx, sessionID); err != nil {
			return nil, apperrors.Storage(err)
		}
		session.Status = model.SessionStatusExpired
		s.log.Debug().Str("session_id", sessionID).Msg("Session expired on read")
	}
	return session, nil
}

// BindSession connects a session to a phone number. The channel is acquired
// first; if the dial cannot even be initiated the session stays untouched.
// A session that is already connected or expired is rejected — status
// transitions are one-way.
func (s *QRSessionService) BindSession(ctx context.Context, sessionID string, params model.BindSessionParams) (*model.QRSession, error) {
	session, err := s.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case model.SessionStatusConnected:
		return nil, apperrors.InvalidState("Session is already connected")
	case model.SessionStatusExpired:
		return nil, apperrors.InvalidState("Session has expired")
	}

	phone := util.NormalizePhone(params.Phone)
	if !util.IsValidPhone(phone) {
		return nil, apperrors.InvalidInput("phone", "must be a phone number in international format")
	}
	params.Phone = phone

	if _, err := s.registry.Acquire(ctx, phone); err != nil {
		return nil, err
	}

	bound, err := s.repo.MarkConnected(ctx, sessionID, params)
	if err != nil {
		_ = s.registry.Release(phone)
		return nil, apperrors.Storage(err)
	}
	if bound == nil {
		// Lost a race between the read and the update: the session expired
		// or another bind connected it first.
		_ = s.registry.Release(phone)
		return nil, apperrors.InvalidState("Session is no longer pending")
	}

	s.log.Info().Str("session_id", sessionID).Str("phone", phone).Msg("Session bound to channel")
	return bound, nil
}

// CloseSession releases the bound channel and retires the session. The
// channel key always leaves the live set; a teardown failure is reported
// after the session has already been marked expired, so a stuck close can
// never resurrect the pairing.
func (s *QRSessionService) CloseSession(ctx context.Context, sessionID string) error {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return apperrors.Storage(err)
	}
	if session == nil {
		return apperrors.NotFound("Session")
	}
	if session.Status != model.SessionStatusConnected {
		return apperrors.InvalidState("Session is not connected")
	}

	var teardownErr error
	if session.BoundPhone != nil {
		if err := s.registry.Release(*session.BoundPhone); err != nil {
			// The channel may already be gone after a disconnect; that is
			// not a failure of the close.
			if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
				teardownErr = err
			}
		}
	}

	if err := s.repo.MarkExpired(ctx, sessionID); err != nil {
		return apperrors.Storage(err)
	}

	if teardownErr != nil {
		return teardownErr
	}
	s.log.Info().Str("session_id", sessionID).Msg("Session closed")
	return nil
}

// ChannelState exposes the live channel for a bound phone: its lifecycle
// status and the latest pairing code, for status polling while the operator
// has not scanned yet.
func (s *QRSessionService) ChannelState(phone string) (whatsapp.ChannelStatus, string, bool) {
	handle, ok := s.registry.Handle(util.NormalizePhone(phone))
	if !ok {
		return "", "", false
	}
	return handle.Status(), handle.QR(), true
}
