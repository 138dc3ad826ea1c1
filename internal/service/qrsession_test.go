package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/whatsapp"
)

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.QRSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*model.QRSession)}
}

func (r *memSessionRepo) FindByID(_ context.Context, sessionID string) (*model.QRSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) Create(_ context.Context, sessionID string, expiresAt time.Time) (*model.QRSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := &model.QRSession{
		SessionID: sessionID,
		Status:    model.SessionStatusPending,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.sessions[sessionID] = session
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) MarkExpired(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[sessionID]; ok && session.Status != model.SessionStatusExpired {
		session.Status = model.SessionStatusExpired
		session.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memSessionRepo) MarkConnected(_ context.Context, sessionID string, params model.BindSessionParams) (*model.QRSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || (session.Status != model.SessionStatusPending && session.Status != model.SessionStatusScanned) {
		return nil, nil
	}
	session.Status = model.SessionStatusConnected
	session.BoundPhone = &params.Phone
	session.BoundUserID = params.UserID
	session.Metadata = params.Metadata
	session.UpdatedAt = time.Now()
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) SweepExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var swept int64
	for _, session := range r.sessions {
		if session.Status != model.SessionStatusExpired && time.Now().After(session.ExpiresAt) {
			session.Status = model.SessionStatusExpired
			swept++
		}
	}
	return swept, nil
}

func (r *memSessionRepo) WithTx(_ *sqlx.Tx) repository.QRSessionRepository { return r }

func (r *memSessionRepo) status(sessionID string) model.SessionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionID].Status
}

// gatedSessionRepo holds every MarkConnected at a barrier until all racing
// callers have passed their status check, so the check-then-update window
// is hit on every run instead of by luck.
type gatedSessionRepo struct {
	*memSessionRepo
	barrier *sync.WaitGroup
}

func (r *gatedSessionRepo) MarkConnected(ctx context.Context, sessionID string, params model.BindSessionParams) (*model.QRSession, error) {
	r.barrier.Done()
	r.barrier.Wait()
	return r.memSessionRepo.MarkConnected(ctx, sessionID, params)
}

type stubLink struct {
	events chan whatsapp.Event
}

func (l *stubLink) Events() <-chan whatsapp.Event { return l.events }

func (l *stubLink) SendText(context.Context, string, string) error { return nil }

func (l *stubLink) Close() error { return nil }

type stubTransport struct {
	dialErr error
}

func (t *stubTransport) Dial(context.Context, string) (whatsapp.Link, error) {
	if t.dialErr != nil {
		return nil, t.dialErr
	}
	return &stubLink{events: make(chan whatsapp.Event, 1)}, nil
}

func newSessionFixture(t *stubTransport, ttl time.Duration) (*QRSessionService, *memSessionRepo, *whatsapp.Registry) {
	repo := newMemSessionRepo()
	registry := whatsapp.NewRegistry(t, time.Minute, zerolog.Nop())
	svc := NewQRSessionService(repo, registry, ttl, zerolog.Nop())
	return svc, repo, registry
}

func TestCreateSession(t *testing.T) {
	svc, repo, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, model.SessionStatusPending, session.Status)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), session.ExpiresAt, time.Second)
	assert.Equal(t, model.SessionStatusPending, repo.status(session.SessionID))
}

func TestGetSessionStatus(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		svc, _, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

		_, err := svc.GetSessionStatus(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	})

	t.Run("expires stale sessions on read", func(t *testing.T) {
		svc, repo, _ := newSessionFixture(&stubTransport{}, -time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		got, err := svc.GetSessionStatus(context.Background(), session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, model.SessionStatusExpired, got.Status)
		assert.Equal(t, model.SessionStatusExpired, repo.status(session.SessionID))

		// Second read stays expired.
		got, err = svc.GetSessionStatus(context.Background(), session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, model.SessionStatusExpired, got.Status)
	})
}

func TestBindSession(t *testing.T) {
	t.Run("binds and acquires a channel", func(t *testing.T) {
		svc, _, registry := newSessionFixture(&stubTransport{}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		bound, err := svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "+20 100 123-4567",
		})
		require.NoError(t, err)
		assert.Equal(t, model.SessionStatusConnected, bound.Status)
		require.NotNil(t, bound.BoundPhone)
		assert.Equal(t, "201001234567", *bound.BoundPhone)

		_, live := registry.Handle("201001234567")
		assert.True(t, live)
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		svc, _, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "not-a-phone",
		})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
	})

	t.Run("rejects an expired session", func(t *testing.T) {
		svc, repo, _ := newSessionFixture(&stubTransport{}, -time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidState))
		assert.Equal(t, model.SessionStatusExpired, repo.status(session.SessionID))
	})

	t.Run("rejects a session that is already connected", func(t *testing.T) {
		svc, _, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)
		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.NoError(t, err)

		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "201007654321",
		})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidState))
	})

	t.Run("leaves the session untouched when the dial fails", func(t *testing.T) {
		svc, repo, _ := newSessionFixture(&stubTransport{dialErr: errors.New("network down")}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.Error(t, err)
		assert.Equal(t, model.SessionStatusPending, repo.status(session.SessionID))
	})

	t.Run("concurrent binds connect exactly one phone", func(t *testing.T) {
		repo := newMemSessionRepo()
		var barrier sync.WaitGroup
		barrier.Add(2)
		gated := &gatedSessionRepo{memSessionRepo: repo, barrier: &barrier}
		registry := whatsapp.NewRegistry(&stubTransport{}, time.Minute, zerolog.Nop())
		svc := NewQRSessionService(gated, registry, 5*time.Minute, zerolog.Nop())

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		phones := []string{"201001234567", "201007654321"}
		errs := make([]error, len(phones))
		var wg sync.WaitGroup
		for i, phone := range phones {
			wg.Add(1)
			go func(i int, phone string) {
				defer wg.Done()
				_, errs[i] = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
					Phone: phone,
				})
			}(i, phone)
		}
		wg.Wait()

		var failures int
		for _, err := range errs {
			if err != nil {
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidState))
				failures++
			}
		}
		assert.Equal(t, 1, failures, "exactly one bind must lose the race")

		// The winner's channel is the only one left alive; the loser must
		// have released the handle it acquired.
		bound, err := svc.GetSessionStatus(context.Background(), session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, model.SessionStatusConnected, bound.Status)
		require.NotNil(t, bound.BoundPhone)
		assert.Equal(t, []string{*bound.BoundPhone}, registry.Keys())
	})

	t.Run("rejects a phone that already has a live channel", func(t *testing.T) {
		svc, repo, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

		first, err := svc.CreateSession(context.Background())
		require.NoError(t, err)
		_, err = svc.BindSession(context.Background(), first.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.NoError(t, err)

		second, err := svc.CreateSession(context.Background())
		require.NoError(t, err)
		_, err = svc.BindSession(context.Background(), second.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyExists))
		assert.Equal(t, model.SessionStatusPending, repo.status(second.SessionID))
	})
}

func TestCloseSession(t *testing.T) {
	t.Run("releases the channel and expires the session", func(t *testing.T) {
		svc, repo, registry := newSessionFixture(&stubTransport{}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)
		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.NoError(t, err)

		require.NoError(t, svc.CloseSession(context.Background(), session.SessionID))
		assert.Equal(t, model.SessionStatusExpired, repo.status(session.SessionID))
		_, live := registry.Handle("201001234567")
		assert.False(t, live)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

		err := svc.CloseSession(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	})

	t.Run("session that never connected", func(t *testing.T) {
		svc, _, _ := newSessionFixture(&stubTransport{}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)

		err = svc.CloseSession(context.Background(), session.SessionID)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidState))
	})

	t.Run("succeeds when the channel already dropped", func(t *testing.T) {
		svc, repo, registry := newSessionFixture(&stubTransport{}, 5*time.Minute)

		session, err := svc.CreateSession(context.Background())
		require.NoError(t, err)
		_, err = svc.BindSession(context.Background(), session.SessionID, model.BindSessionParams{
			Phone: "201001234567",
		})
		require.NoError(t, err)

		// Simulate a disconnect that already removed the channel.
		require.NoError(t, registry.Release("201001234567"))

		require.NoError(t, svc.CloseSession(context.Background(), session.SessionID))
		assert.Equal(t, model.SessionStatusExpired, repo.status(session.SessionID))
	})
}
