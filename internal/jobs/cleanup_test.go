package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

type mockQRSessionRepo struct {
	sweeps atomic.Int64
}

func (m *mockQRSessionRepo) FindByID(context.Context, string) (*model.QRSession, error) {
	return nil, nil
}

func (m *mockQRSessionRepo) Create(context.Context, string, time.Time) (*model.QRSession, error) {
	return nil, nil
}

func (m *mockQRSessionRepo) MarkExpired(context.Context, string) error { return nil }

func (m *mockQRSessionRepo) MarkConnected(context.Context, string, model.BindSessionParams) (*model.QRSession, error) {
	return nil, nil
}

func (m *mockQRSessionRepo) SweepExpired(context.Context) (int64, error) {
	m.sweeps.Add(1)
	return 2, nil
}

func (m *mockQRSessionRepo) WithTx(*sqlx.Tx) repository.QRSessionRepository { return m }

type mockRefreshTokenRepo struct {
	deletes atomic.Int64
}

func (m *mockRefreshTokenRepo) FindByTokenHash(context.Context, string) (*model.RefreshToken, error) {
	return nil, nil
}

func (m *mockRefreshTokenRepo) Create(context.Context, string, string, time.Time) (*model.RefreshToken, error) {
	return nil, nil
}

func (m *mockRefreshTokenRepo) DeleteByTokenHash(context.Context, string) error { return nil }

func (m *mockRefreshTokenRepo) DeleteByUserID(context.Context, string) error { return nil }

func (m *mockRefreshTokenRepo) DeleteExpired(context.Context) (int64, error) {
	m.deletes.Add(1)
	return 1, nil
}

func TestCleanupJob(t *testing.T) {
	t.Run("creates job with correct interval", func(t *testing.T) {
		job := NewCleanupJob(nil, nil, 5*time.Minute)

		assert.NotNil(t, job)
		assert.Equal(t, 5*time.Minute, job.interval)
	})

	t.Run("runs both sweeps on start", func(t *testing.T) {
		sessions := &mockQRSessionRepo{}
		tokens := &mockRefreshTokenRepo{}

		job := NewCleanupJob(sessions, tokens, time.Hour)
		job.Start()
		time.Sleep(20 * time.Millisecond)
		job.Stop()

		assert.GreaterOrEqual(t, sessions.sweeps.Load(), int64(1))
		assert.GreaterOrEqual(t, tokens.deletes.Load(), int64(1))
	})

	t.Run("stops cleanly", func(t *testing.T) {
		job := NewCleanupJob(&mockQRSessionRepo{}, &mockRefreshTokenRepo{}, 10*time.Millisecond)
		job.Start()
		time.Sleep(30 * time.Millisecond)
		job.Stop()
	})
}
