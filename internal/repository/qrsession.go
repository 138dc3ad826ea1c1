package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type QRSessionRepository interface {
	FindByID(ctx context.Context, sessionID string) (*model.QRSession, error)
	Create(ctx context.Context, sessionID string, expiresAt time.Time) (*model.QRSession, error)
	// MarkExpired flips a session to expired. The status guard keeps the
	// transition monotonic even when two readers race on the same session.
	MarkExpired(ctx context.Context, sessionID string) error
	// MarkConnected binds the session only while it is still awaiting a
	// scan; a session that raced to connected or expired returns nil so
	// the caller can roll back whatever it acquired for the bind.
	MarkConnected(ctx context.Context, sessionID string, params model.BindSessionParams) (*model.QRSession, error)
	SweepExpired(ctx context.Context) (int64, error)
	WithTx(tx *sqlx.Tx) QRSessionRepository
}

type qrSessionRepo struct {
	db DB
}

func NewQRSessionRepository(db *sqlx.DB) QRSessionRepository {
	return &qrSessionRepo{db: db}
}

func (r *qrSessionRepo) WithTx(tx *sqlx.Tx) QRSessionRepository {
	return &qrSessionRepo{db: tx}
}

func (r *qrSessionRepo) FindByID(ctx context.Context, sessionID string) (*model.QRSession, error) {
	var session model.QRSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM qr_sessions WHERE session_id = $1
	`, sessionID)
	return HandleNotFound(&session, err)
}

func (r *qrSessionRepo) Create(ctx context.Context, sessionID string, expiresAt time.Time) (*model.QRSession, error) {
	var session model.QRSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO qr_sessions (session_id, status, expires_at)
		VALUES ($1, 'pending', $2)
		RETURNING *
	`, sessionID, expiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *qrSessionRepo) MarkExpired(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE qr_sessions SET
			status = 'expired',
			updated_at = $2
		WHERE session_id = $1 AND status != 'expired'
	`, sessionID, time.Now())
	return err
}

func (r *qrSessionRepo) MarkConnected(ctx context.Context, sessionID string, params model.BindSessionParams) (*model.QRSession, error) {
	var session model.QRSession
	err := r.db.GetContext(ctx, &session, `
		UPDATE qr_sessions SET
			status = 'connected',
			bound_phone = $2,
			bound_user_id = $3,
			metadata = $4,
			updated_at = $5
		WHERE session_id = $1 AND status IN ('pending', 'scanned')
		RETURNING *
	`, sessionID, params.Phone, params.UserID, params.Metadata, time.Now())
	return HandleNotFound(&session, err)
}

func (r *qrSessionRepo) SweepExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE qr_sessions SET
			status = 'expired',
			updated_at = NOW()
		WHERE status IN ('pending', 'scanned') AND expires_at < NOW()
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
