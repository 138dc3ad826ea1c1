package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type NotificationRepository interface {
	FindByID(ctx context.Context, id string) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]model.Notification, error)
	Create(ctx context.Context, params model.CreateNotificationParams) (*model.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) (*model.Notification, error)
	Delete(ctx context.Context, id, recipientID string) (int64, error)
	DeleteByRecipient(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.GetContext(ctx, &notification, `SELECT * FROM notifications WHERE id = $1`, id)
	return HandleNotFound(&notification, err)
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, recipientID, limit, offset)
	return notifications, err
}

func (r *notificationRepo) Create(ctx context.Context, params model.CreateNotificationParams) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.GetContext(ctx, &notification, `
		INSERT INTO notifications (
			recipient_type, recipient_id, channel, subject, message,
			status, sent_at, error, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	`, params.RecipientType, params.RecipientID, params.Channel, params.Subject,
		params.Message, params.Status, params.SentAt, params.Error, params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, recipientID string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.GetContext(ctx, &notification, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND recipient_id = $2
		RETURNING *
	`, id, recipientID)
	return HandleNotFound(&notification, err)
}

func (r *notificationRepo) Delete(ctx context.Context, id, recipientID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE id = $1 AND recipient_id = $2
	`, id, recipientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepo) DeleteByRecipient(ctx context.Context, recipientID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE recipient_id = $1
	`, recipientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
