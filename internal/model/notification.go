package model

import "time"

type Notification struct {
	ID            string              `db:"id" json:"id"`
	RecipientType string              `db:"recipient_type" json:"recipientType"`
	RecipientID   string              `db:"recipient_id" json:"recipientId"`
	Channel       NotificationChannel `db:"channel" json:"channel"`
	Subject       *string             `db:"subject" json:"subject,omitempty"`
	Message       string              `db:"message" json:"message"`
	Status        NotificationStatus  `db:"status" json:"status"`
	SentAt        *time.Time          `db:"sent_at" json:"sentAt,omitempty"`
	Error         *string             `db:"error" json:"error,omitempty"`
	IsRead        bool                `db:"is_read" json:"isRead"`
	CreatedBy     *string             `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `db:"created_at" json:"createdAt"`
}

type CreateNotificationParams struct {
	RecipientType string
	RecipientID   string
	Channel       NotificationChannel
	Subject       *string
	Message       string
	Status        NotificationStatus
	SentAt        *time.Time
	Error         *string
	CreatedBy     *string
}
