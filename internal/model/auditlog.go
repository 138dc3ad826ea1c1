package model

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           string           `db:"id" json:"id"`
	Level        string           `db:"level" json:"level"`
	Action       string           `db:"action" json:"action"`
	Category     string           `db:"category" json:"category"`
	UserID       *string          `db:"user_id" json:"userId,omitempty"`
	Username     *string          `db:"username" json:"username,omitempty"`
	Details      *string          `db:"details" json:"details,omitempty"`
	ResourceType *string          `db:"resource_type" json:"resourceType,omitempty"`
	ResourceID   *string          `db:"resource_id" json:"resourceId,omitempty"`
	Result       LogResult        `db:"result" json:"result"`
	ErrorMessage *string          `db:"error_message" json:"errorMessage,omitempty"`
	Metadata     *json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
}

type CreateAuditLogParams struct {
	Level        string
	Action       string
	Category     string
	UserID       *string
	Username     *string
	Details      *string
	ResourceType *string
	ResourceID   *string
	Result       LogResult
	ErrorMessage *string
	Metadata     *json.RawMessage
}

type AuditLogFilter struct {
	Level    *string
	Category *string
	UserID   *string
	Result   *LogResult
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
