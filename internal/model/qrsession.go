package model

import (
	"encoding/json"
	"time"
)

// QRSession is a short-lived pairing attempt that binds a WhatsApp phone
// number to the system. Status transitions are monotonic: once expired a
// session never re-enters pending or connected.
type QRSession struct {
	SessionID   string           `db:"session_id" json:"sessionId"`
	BoundUserID *string          `db:"bound_user_id" json:"userId,omitempty"`
	BoundPhone  *string          `db:"bound_phone" json:"phone,omitempty"`
	Status      SessionStatus    `db:"status" json:"status"`
	ExpiresAt   time.Time        `db:"expires_at" json:"expiresAt"`
	Metadata    *json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

type BindSessionParams struct {
	Phone    string
	UserID   *string
	Metadata *json.RawMessage
}
