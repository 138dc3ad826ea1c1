package model

import (
	"encoding/json"
	"time"
)

type User struct {
	ID           string           `db:"id" json:"id"`
	Username     string           `db:"username" json:"username"`
	Email        string           `db:"email" json:"email"`
	PasswordHash string           `db:"password_hash" json:"-"`
	Role         Role             `db:"role" json:"role"`
	Status       UserStatus       `db:"status" json:"status"`
	Phone        *string          `db:"phone" json:"phone,omitempty"`
	EmployeeID   *string          `db:"employee_id" json:"employeeId,omitempty"`
	Profile      *json.RawMessage `db:"profile" json:"profile,omitempty"`
	Preferences  *json.RawMessage `db:"preferences" json:"preferences,omitempty"`
	LastLoginAt  *time.Time       `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedBy    string           `db:"created_by" json:"createdBy"`
	UpdatedBy    *string          `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updatedAt"`
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	EmployeeID   *string
	Profile      *json.RawMessage
	CreatedBy    string
}

type UpdateUserParams struct {
	Email       *string
	Role        *Role
	Status      *UserStatus
	Phone       *string
	Profile     *json.RawMessage
	Preferences *json.RawMessage
	UpdatedBy   string
}

// RefreshToken is an opaque token exchanged for new access tokens.
// Only the sha256 hash is persisted.
type RefreshToken struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
