package model

import (
	"encoding/json"
	"time"
)

type Client struct {
	ID            string           `db:"id" json:"id"`
	ClientNumber  string           `db:"client_number" json:"clientNumber"`
	Name          string           `db:"name" json:"name"`
	Company       string           `db:"company" json:"company"`
	Email         string           `db:"email" json:"email"`
	Phone         string           `db:"phone" json:"phone"`
	Industry      *string          `db:"industry" json:"industry,omitempty"`
	Address       *json.RawMessage `db:"address" json:"address,omitempty"`
	ContactPerson *json.RawMessage `db:"contact_person" json:"contactPerson,omitempty"`
	FinancialInfo *json.RawMessage `db:"financial_info" json:"financialInfo,omitempty"`
	Status        ClientStatus     `db:"status" json:"status"`
	Priority      *string          `db:"priority" json:"priority,omitempty"`
	Tags          *json.RawMessage `db:"tags" json:"tags,omitempty"`
	Notes         *string          `db:"notes" json:"notes,omitempty"`
	CreatedBy     string           `db:"created_by" json:"createdBy"`
	UpdatedBy     *string          `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`
}

type CreateClientParams struct {
	ClientNumber  string
	Name          string
	Company       string
	Email         string
	Phone         string
	Industry      *string
	Address       *json.RawMessage
	ContactPerson *json.RawMessage
	FinancialInfo *json.RawMessage
	Priority      *string
	Tags          *json.RawMessage
	Notes         *string
	CreatedBy     string
}

type UpdateClientParams struct {
	Name          *string
	Company       *string
	Email         *string
	Phone         *string
	Industry      *string
	Address       *json.RawMessage
	ContactPerson *json.RawMessage
	FinancialInfo *json.RawMessage
	Status        *ClientStatus
	Priority      *string
	Tags          *json.RawMessage
	Notes         *string
	UpdatedBy     string
}

type ClientFilter struct {
	Status   *ClientStatus
	Priority *string
	Search   *string
	Limit    int
	Offset   int
}
