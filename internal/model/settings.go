package model

import (
	"encoding/json"
	"time"
)

// Settings is a per-category singleton bag of free-form configuration.
type Settings struct {
	Category  SettingsCategory `db:"category" json:"category"`
	Settings  json.RawMessage  `db:"settings" json:"settings"`
	CreatedBy string           `db:"created_by" json:"createdBy"`
	UpdatedBy *string          `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}
