package model

import (
	"encoding/json"
	"time"
)

type Category struct {
	ID            string           `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	NameEn        *string          `db:"name_en" json:"nameEn,omitempty"`
	Type          CategoryType     `db:"type" json:"type"`
	Description   *string          `db:"description" json:"description,omitempty"`
	Color         *string          `db:"color" json:"color,omitempty"`
	ParentID      *string          `db:"parent_id" json:"parentId,omitempty"`
	Subcategories *json.RawMessage `db:"subcategories" json:"subcategories,omitempty"`
	BudgetLimit   *float64         `db:"budget_limit" json:"budgetLimit,omitempty"`
	IsActive      bool             `db:"is_active" json:"isActive"`
	SortOrder     *int             `db:"sort_order" json:"sortOrder,omitempty"`
	CreatedBy     string           `db:"created_by" json:"createdBy"`
	UpdatedBy     *string          `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`
}

type CreateCategoryParams struct {
	Name          string
	NameEn        *string
	Type          CategoryType
	Description   *string
	Color         *string
	ParentID      *string
	Subcategories *json.RawMessage
	BudgetLimit   *float64
	SortOrder     *int
	CreatedBy     string
}

type UpdateCategoryParams struct {
	Name          *string
	NameEn        *string
	Description   *string
	Color         *string
	Subcategories *json.RawMessage
	BudgetLimit   *float64
	IsActive      *bool
	SortOrder     *int
	UpdatedBy     string
}
