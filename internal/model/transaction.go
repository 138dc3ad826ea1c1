package model

import (
	"encoding/json"
	"time"
)

type Transaction struct {
	ID                string            `db:"id" json:"id"`
	TransactionNumber string            `db:"transaction_number" json:"transactionNumber"`
	Type              TransactionType   `db:"type" json:"type"`
	Amount            float64           `db:"amount" json:"amount"`
	Currency          string            `db:"currency" json:"currency"`
	Description       *string           `db:"description" json:"description,omitempty"`
	CategoryID        *string           `db:"category_id" json:"categoryId,omitempty"`
	Date              time.Time         `db:"date" json:"date"`
	DueDate           *time.Time        `db:"due_date" json:"dueDate,omitempty"`
	Status            TransactionStatus `db:"status" json:"status"`
	PaymentMethod     *string           `db:"payment_method" json:"paymentMethod,omitempty"`
	Reference         *string           `db:"reference" json:"reference,omitempty"`
	ClientID          *string           `db:"client_id" json:"clientId,omitempty"`
	EmployeeID        *string           `db:"employee_id" json:"employeeId,omitempty"`
	Tax               *json.RawMessage  `db:"tax" json:"tax,omitempty"`
	Tags              *json.RawMessage  `db:"tags" json:"tags,omitempty"`
	Notes             *string           `db:"notes" json:"notes,omitempty"`
	CreatedBy         string            `db:"created_by" json:"createdBy"`
	UpdatedBy         *string           `db:"updated_by" json:"updatedBy,omitempty"`
	ApprovedBy        *string           `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time        `db:"approved_at" json:"approvedAt,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updatedAt"`
}

type CreateTransactionParams struct {
	TransactionNumber string
	Type              TransactionType
	Amount            float64
	Currency          string
	Description       *string
	CategoryID        *string
	Date              time.Time
	DueDate           *time.Time
	PaymentMethod     *string
	Reference         *string
	ClientID          *string
	EmployeeID        *string
	Tax               *json.RawMessage
	Tags              *json.RawMessage
	Notes             *string
	CreatedBy         string
}

type UpdateTransactionParams struct {
	Amount        *float64
	Description   *string
	CategoryID    *string
	Date          *time.Time
	DueDate       *time.Time
	PaymentMethod *string
	Reference     *string
	Tax           *json.RawMessage
	Tags          *json.RawMessage
	Notes         *string
	UpdatedBy     string
}

type TransactionFilter struct {
	Type       *TransactionType
	Status     *TransactionStatus
	CategoryID *string
	ClientID   *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// TransactionSummary aggregates totals per transaction type over a period.
type TransactionSummary struct {
	TotalIncome  float64 `db:"total_income" json:"totalIncome"`
	TotalExpense float64 `db:"total_expense" json:"totalExpense"`
	Count        int64   `db:"count" json:"count"`
}
