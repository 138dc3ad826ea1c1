package model

import (
	"encoding/json"
	"time"
)

type Employee struct {
	ID               string           `db:"id" json:"id"`
	EmployeeNumber   string           `db:"employee_number" json:"employeeNumber"`
	Name             string           `db:"name" json:"name"`
	Email            *string          `db:"email" json:"email,omitempty"`
	Phone            *string          `db:"phone" json:"phone,omitempty"`
	Department       *string          `db:"department" json:"department,omitempty"`
	Position         *string          `db:"position" json:"position,omitempty"`
	Salary           *float64         `db:"salary" json:"salary,omitempty"`
	StartDate        *time.Time       `db:"start_date" json:"startDate,omitempty"`
	EndDate          *time.Time       `db:"end_date" json:"endDate,omitempty"`
	Status           EmployeeStatus   `db:"status" json:"status"`
	NationalID       *string          `db:"national_id" json:"nationalId,omitempty"`
	Address          *string          `db:"address" json:"address,omitempty"`
	BirthDate        *time.Time       `db:"birth_date" json:"birthDate,omitempty"`
	EmergencyContact *json.RawMessage `db:"emergency_contact" json:"emergencyContact,omitempty"`
	WorkSchedule     *json.RawMessage `db:"work_schedule" json:"workSchedule,omitempty"`
	Benefits         *json.RawMessage `db:"benefits" json:"benefits,omitempty"`
	Notes            *string          `db:"notes" json:"notes,omitempty"`
	CreatedBy        string           `db:"created_by" json:"createdBy"`
	UpdatedBy        *string          `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`
}

type CreateEmployeeParams struct {
	EmployeeNumber   string
	Name             string
	Email            *string
	Phone            *string
	Department       *string
	Position         *string
	Salary           *float64
	StartDate        *time.Time
	NationalID       *string
	Address          *string
	BirthDate        *time.Time
	EmergencyContact *json.RawMessage
	WorkSchedule     *json.RawMessage
	Benefits         *json.RawMessage
	Notes            *string
	CreatedBy        string
}

type UpdateEmployeeParams struct {
	Name             *string
	Email            *string
	Phone            *string
	Department       *string
	Position         *string
	Salary           *float64
	EndDate          *time.Time
	Status           *EmployeeStatus
	Address          *string
	EmergencyContact *json.RawMessage
	WorkSchedule     *json.RawMessage
	Benefits         *json.RawMessage
	Notes            *string
	UpdatedBy        string
}

type EmployeeFilter struct {
	Department *string
	Status     *EmployeeStatus
	Search     *string
	Limit      int
	Offset     int
}
