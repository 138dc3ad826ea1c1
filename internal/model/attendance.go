package model

import "time"

type Attendance struct {
	ID            string           `db:"id" json:"id"`
	EmployeeID    string           `db:"employee_id" json:"employeeId"`
	Date          time.Time        `db:"date" json:"date"`
	Status        AttendanceStatus `db:"status" json:"status"`
	CheckIn       *string          `db:"check_in" json:"checkIn,omitempty"`
	CheckOut      *string          `db:"check_out" json:"checkOut,omitempty"`
	WorkingHours  *float64         `db:"working_hours" json:"workingHours,omitempty"`
	OvertimeHours *float64         `db:"overtime_hours" json:"overtimeHours,omitempty"`
	Notes         *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *AttendanceStatus
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
