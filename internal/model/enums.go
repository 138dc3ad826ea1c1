package model

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
	RoleAccountant Role = "accountant"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleAccountant:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusScanned   SessionStatus = "scanned"
	SessionStatusConnected SessionStatus = "connected"
	SessionStatusExpired   SessionStatus = "expired"
)

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusInactive   EmployeeStatus = "inactive"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

type ClientStatus string

const (
	ClientStatusActive      ClientStatus = "active"
	ClientStatusInactive    ClientStatus = "inactive"
	ClientStatusBlacklisted ClientStatus = "blacklisted"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
	TransactionStatusPaid     TransactionStatus = "paid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusOnLeave AttendanceStatus = "on_leave"
)

type SettingsCategory string

const (
	SettingsGeneral   SettingsCategory = "general"
	SettingsFinancial SettingsCategory = "financial"
	SettingsWhatsapp  SettingsCategory = "whatsapp"
	SettingsSecurity  SettingsCategory = "security"
)

func ValidSettingsCategory(c SettingsCategory) bool {
	switch c {
	case SettingsGeneral, SettingsFinancial, SettingsWhatsapp, SettingsSecurity:
		return true
	}
	return false
}

type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsapp NotificationChannel = "whatsapp"
	ChannelInApp    NotificationChannel = "inApp"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

type LogResult string

const (
	LogResultSuccess LogResult = "success"
	LogResultFailure LogResult = "failure"
	LogResultPartial LogResult = "partial"
)
