package timeexception

import "time"

// Type classifies the attendance anomaly a time exception flags.
type Type string

const (
	TypeMissedPunch     Type = "MISSED_PUNCH"
	TypeOvertimeRequest Type = "OVERTIME_REQUEST"
	TypeLate            Type = "LATE"
	TypeEarlyLeave      Type = "EARLY_LEAVE"
	TypeShortTime       Type = "SHORT_TIME"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusEscalated Status = "ESCALATED"
	StatusResolved  Status = "RESOLVED"
)

// UnresolvedStatuses are the statuses that block a payroll sync and that
// auto-escalation picks up.
func UnresolvedStatuses() []Status {
	return []Status{StatusOpen, StatusPending}
}

// IsUnresolved reports whether the exception still needs a decision.
func (s Status) IsUnresolved() bool {
	return s == StatusOpen || s == StatusPending
}

// TimeException is owned by the attendance subsystem; this engine only reads
// it and toggles Status/Reason. Reason is append-only: escalation annotations
// are added after the existing text, never over it.
type TimeException struct {
	ID                 string
	EmployeeID         string
	Type               Type
	Status             Status
	AttendanceRecordID *string
	AssignedTo         string
	Reason             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Age returns how long the exception has been open.
func (e TimeException) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}
