package correction

import "time"

// Status of an attendance-correction request in the externally-owned queue.
type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusInReview  Status = "IN_REVIEW"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// Correction is a pending fix to an attendance record, requested by an
// employee. SUBMITTED and IN_REVIEW entries block payroll readiness.
type Correction struct {
	ID                 string
	EmployeeID         string
	AttendanceRecordID string
	Status             Status
	RequestedAt        time.Time
}
