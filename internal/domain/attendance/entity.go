package attendance

import "time"

// Record is one employee/day attendance snapshot, owned by the attendance
// subsystem. This engine treats it as read-only input; FinalizedForPayroll
// is flipped by the attendance subsystem once all blocking exceptions for
// the record are resolved.
type Record struct {
	ID                  string
	EmployeeID          string
	Date                time.Time
	Punches             []time.Time
	TotalWorkMinutes    *int
	HasMissedPunch      bool
	FinalizedForPayroll bool
	LateMinutes         *int
	EarlyLeaveMinutes   *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WorkMinutes returns the recorded work minutes, zero when absent.
func (r Record) WorkMinutes() int {
	if r.TotalWorkMinutes == nil {
		return 0
	}
	return *r.TotalWorkMinutes
}

// HasClockIn reports whether at least one punch was recorded.
func (r Record) HasClockIn() bool {
	return len(r.Punches) > 0
}

// IsLate reports whether the employee clocked in late that day.
func (r Record) IsLate() bool {
	return r.LateMinutes != nil && *r.LateMinutes > 0
}

// IsEarlyLeave reports whether the employee left early that day.
func (r Record) IsEarlyLeave() bool {
	return r.EarlyLeaveMinutes != nil && *r.EarlyLeaveMinutes > 0
}
