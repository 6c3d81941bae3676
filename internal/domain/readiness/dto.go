package readiness

import (
	"context"
	"time"
)

type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// IssueType enumerates the readiness gate's issue categories.
type IssueType string

const (
	IssueMissedPunches         IssueType = "MISSED_PUNCHES"
	IssueZeroWorkMinutes       IssueType = "ZERO_WORK_MINUTES"
	IssueUnresolvedExceptions  IssueType = "UNRESOLVED_EXCEPTIONS"
	IssueUnresolvedCorrections IssueType = "UNRESOLVED_CORRECTIONS"
)

// FindingType enumerates the cross-module consistency detectors.
type FindingType string

const (
	FindingNoClockInButHasWorkMinutes     FindingType = "NO_CLOCKIN_BUT_HAS_WORK_MINUTES"
	FindingOrphanOvertimeExceptions       FindingType = "ORPHAN_OVERTIME_EXCEPTIONS"
	FindingFinalizedWithPendingExceptions FindingType = "FINALIZED_WITH_PENDING_EXCEPTIONS"
	FindingDuplicateAttendanceRecords     FindingType = "DUPLICATE_ATTENDANCE_RECORDS"
)

// Issue is one readiness finding: the category, its severity, and the
// records or exceptions it affects. Remediation tells the caller how to
// clear it.
type Issue struct {
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Count       int       `json:"count"`
	AffectedIDs []string  `json:"affected_ids"`
	Remediation string    `json:"remediation"`
}

// Report is the readiness gate's verdict for a date range. IsValid (and its
// alias CanProceedWithSync) is true iff no ERROR-severity issue was found;
// warnings never block.
type Report struct {
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	TotalRecords       int       `json:"total_records"`
	Issues             []Issue   `json:"issues"`
	IsValid            bool      `json:"is_valid"`
	CanProceedWithSync bool      `json:"can_proceed_with_sync"`
}

// Finding is one cross-module consistency anomaly.
type Finding struct {
	Type        FindingType `json:"type"`
	Severity    Severity    `json:"severity"`
	Count       int         `json:"count"`
	AffectedIDs []string    `json:"affected_ids"`
	Remediation string      `json:"remediation"`
}

// ConsistencyReport is the audit/cleanup companion to Report: it never
// gates a sync, it enumerates anomalies across the two record types.
type ConsistencyReport struct {
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	Findings     []Finding `json:"findings"`
	IsConsistent bool      `json:"is_consistent"`
}

// Range bounds a validation pass; EmployeeID narrows it to one employee.
type Range struct {
	From       time.Time
	To         time.Time
	EmployeeID *string
}

// Service decides whether attendance/exception data for a period is safe to
// feed into a payroll run. Both checks are read-only and idempotent.
type Service interface {
	Validate(ctx context.Context, r Range) (Report, error)
	CheckConsistency(ctx context.Context, r Range) (ConsistencyReport, error)
}
