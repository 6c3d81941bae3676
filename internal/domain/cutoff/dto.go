package cutoff

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
)

// Urgency grades how badly a pending exception needs attention before the
// cutoff. Two independent signals feed it (days until cutoff, exception
// age); the worse one wins.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

// RunReadiness is the derived, recomputed-on-read state of exception data
// relative to a cutoff. It is never stored.
type RunReadiness string

const (
	ReadinessReady    RunReadiness = "READY"
	ReadinessCritical RunReadiness = "CRITICAL"
	ReadinessBlocked  RunReadiness = "BLOCKED"
	ReadinessWarning  RunReadiness = "WARNING"
)

// EscalationFailure records one exception the batch could not escalate.
type EscalationFailure struct {
	ExceptionID string `json:"exception_id"`
	Reason      string `json:"reason"`
}

// EscalationResult reports a best-effort escalation batch: successes and
// failures side by side, never an aborted batch.
type EscalationResult struct {
	InWindow  bool                `json:"in_window"`
	Message   string              `json:"message"`
	Escalated []string            `json:"escalated"`
	Failed    []EscalationFailure `json:"failed"`
}

// ReminderResult reports a reminder pass.
type ReminderResult struct {
	InWindow      bool   `json:"in_window"`
	Message       string `json:"message"`
	RemindersSent int    `json:"reminders_sent"`
}

// ReadinessStatusResponse carries the derived readiness plus the counts it
// was derived from.
type ReadinessStatusResponse struct {
	Status          RunReadiness `json:"status"`
	PendingCount    int          `json:"pending_count"`
	EscalatedCount  int          `json:"escalated_count"`
	CutoffDate      string       `json:"cutoff_date"`
	DaysUntilCutoff int          `json:"days_until_cutoff"`
}

// Service is the cutoff-driven escalation scheduler. It never self-schedules;
// an external periodic trigger (the cron jobs) invokes it.
type Service interface {
	// NextCutoffDate returns the earliest date on or after now whose
	// day-of-month is the configured cutoff day, rolling into the next
	// month when this month's day has already passed.
	NextCutoffDate(now time.Time) time.Time

	// DaysUntilCutoff is the ceiling of (cutoff - now) in days.
	DaysUntilCutoff(now, cutoffDate time.Time) int

	// Categorize grades a pending exception; the critical band wins over
	// high, high over medium.
	Categorize(ex timeexception.TimeException, now, cutoffDate time.Time) Urgency

	// AutoEscalate transitions every OPEN/PENDING exception to ESCALATED
	// when the cutoff is at most escalationDaysBefore days away, appending
	// an audit annotation to each exception's reason. Best-effort: per-item
	// failures are collected, not fatal.
	AutoEscalate(ctx context.Context, cutoffDate time.Time, escalationDaysBefore int, notifyManagers bool) (EscalationResult, error)

	// ReadinessStatus derives the run readiness from current exception
	// counts and cutoff distance.
	ReadinessStatus(ctx context.Context, cutoffDate time.Time) (ReadinessStatusResponse, error)

	// SendCutoffReminders sends one reminder per assignee with pending
	// exceptions when the cutoff is at most reminderDaysBefore days away.
	SendCutoffReminders(ctx context.Context, cutoffDate time.Time, reminderDaysBefore int) (ReminderResult, error)
}
