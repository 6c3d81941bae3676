package timeexception

import (
	"context"
	"time"
)

// Repository reads time exceptions and performs the two writes this engine
// is allowed: status transitions and append-only reason annotations.
type Repository interface {
	GetByID(ctx context.Context, id string) (TimeException, error)

	// ListCreatedInRange returns exceptions created inside [from, to],
	// optionally filtered to one employee.
	ListCreatedInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]TimeException, error)

	// ListByStatusIn returns all exceptions currently in any of the given
	// statuses.
	ListByStatusIn(ctx context.Context, statuses []Status) ([]TimeException, error)

	// ListOrphanOvertime returns every OVERTIME_REQUEST exception with no
	// linked attendance record, regardless of creation date.
	ListOrphanOvertime(ctx context.Context) ([]TimeException, error)

	// ListReferencingRecords returns unresolved exceptions that reference
	// any of the given attendance records.
	ListReferencingRecords(ctx context.Context, recordIDs []string) ([]TimeException, error)

	// Escalate sets the exception to ESCALATED and appends annotation to its
	// reason, guarded on the status still being unresolved. Returns false
	// when the exception was resolved (or already escalated) concurrently.
	Escalate(ctx context.Context, id string, annotation string) (bool, error)

	// CountByStatus returns the number of exceptions per status.
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
