package attendance

import (
	"context"
	"time"
)

// Repository is the read-only view of attendance records this engine
// consumes. Writes stay with the attendance subsystem.
type Repository interface {
	// ListByDateRange returns records whose date falls inside [from, to],
	// optionally filtered to one employee.
	ListByDateRange(ctx context.Context, from, to time.Time, employeeID *string) ([]Record, error)
}
