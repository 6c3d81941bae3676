package correction

import (
	"context"
	"time"
)

// Repository is the read-only view of the attendance-correction queue,
// consumed only by the readiness validator.
type Repository interface {
	// ListUnresolvedInRange returns SUBMITTED and IN_REVIEW corrections
	// requested inside [from, to].
	ListUnresolvedInRange(ctx context.Context, from, to time.Time) ([]Correction, error)
}
