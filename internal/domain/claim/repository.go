package claim

import "context"

// Repository defines data access for claims. Transition is the only write
// path after creation; it is guarded on the status the caller read so two
// concurrent approvals cannot both succeed.
type Repository interface {
	// Create inserts a new claim and returns it with generated fields set
	Create(ctx context.Context, c Claim) (Claim, error)

	// GetByID retrieves a claim by ID
	GetByID(ctx context.Context, id string) (Claim, error)

	// Transition persists the claim's mutated fields, but only while the
	// stored status still equals from. Returns false when a concurrent
	// writer transitioned the claim first.
	Transition(ctx context.Context, c Claim, from Status) (bool, error)
}
