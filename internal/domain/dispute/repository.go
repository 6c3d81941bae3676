package dispute

import "context"

// Repository defines data access for disputes. See claim.Repository for the
// guarded-transition contract; the semantics are identical.
type Repository interface {
	Create(ctx context.Context, d Dispute) (Dispute, error)
	GetByID(ctx context.Context, id string) (Dispute, error)

	// Transition persists the dispute's mutated fields while the stored
	// status still equals from. Returns false on a lost race.
	Transition(ctx context.Context, d Dispute, from Status) (bool, error)
}
