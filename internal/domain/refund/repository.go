package refund

import "context"

// Repository defines data access for refunds. Create must reject a second
// refund for the same claim or dispute with ErrRefundAlreadyExists; the
// postgres implementation backs this with partial unique indexes so the
// guarantee holds under concurrent generation.
type Repository interface {
	Create(ctx context.Context, r Refund) (Refund, error)
	GetByID(ctx context.Context, id string) (Refund, error)
	GetByClaimID(ctx context.Context, claimID string) (*Refund, error)
	GetByDisputeID(ctx context.Context, disputeID string) (*Refund, error)

	// Transition persists the refund's mutated fields while the stored
	// status still equals from. Returns false on a lost race.
	Transition(ctx context.Context, r Refund, from Status) (bool, error)
}
