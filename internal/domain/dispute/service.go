package dispute

import "context"

// Service is the dispute approval state machine, symmetric to the claim one.
type Service interface {
	Create(ctx context.Context, req CreateDisputeRequest) (DisputeResponse, error)
	Get(ctx context.Context, id string) (DisputeResponse, error)
	ApproveBySpecialist(ctx context.Context, req ApproveBySpecialistRequest) (DisputeResponse, error)
	RejectBySpecialist(ctx context.Context, req RejectBySpecialistRequest) (DisputeResponse, error)
	ConfirmApproval(ctx context.Context, req ConfirmApprovalRequest) (DisputeResponse, error)
}
