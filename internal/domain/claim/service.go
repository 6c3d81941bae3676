package claim

import "context"

// Service is the claim approval state machine:
// PENDING -> APPROVED_BY_SPECIALIST | REJECTED_BY_SPECIALIST -> CONFIRMED.
// Refund generation from a confirmed claim lives in the refund service.
type Service interface {
	Create(ctx context.Context, req CreateClaimRequest) (ClaimResponse, error)
	Get(ctx context.Context, id string) (ClaimResponse, error)
	ApproveBySpecialist(ctx context.Context, req ApproveBySpecialistRequest) (ClaimResponse, error)
	RejectBySpecialist(ctx context.Context, req RejectBySpecialistRequest) (ClaimResponse, error)
	ConfirmApproval(ctx context.Context, req ConfirmApprovalRequest) (ClaimResponse, error)
}
