package refund

import "context"

// Service generates refunds from confirmed claims/disputes (or directly for
// finance) and processes them into open payroll runs. Processing is the only
// point in the system where money is marked as paid.
type Service interface {
	GenerateForClaim(ctx context.Context, req GenerateForClaimRequest) (RefundResponse, error)
	GenerateForDispute(ctx context.Context, req GenerateForDisputeRequest) (RefundResponse, error)
	CreateDirect(ctx context.Context, req CreateDirectRequest) (RefundResponse, error)
	Process(ctx context.Context, req ProcessRequest) (RefundResponse, error)
	Get(ctx context.Context, id string) (RefundResponse, error)
}
