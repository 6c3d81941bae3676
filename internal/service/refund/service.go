package refund

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/claim"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/dispute"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/payrollrun"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/refund"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/apperror"
	"github.com/google/uuid"
)

type RefundServiceImpl struct {
	refundRepo  refund.Repository
	claimRepo   claim.Repository
	disputeRepo dispute.Repository
	runRegistry payrollrun.Registry
	auditSink   audit.Sink
	notifier    notification.Service
}

func NewRefundService(
	refundRepo refund.Repository,
	claimRepo claim.Repository,
	disputeRepo dispute.Repository,
	runRegistry payrollrun.Registry,
	auditSink audit.Sink,
	notifier notification.Service,
) refund.Service {
	return &RefundServiceImpl{
		refundRepo:  refundRepo,
		claimRepo:   claimRepo,
		disputeRepo: disputeRepo,
		runRegistry: runRegistry,
		auditSink:   auditSink,
		notifier:    notifier,
	}
}

// GenerateForClaim implements refund.Service. The source claim must be
// CONFIRMED, and only one refund may ever exist per claim.
func (s *RefundServiceImpl) GenerateForClaim(ctx context.Context, req refund.GenerateForClaimRequest) (refund.RefundResponse, error) {
	if err := req.Validate(); err != nil {
		return refund.RefundResponse{}, err
	}

	c, err := s.claimRepo.GetByID(ctx, req.ClaimID)
	if err != nil {
		return refund.RefundResponse{}, err
	}

	if c.Status != claim.StatusConfirmed {
		return refund.RefundResponse{}, apperror.NewInvalidStateTransition(
			"claim", c.ID, string(c.Status), "generate refund",
			"only confirmed items can be refunded",
		)
	}

	existing, err := s.refundRepo.GetByClaimID(ctx, req.ClaimID)
	if err != nil {
		return refund.RefundResponse{}, fmt.Errorf("failed to check for existing refund: %w", err)
	}
	if existing != nil {
		return refund.RefundResponse{}, apperror.NewConflict(
			"claim", c.ID, "a refund was already generated for this claim",
			"process or void the existing refund instead of generating another",
		)
	}

	claimID := c.ID
	created, err := s.create(ctx, refund.Refund{
		ID:             uuid.NewString(),
		Description:    req.Details.Description,
		Amount:         req.Details.Amount,
		EmployeeID:     c.EmployeeID,
		FinanceStaffID: req.FinanceStaffID,
		ClaimID:        &claimID,
		Status:         refund.StatusPending,
	}, "claim", claimID)
	if err != nil {
		return refund.RefundResponse{}, err
	}

	return mapRefundToResponse(created), nil
}

// GenerateForDispute implements refund.Service.
func (s *RefundServiceImpl) GenerateForDispute(ctx context.Context, req refund.GenerateForDisputeRequest) (refund.RefundResponse, error) {
	if err := req.Validate(); err != nil {
		return refund.RefundResponse{}, err
	}

	d, err := s.disputeRepo.GetByID(ctx, req.DisputeID)
	if err != nil {
		return refund.RefundResponse{}, err
	}

	if d.Status != dispute.StatusConfirmed {
		return refund.RefundResponse{}, apperror.NewInvalidStateTransition(
			"dispute", d.ID, string(d.Status), "generate refund",
			"only confirmed items can be refunded",
		)
	}

	existing, err := s.refundRepo.GetByDisputeID(ctx, req.DisputeID)
	if err != nil {
		return refund.RefundResponse{}, fmt.Errorf("failed to check for existing refund: %w", err)
	}
	if existing != nil {
		return refund.RefundResponse{}, apperror.NewConflict(
			"dispute", d.ID, "a refund was already generated for this dispute",
			"process or void the existing refund instead of generating another",
		)
	}

	disputeID := d.ID
	created, err := s.create(ctx, refund.Refund{
		ID:             uuid.NewString(),
		Description:    req.Details.Description,
		Amount:         req.Details.Amount,
		EmployeeID:     d.EmployeeID,
		FinanceStaffID: req.FinanceStaffID,
		DisputeID:      &disputeID,
		Status:         refund.StatusPending,
	}, "dispute", disputeID)
	if err != nil {
		return refund.RefundResponse{}, err
	}

	return mapRefundToResponse(created), nil
}

// CreateDirect implements refund.Service. Finance-initiated refunds carry no
// source link.
func (s *RefundServiceImpl) CreateDirect(ctx context.Context, req refund.CreateDirectRequest) (refund.RefundResponse, error) {
	if err := req.Validate(); err != nil {
		return refund.RefundResponse{}, err
	}

	created, err := s.create(ctx, refund.Refund{
		ID:             uuid.NewString(),
		Description:    req.Details.Description,
		Amount:         req.Details.Amount,
		EmployeeID:     req.EmployeeID,
		FinanceStaffID: req.FinanceStaffID,
		Status:         refund.StatusPending,
	}, "", "")
	if err != nil {
		return refund.RefundResponse{}, err
	}

	return mapRefundToResponse(created), nil
}

// Process implements refund.Service. Processing is idempotent for the same
// payroll run and conflicts for a different one; the target run must still
// be open.
func (s *RefundServiceImpl) Process(ctx context.Context, req refund.ProcessRequest) (refund.RefundResponse, error) {
	if err := req.Validate(); err != nil {
		return refund.RefundResponse{}, err
	}

	r, err := s.refundRepo.GetByID(ctx, req.RefundID)
	if err != nil {
		return refund.RefundResponse{}, err
	}

	if r.Status == refund.StatusProcessed {
		if r.PaidInPayrollRunID != nil && *r.PaidInPayrollRunID == req.PayrollRunID {
			// Idempotent re-invocation with the same run.
			return mapRefundToResponse(r), nil
		}
		return refund.RefundResponse{}, apperror.NewConflict(
			"refund", r.ID,
			fmt.Sprintf("refund was already paid in payroll run %s", derefOrEmpty(r.PaidInPayrollRunID)),
			"a processed refund cannot be moved to a different payroll run",
		)
	}

	if !r.Status.CanTransitionTo(refund.StatusProcessed) {
		return refund.RefundResponse{}, apperror.NewInvalidStateTransition(
			"refund", r.ID, string(r.Status), "process",
			"only PENDING refunds can be processed",
		)
	}

	open, err := s.runRegistry.IsOpenRun(ctx, req.PayrollRunID)
	if err != nil {
		return refund.RefundResponse{}, fmt.Errorf("failed to check payroll run state: %w", err)
	}
	if !open {
		return refund.RefundResponse{}, refund.ErrPayrollRunNotOpen
	}

	now := time.Now().UTC()
	runID := req.PayrollRunID
	r.Status = refund.StatusProcessed
	r.PaidInPayrollRunID = &runID
	r.ProcessedAt = &now

	ok, err := s.refundRepo.Transition(ctx, r, refund.StatusPending)
	if err != nil {
		return refund.RefundResponse{}, fmt.Errorf("failed to transition refund: %w", err)
	}
	if !ok {
		current, err := s.refundRepo.GetByID(ctx, r.ID)
		if err != nil {
			return refund.RefundResponse{}, fmt.Errorf("failed to re-read refund after lost transition race: %w", err)
		}
		if current.Status == refund.StatusProcessed && current.PaidInPayrollRunID != nil && *current.PaidInPayrollRunID == req.PayrollRunID {
			return mapRefundToResponse(current), nil
		}
		return refund.RefundResponse{}, apperror.NewConflict(
			"refund", r.ID, "refund was processed concurrently into a different payroll run",
			"re-read the refund to see where it was paid",
		)
	}

	s.recordAudit(ctx, r.ID, map[string]any{
		"status":                 r.Status,
		"paid_in_payroll_run_id": runID,
	}, req.ActorID)
	s.notifier.Send(ctx, r.EmployeeID, notification.TypeRefundProcessed,
		fmt.Sprintf("Your refund of %s will be paid in payroll run %s", r.Amount.String(), runID))

	return mapRefundToResponse(r), nil
}

// Get implements refund.Service.
func (s *RefundServiceImpl) Get(ctx context.Context, id string) (refund.RefundResponse, error) {
	r, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		return refund.RefundResponse{}, err
	}
	return mapRefundToResponse(r), nil
}

// create inserts the refund, translating the repository's duplicate-source
// guard into a conflict. sourceEntity is empty for direct refunds.
func (s *RefundServiceImpl) create(ctx context.Context, r refund.Refund, sourceEntity, sourceID string) (refund.Refund, error) {
	created, err := s.refundRepo.Create(ctx, r)
	if err != nil {
		if errors.Is(err, refund.ErrRefundAlreadyExists) && sourceEntity != "" {
			return refund.Refund{}, apperror.NewConflict(
				sourceEntity, sourceID, "a refund was already generated for this source",
				"process or void the existing refund instead of generating another",
			)
		}
		return refund.Refund{}, fmt.Errorf("failed to create refund: %w", err)
	}

	changeSet := map[string]any{
		"status": created.Status,
		"amount": created.Amount.String(),
	}
	if sourceEntity != "" {
		changeSet["source_"+sourceEntity+"_id"] = sourceID
	}
	s.recordAudit(ctx, created.ID, changeSet, created.FinanceStaffID)

	return created, nil
}

func (s *RefundServiceImpl) recordAudit(ctx context.Context, refundID string, changeSet map[string]any, actorID string) {
	entry := audit.Entry{
		ID:        uuid.NewString(),
		Entity:    "refund",
		EntityID:  refundID,
		ChangeSet: changeSet,
		ActorID:   actorID,
		At:        time.Now().UTC(),
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		slog.Error("failed to record refund audit entry", "refund_id", refundID, "error", err)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapRefundToResponse(r refund.Refund) refund.RefundResponse {
	var processedAt *string
	if r.ProcessedAt != nil {
		v := r.ProcessedAt.Format(time.RFC3339)
		processedAt = &v
	}

	return refund.RefundResponse{
		ID:                 r.ID,
		Description:        r.Description,
		Amount:             r.Amount.String(),
		EmployeeID:         r.EmployeeID,
		FinanceStaffID:     r.FinanceStaffID,
		ClaimID:            r.ClaimID,
		DisputeID:          r.DisputeID,
		PaidInPayrollRunID: r.PaidInPayrollRunID,
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		ProcessedAt:        processedAt,
	}
}
