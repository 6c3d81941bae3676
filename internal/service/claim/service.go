package claim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/claim"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/apperror"
	"github.com/google/uuid"
)

type ClaimServiceImpl struct {
	claimRepo    claim.Repository
	employeeRepo employee.Repository
	auditSink    audit.Sink
	notifier     notification.Service
}

func NewClaimService(
	claimRepo claim.Repository,
	employeeRepo employee.Repository,
	auditSink audit.Sink,
	notifier notification.Service,
) claim.Service {
	return &ClaimServiceImpl{
		claimRepo:    claimRepo,
		employeeRepo: employeeRepo,
		auditSink:    auditSink,
		notifier:     notifier,
	}
}

// Create implements claim.Service.
func (s *ClaimServiceImpl) Create(ctx context.Context, req claim.CreateClaimRequest) (claim.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return claim.ClaimResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return claim.ClaimResponse{}, err
	}
	if !emp.IsActive() {
		return claim.ClaimResponse{}, employee.ErrEmployeeNotFound
	}

	created, err := s.claimRepo.Create(ctx, claim.Claim{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		ClaimType:  req.ClaimType,
		Amount:     req.Amount,
		Status:     claim.StatusPending,
	})
	if err != nil {
		return claim.ClaimResponse{}, fmt.Errorf("failed to create claim: %w", err)
	}

	s.recordAudit(ctx, created.ID, map[string]any{
		"status": created.Status,
		"amount": created.Amount.String(),
	}, req.EmployeeID)

	return mapClaimToResponse(created), nil
}

// Get implements claim.Service.
func (s *ClaimServiceImpl) Get(ctx context.Context, id string) (claim.ClaimResponse, error) {
	c, err := s.claimRepo.GetByID(ctx, id)
	if err != nil {
		return claim.ClaimResponse{}, err
	}
	return mapClaimToResponse(c), nil
}

// ApproveBySpecialist implements claim.Service.
func (s *ClaimServiceImpl) ApproveBySpecialist(ctx context.Context, req claim.ApproveBySpecialistRequest) (claim.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return claim.ClaimResponse{}, err
	}

	c, err := s.claimRepo.GetByID(ctx, req.ClaimID)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	if !c.Status.CanTransitionTo(claim.StatusApprovedBySpecialist) {
		return claim.ClaimResponse{}, apperror.NewInvalidStateTransition(
			"claim", c.ID, string(c.Status), "approve by specialist",
			"only PENDING claims can be decided by a specialist",
		)
	}

	now := time.Now().UTC()
	approved := req.ApprovedAmount
	c.Status = claim.StatusApprovedBySpecialist
	c.ApprovedAmount = &approved
	c.FinanceStaffID = &req.ActorID
	c.ResolutionComment = req.Comment
	c.SpecialistDecidedAt = &now

	if err := s.transition(ctx, &c, claim.StatusPending, "approve by specialist"); err != nil {
		return claim.ClaimResponse{}, err
	}

	s.recordAudit(ctx, c.ID, map[string]any{
		"status":          c.Status,
		"approved_amount": approved.String(),
	}, req.ActorID)
	s.notifier.Send(ctx, c.EmployeeID, notification.TypeClaimApproved,
		fmt.Sprintf("Your claim was approved by a specialist for %s", approved.String()))

	return mapClaimToResponse(c), nil
}

// RejectBySpecialist implements claim.Service.
func (s *ClaimServiceImpl) RejectBySpecialist(ctx context.Context, req claim.RejectBySpecialistRequest) (claim.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return claim.ClaimResponse{}, err
	}

	c, err := s.claimRepo.GetByID(ctx, req.ClaimID)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	if !c.Status.CanTransitionTo(claim.StatusRejectedBySpecialist) {
		return claim.ClaimResponse{}, apperror.NewInvalidStateTransition(
			"claim", c.ID, string(c.Status), "reject by specialist",
			"only PENDING claims can be decided by a specialist",
		)
	}

	now := time.Now().UTC()
	c.Status = claim.StatusRejectedBySpecialist
	c.FinanceStaffID = &req.ActorID
	c.RejectionReason = &req.Reason
	c.SpecialistDecidedAt = &now

	if err := s.transition(ctx, &c, claim.StatusPending, "reject by specialist"); err != nil {
		return claim.ClaimResponse{}, err
	}

	s.recordAudit(ctx, c.ID, map[string]any{
		"status": c.Status,
		"reason": req.Reason,
	}, req.ActorID)
	s.notifier.Send(ctx, c.EmployeeID, notification.TypeClaimRejected,
		fmt.Sprintf("Your claim was rejected: %s", req.Reason))

	return mapClaimToResponse(c), nil
}

// ConfirmApproval implements claim.Service.
func (s *ClaimServiceImpl) ConfirmApproval(ctx context.Context, req claim.ConfirmApprovalRequest) (claim.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return claim.ClaimResponse{}, err
	}

	c, err := s.claimRepo.GetByID(ctx, req.ClaimID)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	if !c.Status.CanTransitionTo(claim.StatusConfirmed) {
		return claim.ClaimResponse{}, apperror.NewInvalidStateTransition(
			"claim", c.ID, string(c.Status), "confirm approval",
			"only claims approved by a specialist can be confirmed",
		)
	}

	now := time.Now().UTC()
	c.Status = claim.StatusConfirmed
	if req.Comment != nil {
		c.ResolutionComment = req.Comment
	}
	c.ConfirmedAt = &now

	if err := s.transition(ctx, &c, claim.StatusApprovedBySpecialist, "confirm approval"); err != nil {
		return claim.ClaimResponse{}, err
	}

	s.recordAudit(ctx, c.ID, map[string]any{"status": c.Status}, req.ActorID)
	s.notifier.Send(ctx, c.EmployeeID, notification.TypeClaimConfirmed,
		"Your claim has been confirmed and is eligible for a refund")

	return mapClaimToResponse(c), nil
}

// transition applies the guarded repository write. When the guard fails, a
// concurrent writer won the race; the claim is re-read so the error reports
// its actual state.
func (s *ClaimServiceImpl) transition(ctx context.Context, c *claim.Claim, from claim.Status, operation string) error {
	ok, err := s.claimRepo.Transition(ctx, *c, from)
	if err != nil {
		return fmt.Errorf("failed to transition claim: %w", err)
	}
	if !ok {
		current, err := s.claimRepo.GetByID(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("failed to re-read claim after lost transition race: %w", err)
		}
		return apperror.NewInvalidStateTransition(
			"claim", c.ID, string(current.Status), operation,
			"the claim was transitioned concurrently; re-read it before retrying",
		)
	}
	return nil
}

func (s *ClaimServiceImpl) recordAudit(ctx context.Context, claimID string, changeSet map[string]any, actorID string) {
	entry := audit.Entry{
		ID:        uuid.NewString(),
		Entity:    "claim",
		EntityID:  claimID,
		ChangeSet: changeSet,
		ActorID:   actorID,
		At:        time.Now().UTC(),
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		slog.Error("failed to record claim audit entry", "claim_id", claimID, "error", err)
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapClaimToResponse(c claim.Claim) claim.ClaimResponse {
	var approvedAmount *string
	if c.ApprovedAmount != nil {
		v := c.ApprovedAmount.String()
		approvedAmount = &v
	}

	return claim.ClaimResponse{
		ID:                  c.ID,
		EmployeeID:          c.EmployeeID,
		EmployeeName:        c.EmployeeName,
		FinanceStaffID:      c.FinanceStaffID,
		ClaimType:           c.ClaimType,
		Amount:              c.Amount.String(),
		ApprovedAmount:      approvedAmount,
		Status:              string(c.Status),
		RejectionReason:     c.RejectionReason,
		ResolutionComment:   c.ResolutionComment,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		SpecialistDecidedAt: timePtrToString(c.SpecialistDecidedAt),
		ConfirmedAt:         timePtrToString(c.ConfirmedAt),
	}
}
