package dispute

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/dispute"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/apperror"
	"github.com/google/uuid"
)

type DisputeServiceImpl struct {
	disputeRepo  dispute.Repository
	employeeRepo employee.Repository
	auditSink    audit.Sink
	notifier     notification.Service
}

func NewDisputeService(
	disputeRepo dispute.Repository,
	employeeRepo employee.Repository,
	auditSink audit.Sink,
	notifier notification.Service,
) dispute.Service {
	return &DisputeServiceImpl{
		disputeRepo:  disputeRepo,
		employeeRepo: employeeRepo,
		auditSink:    auditSink,
		notifier:     notifier,
	}
}

// Create implements dispute.Service.
func (s *DisputeServiceImpl) Create(ctx context.Context, req dispute.CreateDisputeRequest) (dispute.DisputeResponse, error) {
	if err := req.Validate(); err != nil {
		return dispute.DisputeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return dispute.DisputeResponse{}, err
	}
	if !emp.IsActive() {
		return dispute.DisputeResponse{}, employee.ErrEmployeeNotFound
	}

	created, err := s.disputeRepo.Create(ctx, dispute.Dispute{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		PayslipID:   req.PayslipID,
		Description: req.Description,
		Status:      dispute.StatusPending,
	})
	if err != nil {
		return dispute.DisputeResponse{}, fmt.Errorf("failed to create dispute: %w", err)
	}

	s.recordAudit(ctx, created.ID, map[string]any{
		"status":     created.Status,
		"payslip_id": created.PayslipID,
	}, req.EmployeeID)

	return mapDisputeToResponse(created), nil
}

// Get implements dispute.Service.
func (s *DisputeServiceImpl) Get(ctx context.Context, id string) (dispute.DisputeResponse, error) {
	d, err := s.disputeRepo.GetByID(ctx, id)
	if err != nil {
		return dispute.DisputeResponse{}, err
	}
	return mapDisputeToResponse(d), nil
}

// ApproveBySpecialist implements dispute.Service.
func (s *DisputeServiceImpl) ApproveBySpecialist(ctx context.Context, req dispute.ApproveBySpecialistRequest) (dispute.DisputeResponse, error) {
	if err := req.Validate(); err != nil {
		return dispute.DisputeResponse{}, err
	}

	d, err := s.disputeRepo.GetByID(ctx, req.DisputeID)
	if err != nil {
		return dispute.DisputeResponse{}, err
	}

	if !d.Status.CanTransitionTo(dispute.StatusApprovedBySpecialist) {
		return dispute.DisputeResponse{}, apperror.NewInvalidStateTransition(
			"dispute", d.ID, string(d.Status), "approve by specialist",
			"only PENDING disputes can be decided by a specialist",
		)
	}

	now := time.Now().UTC()
	d.Status = dispute.StatusApprovedBySpecialist
	d.FinanceStaffID = &req.ActorID
	d.ResolutionComment = req.Comment
	d.SpecialistDecidedAt = &now

	if err := s.transition(ctx, &d, dispute.StatusPending, "approve by specialist"); err != nil {
		return dispute.DisputeResponse{}, err
	}

	s.recordAudit(ctx, d.ID, map[string]any{"status": d.Status}, req.ActorID)
	s.notifier.Send(ctx, d.EmployeeID, notification.TypeDisputeApproved,
		"Your payslip dispute was approved by a specialist")

	return mapDisputeToResponse(d), nil
}

// RejectBySpecialist implements dispute.Service.
func (s *DisputeServiceImpl) RejectBySpecialist(ctx context.Context, req dispute.RejectBySpecialistRequest) (dispute.DisputeResponse, error) {
	if err := req.Validate(); err != nil {
		return dispute.DisputeResponse{}, err
	}

	d, err := s.disputeRepo.GetByID(ctx, req.DisputeID)
	if err != nil {
		return dispute.DisputeResponse{}, err
	}

	if !d.Status.CanTransitionTo(dispute.StatusRejectedBySpecialist) {
		return dispute.DisputeResponse{}, apperror.NewInvalidStateTransition(
			"dispute", d.ID, string(d.Status), "reject by specialist",
			"only PENDING disputes can be decided by a specialist",
		)
	}

	now := time.Now().UTC()
	d.Status = dispute.StatusRejectedBySpecialist
	d.FinanceStaffID = &req.ActorID
	d.RejectionReason = &req.Reason
	d.SpecialistDecidedAt = &now

	if err := s.transition(ctx, &d, dispute.StatusPending, "reject by specialist"); err != nil {
		return dispute.DisputeResponse{}, err
	}

	s.recordAudit(ctx, d.ID, map[string]any{
		"status": d.Status,
		"reason": req.Reason,
	}, req.ActorID)
	s.notifier.Send(ctx, d.EmployeeID, notification.TypeDisputeRejected,
		fmt.Sprintf("Your payslip dispute was rejected: %s", req.Reason))

	return mapDisputeToResponse(d), nil
}

// ConfirmApproval implements dispute.Service.
func (s *DisputeServiceImpl) ConfirmApproval(ctx context.Context, req dispute.ConfirmApprovalRequest) (dispute.DisputeResponse, error) {
	if err := req.Validate(); err != nil {
		return dispute.DisputeResponse{}, err
	}

	d, err := s.disputeRepo.GetByID(ctx, req.DisputeID)
	if err != nil {
		return dispute.DisputeResponse{}, err
	}

	if !d.Status.CanTransitionTo(dispute.StatusConfirmed) {
		return dispute.DisputeResponse{}, apperror.NewInvalidStateTransition(
			"dispute", d.ID, string(d.Status), "confirm approval",
			"only disputes approved by a specialist can be confirmed",
		)
	}

	now := time.Now().UTC()
	d.Status = dispute.StatusConfirmed
	if req.Comment != nil {
		d.ResolutionComment = req.Comment
	}
	d.ConfirmedAt = &now

	if err := s.transition(ctx, &d, dispute.StatusApprovedBySpecialist, "confirm approval"); err != nil {
		return dispute.DisputeResponse{}, err
	}

	s.recordAudit(ctx, d.ID, map[string]any{"status": d.Status}, req.ActorID)
	s.notifier.Send(ctx, d.EmployeeID, notification.TypeDisputeConfirmed,
		"Your payslip dispute has been confirmed and is eligible for a refund")

	return mapDisputeToResponse(d), nil
}

func (s *DisputeServiceImpl) transition(ctx context.Context, d *dispute.Dispute, from dispute.Status, operation string) error {
	ok, err := s.disputeRepo.Transition(ctx, *d, from)
	if err != nil {
		return fmt.Errorf("failed to transition dispute: %w", err)
	}
	if !ok {
		current, err := s.disputeRepo.GetByID(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("failed to re-read dispute after lost transition race: %w", err)
		}
		return apperror.NewInvalidStateTransition(
			"dispute", d.ID, string(current.Status), operation,
			"the dispute was transitioned concurrently; re-read it before retrying",
		)
	}
	return nil
}

func (s *DisputeServiceImpl) recordAudit(ctx context.Context, disputeID string, changeSet map[string]any, actorID string) {
	entry := audit.Entry{
		ID:        uuid.NewString(),
		Entity:    "dispute",
		EntityID:  disputeID,
		ChangeSet: changeSet,
		ActorID:   actorID,
		At:        time.Now().UTC(),
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		slog.Error("failed to record dispute audit entry", "dispute_id", disputeID, "error", err)
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapDisputeToResponse(d dispute.Dispute) dispute.DisputeResponse {
	return dispute.DisputeResponse{
		ID:                  d.ID,
		EmployeeID:          d.EmployeeID,
		EmployeeName:        d.EmployeeName,
		PayslipID:           d.PayslipID,
		FinanceStaffID:      d.FinanceStaffID,
		Description:         d.Description,
		Status:              string(d.Status),
		RejectionReason:     d.RejectionReason,
		ResolutionComment:   d.ResolutionComment,
		CreatedAt:           d.CreatedAt.Format(time.RFC3339),
		SpecialistDecidedAt: timePtrToString(d.SpecialistDecidedAt),
		ConfirmedAt:         timePtrToString(d.ConfirmedAt),
	}
}
