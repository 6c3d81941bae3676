package claim

import (
	"strings"

	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateClaimRequest struct {
	EmployeeID string          `json:"employee_id"`
	ClaimType  string          `json:"claim_type"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r *CreateClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ClaimType) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_type",
			Message: "claim_type is required",
		})
	} else if !validator.IsInSlice(r.ClaimType, ClaimTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_type",
			Message: "claim_type must be one of: " + strings.Join(ClaimTypes, ", "),
		})
	}

	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveBySpecialistRequest struct {
	ClaimID        string          `json:"-"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	Comment        *string         `json:"comment,omitempty"`
	ActorID        string          `json:"actor_id"`
}

func (r *ApproveBySpecialistRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClaimID) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_id",
			Message: "claim_id is required",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if !validator.IsPositiveAmount(r.ApprovedAmount) {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_amount",
			Message: "approved_amount must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectBySpecialistRequest struct {
	ClaimID string `json:"-"`
	Reason  string `json:"reason"`
	ActorID string `json:"actor_id"`
}

func (r *RejectBySpecialistRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClaimID) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_id",
			Message: "claim_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ConfirmApprovalRequest struct {
	ClaimID string  `json:"-"`
	Comment *string `json:"comment,omitempty"`
	ActorID string  `json:"actor_id"`
}

func (r *ConfirmApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClaimID) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_id",
			Message: "claim_id is required",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClaimResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	EmployeeName        *string `json:"employee_name,omitempty"`
	FinanceStaffID      *string `json:"finance_staff_id,omitempty"`
	ClaimType           string  `json:"claim_type"`
	Amount              string  `json:"amount"`
	ApprovedAmount      *string `json:"approved_amount,omitempty"`
	Status              string  `json:"status"`
	RejectionReason     *string `json:"rejection_reason,omitempty"`
	ResolutionComment   *string `json:"resolution_comment,omitempty"`
	CreatedAt           string  `json:"created_at"`
	SpecialistDecidedAt *string `json:"specialist_decided_at,omitempty"`
	ConfirmedAt         *string `json:"confirmed_at,omitempty"`
}
