package dispute

import (
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/validator"
)

type CreateDisputeRequest struct {
	EmployeeID  string `json:"employee_id"`
	PayslipID   string `json:"payslip_id"`
	Description string `json:"description"`
}

func (r *CreateDisputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.PayslipID) {
		errs = append(errs, validator.ValidationError{
			Field:   "payslip_id",
			Message: "payslip_id is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveBySpecialistRequest struct {
	DisputeID string  `json:"-"`
	Comment   *string `json:"comment,omitempty"`
	ActorID   string  `json:"actor_id"`
}

func (r *ApproveBySpecialistRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DisputeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "dispute_id",
			Message: "dispute_id is required",
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

type RejectBySpecialistRequest struct {
	DisputeID string `json:"-"`
	Reason    string `json:"reason"`
	ActorID   string `json:"actor_id"`
}

func (r *RejectBySpecialistRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DisputeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "dispute_id",
			Message: "dispute_id is required",
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
	DisputeID string  `json:"-"`
	Comment   *string `json:"comment,omitempty"`
	ActorID   string  `json:"actor_id"`
}

func (r *ConfirmApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DisputeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "dispute_id",
			Message: "dispute_id is required",
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

type DisputeResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	EmployeeName        *string `json:"employee_name,omitempty"`
	PayslipID           string  `json:"payslip_id"`
	FinanceStaffID      *string `json:"finance_staff_id,omitempty"`
	Description         string  `json:"description"`
	Status              string  `json:"status"`
	RejectionReason     *string `json:"rejection_reason,omitempty"`
	ResolutionComment   *string `json:"resolution_comment,omitempty"`
	CreatedAt           string  `json:"created_at"`
	SpecialistDecidedAt *string `json:"specialist_decided_at,omitempty"`
	ConfirmedAt         *string `json:"confirmed_at,omitempty"`
}
