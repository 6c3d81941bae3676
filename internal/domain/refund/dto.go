package refund

import (
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RefundDetails is the payout description shared by every generation path.
type RefundDetails struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func (d *RefundDetails) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if validator.IsEmpty(d.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if !validator.IsPositiveAmount(d.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	return errs
}

type GenerateForClaimRequest struct {
	ClaimID        string        `json:"-"`
	Details        RefundDetails `json:"details"`
	FinanceStaffID string        `json:"finance_staff_id"`
}

func (r *GenerateForClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClaimID) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_id",
			Message: "claim_id is required",
		})
	}

	if validator.IsEmpty(r.FinanceStaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "finance_staff_id",
			Message: "finance_staff_id is required",
		})
	}

	errs = r.Details.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GenerateForDisputeRequest struct {
	DisputeID      string        `json:"-"`
	Details        RefundDetails `json:"details"`
	FinanceStaffID string        `json:"finance_staff_id"`
}

func (r *GenerateForDisputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DisputeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "dispute_id",
			Message: "dispute_id is required",
		})
	}

	if validator.IsEmpty(r.FinanceStaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "finance_staff_id",
			Message: "finance_staff_id is required",
		})
	}

	errs = r.Details.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateDirectRequest struct {
	EmployeeID     string        `json:"employee_id"`
	Details        RefundDetails `json:"details"`
	FinanceStaffID string        `json:"finance_staff_id"`
}

func (r *CreateDirectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.FinanceStaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "finance_staff_id",
			Message: "finance_staff_id is required",
		})
	}

	errs = r.Details.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessRequest struct {
	RefundID     string `json:"-"`
	PayrollRunID string `json:"payroll_run_id"`
	ActorID      string `json:"actor_id"`
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefundID) {
		errs = append(errs, validator.ValidationError{
			Field:   "refund_id",
			Message: "refund_id is required",
		})
	}

	if validator.IsEmpty(r.PayrollRunID) {
		errs = append(errs, validator.ValidationError{
			Field:   "payroll_run_id",
			Message: "payroll_run_id is required",
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

type RefundResponse struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	Amount             string  `json:"amount"`
	EmployeeID         string  `json:"employee_id"`
	FinanceStaffID     string  `json:"finance_staff_id"`
	ClaimID            *string `json:"claim_id,omitempty"`
	DisputeID          *string `json:"dispute_id,omitempty"`
	PaidInPayrollRunID *string `json:"paid_in_payroll_run_id,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	ProcessedAt        *string `json:"processed_at,omitempty"`
}
