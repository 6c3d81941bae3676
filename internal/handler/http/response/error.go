package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/claim"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/dispute"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/refund"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Illegal state transitions and duplicate work both map to 409 so a
	// client can distinguish them from plain bad input.
	var stateErr *apperror.InvalidStateTransition
	if errors.As(err, &stateErr) {
		Conflict(w, stateErr.Error(), conflictDetails(stateErr.Hint))
		return
	}
	var conflictErr *apperror.Conflict
	if errors.As(err, &conflictErr) {
		Conflict(w, conflictErr.Error(), conflictDetails(conflictErr.Hint))
		return
	}

	switch {
	case errors.Is(err, claim.ErrClaimNotFound):
		NotFound(w, "Claim not found")
	case errors.Is(err, dispute.ErrDisputeNotFound):
		NotFound(w, "Dispute not found")
	case errors.Is(err, refund.ErrRefundNotFound):
		NotFound(w, "Refund not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, timeexception.ErrExceptionNotFound):
		NotFound(w, "Time exception not found")

	case errors.Is(err, refund.ErrRefundAlreadyExists):
		Conflict(w, "A refund already exists for this source", nil)
	case errors.Is(err, refund.ErrPayrollRunNotOpen):
		BadRequest(w, "Target payroll run is not open", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func conflictDetails(hint string) map[string]string {
	if hint == "" {
		return nil
	}
	return map[string]string{"hint": hint}
}
