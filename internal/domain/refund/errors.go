package refund

import "errors"

// Refund domain errors
var (
	ErrRefundNotFound      = errors.New("refund not found")
	ErrRefundAlreadyExists = errors.New("a refund has already been generated for this source")
	ErrPayrollRunNotOpen   = errors.New("payroll run is not open for payouts")
)
