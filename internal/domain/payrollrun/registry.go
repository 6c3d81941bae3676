package payrollrun

import "context"

// Registry answers whether a payroll run is still open for payouts. The run
// registry itself is owned by the payroll computation subsystem; processing
// a refund is the only operation here that consults it.
type Registry interface {
	IsOpenRun(ctx context.Context, payrollRunID string) (bool, error)
}
