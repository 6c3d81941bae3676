package refund

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
)

// CanTransitionTo reports whether next is a legal transition from s.
// PROCESSED is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next == StatusProcessed
}

// Refund is the monetary remediation derived from a confirmed claim or
// dispute, or created directly by finance. At most one of ClaimID/DisputeID
// is set; both are nil for finance-initiated refunds. PaidInPayrollRunID is
// set exactly once, when the refund is processed into an open payroll run.
type Refund struct {
	ID                 string
	Description        string
	Amount             decimal.Decimal
	EmployeeID         string
	FinanceStaffID     string
	ClaimID            *string
	DisputeID          *string
	PaidInPayrollRunID *string
	Status             Status
	CreatedAt          time.Time
	ProcessedAt        *time.Time
	UpdatedAt          time.Time
}
