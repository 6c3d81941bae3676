package claim

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the claim approval state. Transitions go through the table
// below only; services never compare raw strings.
type Status string

const (
	StatusPending              Status = "PENDING"
	StatusApprovedBySpecialist Status = "APPROVED_BY_SPECIALIST"
	StatusRejectedBySpecialist Status = "REJECTED_BY_SPECIALIST"
	StatusConfirmed            Status = "CONFIRMED"
)

var transitions = map[Status][]Status{
	StatusPending:              {StatusApprovedBySpecialist, StatusRejectedBySpecialist},
	StatusApprovedBySpecialist: {StatusConfirmed},
	StatusRejectedBySpecialist: {},
	StatusConfirmed:            {},
}

// CanTransitionTo reports whether next is a legal transition from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// ClaimTypes are the accepted claim categories.
var ClaimTypes = []string{
	"REIMBURSEMENT",
	"MEDICAL",
	"TRANSPORT",
	"OVERTIME_MEAL",
	"OTHER",
}

// Claim is an employee's request for a payroll correction, e.g. a missing
// allowance. Amount is immutable after creation; ApprovedAmount is set
// exactly once, on specialist approval.
type Claim struct {
	ID                  string
	EmployeeID          string
	FinanceStaffID      *string
	ClaimType           string
	Amount              decimal.Decimal
	ApprovedAmount      *decimal.Decimal
	Status              Status
	RejectionReason     *string
	ResolutionComment   *string
	CreatedAt           time.Time
	SpecialistDecidedAt *time.Time
	ConfirmedAt         *time.Time
	UpdatedAt           time.Time

	// DTO
	EmployeeName *string
}
