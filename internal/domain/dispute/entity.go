package dispute

import "time"

// Status mirrors the claim approval states; the two machines share their
// shape but not their code paths.
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

// Dispute is an employee's objection to a specific payslip line item.
// A dispute against an already-paid payslip is still allowed; any refund it
// produces must target an open payroll run, never the paid one.
type Dispute struct {
	ID                  string
	EmployeeID          string
	PayslipID           string
	FinanceStaffID      *string
	Description         string
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
