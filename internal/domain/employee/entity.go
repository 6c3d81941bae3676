package employee

import "github.com/shopspring/decimal"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is the narrow projection of the externally-owned employee record
// this engine needs: enough to validate claim/dispute creation and to build
// reports.
type Employee struct {
	ID           string
	FullName     string
	BaseSalary   decimal.Decimal
	DepartmentID string
	Status       Status
	IsManager    bool
}

// IsActive reports whether the employee may initiate claims and disputes.
func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
