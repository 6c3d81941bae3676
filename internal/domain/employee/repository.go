package employee

import "context"

// Repository is the employee lookup contract (externally owned data).
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListManagers returns the employees that receive escalation alerts.
	ListManagers(ctx context.Context) ([]Employee, error)
}
