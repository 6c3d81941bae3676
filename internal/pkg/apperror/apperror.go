// Package apperror holds the typed errors shared across the approval state
// machines: illegal status transitions and duplicate-side-effect conflicts.
// Field-level input problems use validator.ValidationErrors instead, and
// unknown-id lookups use the per-domain not-found sentinels.
package apperror

import "fmt"

const (
	CodeInvalidState = "INVALID_STATE"
	CodeConflict     = "CONFLICT"
)

// InvalidStateTransition reports an operation that is not legal for the
// entity's current status. Hint tells the caller what would unblock it.
type InvalidStateTransition struct {
	Entity       string
	EntityID     string
	CurrentState string
	Operation    string
	Hint         string
}

func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("%s %s: cannot %s while in state %s", e.Entity, e.EntityID, e.Operation, e.CurrentState)
}

func NewInvalidStateTransition(entity, entityID, currentState, operation, hint string) *InvalidStateTransition {
	return &InvalidStateTransition{
		Entity:       entity,
		EntityID:     entityID,
		CurrentState: currentState,
		Operation:    operation,
		Hint:         hint,
	}
}

// Conflict reports an operation that would duplicate an irreversible side
// effect, or a transition race lost to a concurrent writer.
type Conflict struct {
	Entity   string
	EntityID string
	Message  string
	Hint     string
}

func (e *Conflict) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.EntityID, e.Message)
}

func NewConflict(entity, entityID, message, hint string) *Conflict {
	return &Conflict{
		Entity:   entity,
		EntityID: entityID,
		Message:  message,
		Hint:     hint,
	}
}
