package audit

import (
	"context"
	"time"
)

// Entry is one append-only audit record of a state change.
type Entry struct {
	ID        string
	Entity    string
	EntityID  string
	ChangeSet map[string]any
	ActorID   string
	At        time.Time
}

// Sink is the injected audit log. Entries must survive restarts, so the
// production implementation writes to postgres; tests inject an in-memory
// one. Record failures are logged by callers but never abort the primary
// operation.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
	ListByRange(ctx context.Context, from, to time.Time) ([]Entry, error)
}
