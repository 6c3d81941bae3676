package dispute

import "errors"

// Dispute domain errors
var (
	ErrDisputeNotFound = errors.New("dispute not found")
)
