package claim

import "errors"

// Claim domain errors
var (
	ErrClaimNotFound = errors.New("claim not found")
)
