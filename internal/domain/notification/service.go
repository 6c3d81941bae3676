package notification

import "context"

// Service is the fire-and-forget notification primitive. Send never returns
// an error: delivery failures are logged by the implementation and must not
// abort the caller's primary operation.
type Service interface {
	Send(ctx context.Context, recipientID string, typ Type, message string)
}
