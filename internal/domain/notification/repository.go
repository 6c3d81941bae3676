package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
}
