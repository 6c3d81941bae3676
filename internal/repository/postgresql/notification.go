package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, recipient_id, notification_type, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, recipient_id, notification_type, message, created_at
	`

	var created notification.Notification
	err := q.QueryRow(ctx, query,
		n.ID, n.RecipientID, n.Type, n.Message,
	).Scan(
		&created.ID, &created.RecipientID, &created.Type, &created.Message, &created.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return created, nil
}
