package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/google/uuid"
)

type NotificationServiceImpl struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) notification.Service {
	return &NotificationServiceImpl{repo: repo}
}

// Send implements notification.Service. Delivery is fire-and-forget: a
// failure is logged and never surfaced to the caller.
func (s *NotificationServiceImpl) Send(ctx context.Context, recipientID string, typ notification.Type, message string) {
	_, err := s.repo.Create(ctx, notification.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Type:        typ,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to send notification",
			"recipient_id", recipientID,
			"type", typ,
			"error", err)
	}
}
