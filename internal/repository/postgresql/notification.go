package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftwork/attendance-bot-go/internal/domain/notification"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (n *notificationRepository) Create(ctx context.Context, notif notification.Notification) error {
	q := GetQuerier(ctx, n.db)

	if notif.ID == "" {
		notif.ID = uuid.NewString()
	}

	query := `
		INSERT INTO notifications (id, recipient_chat_id, title, body)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, notif.ID, notif.RecipientChatID, notif.Title, notif.Body); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
