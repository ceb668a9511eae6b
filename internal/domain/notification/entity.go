package notification

import "time"

type Notification struct {
	ID              string
	RecipientChatID string
	Title           string
	Body            string
	CreatedAt       time.Time
}

type CreateNotificationRequest struct {
	RecipientChatID string
	Title           string
	Body            string
}
