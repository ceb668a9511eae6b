package notification

import "context"

// Service fans notifications out to chat users. Fire-and-forget: Notify
// enqueues and returns; delivery failures are logged, never returned.
type Service interface {
	Notify(ctx context.Context, req CreateNotificationRequest)

	// Shutdown drains the queue and stops the workers.
	Shutdown(ctx context.Context) error
}
