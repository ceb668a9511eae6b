package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwork/attendance-bot-go/internal/domain/notification"
)

type memoryRepo struct {
	mu      sync.Mutex
	created []notification.Notification
}

func (m *memoryRepo) Create(_ context.Context, n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, n)
	return nil
}

func (m *memoryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

type recordingPusher struct {
	mu     sync.Mutex
	pushed []string
}

func (r *recordingPusher) Push(_ context.Context, chatUserID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushed = append(r.pushed, chatUserID+": "+text)
	return nil
}

func (r *recordingPusher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pushed)
}

func TestNotifyDeliversAndPersists(t *testing.T) {
	repo := &memoryRepo{}
	pusher := &recordingPusher{}
	svc := NewNotificationService(repo, pusher, slog.New(slog.NewTextHandler(io.Discard, nil)), Config{WorkerCount: 1})

	const sent = 5
	for i := 0; i < sent; i++ {
		svc.Notify(context.Background(), notification.CreateNotificationRequest{
			RecipientChatID: "chat-1",
			Title:           "Makeup request pending",
			Body:            "details",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	assert.Equal(t, sent, repo.count())
	assert.Equal(t, sent, pusher.count())
}

func TestShutdownDrainsQueue(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewNotificationService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), Config{WorkerCount: 2, QueueSize: 64})

	for i := 0; i < 20; i++ {
		svc.Notify(context.Background(), notification.CreateNotificationRequest{
			RecipientChatID: "chat-1",
			Title:           "t",
			Body:            "b",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	assert.Equal(t, 20, repo.count())
}
