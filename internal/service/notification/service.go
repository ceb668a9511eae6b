package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shiftwork/attendance-bot-go/internal/domain/notification"
)

// Pusher delivers one text message to a chat user.
type Pusher interface {
	Push(ctx context.Context, chatUserID, text string) error
}

// Config holds notification service configuration.
type Config struct {
	WorkerCount int           // default: 2
	QueueSize   int           // default: 256
	PushTimeout time.Duration // default: 10 seconds
}

type service struct {
	repo   notification.Repository
	pusher Pusher
	logger *slog.Logger
	config Config

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts background workers that persist and
// push queued notifications.
func NewNotificationService(repo notification.Repository, pusher Pusher, logger *slog.Logger, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	if cfg.PushTimeout == 0 {
		cfg.PushTimeout = 10 * time.Second
	}

	s := &service{
		repo:   repo,
		pusher: pusher,
		logger: logger,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification workers started",
		slog.Int("workers", cfg.WorkerCount), slog.Int("queue_size", cfg.QueueSize))

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case req := <-s.queue:
			s.deliver(id, req)
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case req := <-s.queue:
					s.deliver(id, req)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(workerID int, req notification.CreateNotificationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.PushTimeout)
	defer cancel()

	notif := notification.Notification{
		ID:              uuid.NewString(),
		RecipientChatID: req.RecipientChatID,
		Title:           req.Title,
		Body:            req.Body,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, notif); err != nil {
		s.logger.Error("failed to persist notification",
			slog.Int("worker", workerID), slog.String("recipient", req.RecipientChatID), slog.Any("error", err))
	}

	if s.pusher == nil {
		return
	}
	text := req.Title + "\n" + req.Body
	if err := s.pusher.Push(ctx, req.RecipientChatID, text); err != nil {
		s.logger.Error("failed to push notification",
			slog.Int("worker", workerID), slog.String("recipient", req.RecipientChatID), slog.Any("error", err))
	}
}

// Notify implements notification.Service. Drops with a log line when
// the queue is saturated; attendance flows never block on delivery.
func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) {
	select {
	case s.queue <- req:
	case <-ctx.Done():
		s.logger.Warn("notification dropped, context done",
			slog.String("recipient", req.RecipientChatID))
	default:
		s.logger.Warn("notification dropped, queue full",
			slog.String("recipient", req.RecipientChatID))
	}
}

// Shutdown implements notification.Service.
func (s *service) Shutdown(ctx context.Context) error {
	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
