package service

import (
	"context"
	"sync"
	"time"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"go.uber.org/zap"
)

// Notifier receives the user-facing outcome of every mutation
type Notifier interface {
	Success(ctx context.Context, title, description string)
	Failure(ctx context.Context, title string, err error)
	Info(ctx context.Context, title, description string)
}

// NotificationService keeps the most recent notifications in a bounded feed
// and mirrors each one to the log.
type NotificationService struct {
	logger *zap.Logger
	limit  int
	now    func() time.Time

	mu     sync.Mutex
	nextID uint64
	feed   []domain.Notification
}

// NewNotificationService creates a feed holding at most limit entries
func NewNotificationService(limit int, logger *zap.Logger) *NotificationService {
	if limit <= 0 {
		limit = 100
	}
	return &NotificationService{
		logger: logger,
		limit:  limit,
		now:    time.Now,
	}
}

func (s *NotificationService) Success(ctx context.Context, title, description string) {
	s.push(domain.NotificationSuccess, title, description)
	s.logger.Info("notification",
		zap.String("level", string(domain.NotificationSuccess)),
		zap.String("title", title),
		zap.String("description", description),
	)
}

// Failure records err's user-facing message under title
func (s *NotificationService) Failure(ctx context.Context, title string, err error) {
	msg := domain.ErrorMessage(err)
	s.push(domain.NotificationError, title, msg)
	s.logger.Warn("notification",
		zap.String("level", string(domain.NotificationError)),
		zap.String("title", title),
		zap.Error(err),
	)
}

func (s *NotificationService) Info(ctx context.Context, title, description string) {
	s.push(domain.NotificationInfo, title, description)
	s.logger.Info("notification",
		zap.String("level", string(domain.NotificationInfo)),
		zap.String("title", title),
		zap.String("description", description),
	)
}

func (s *NotificationService) push(level domain.NotificationLevel, title, description string) {
	metrics.Notifications.WithLabelValues(string(level)).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.feed = append(s.feed, domain.Notification{
		ID:          s.nextID,
		Level:       level,
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	})
	if over := len(s.feed) - s.limit; over > 0 {
		s.feed = append([]domain.Notification(nil), s.feed[over:]...)
	}
}

// Recent returns notifications with an id greater than afterID, oldest first
func (s *NotificationService) Recent(afterID uint64) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Notification, 0, len(s.feed))
	for _, n := range s.feed {
		if n.ID > afterID {
			out = append(out, n)
		}
	}
	return out
}
