package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notification-service/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationRepository interface {
	Append(userID string, n model.Notification)
	UpdateStatus(userID, id string, status model.Status, retryCount int) bool
	List(userID string) []model.Notification
}

type dispatcher interface {
	TrySubmit(n model.Notification) error
}

// Service admits new notifications and serves user notification history.
type Service struct {
	repo       notificationRepository
	dispatcher dispatcher
	now        func() time.Time
}

// NewService creates a notification service.
func NewService(repo notificationRepository, dispatcher dispatcher) *Service {
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// CreateNotification records a new pending notification for userID and hands
// it to the dispatcher without blocking; delivery happens in the background.
//
// When the dispatcher refuses the notification (queue full or shutting down)
// the stored record is marked failed and the error is returned.
func (s *Service) CreateNotification(_ context.Context, userID string, typ model.Type, content string) (model.Notification, error) {
	n := model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Content:   content,
		Timestamp: s.now().UTC(),
		Status:    model.StatusPending,
	}

	s.repo.Append(userID, n)

	if err := s.dispatcher.TrySubmit(n); err != nil {
		s.repo.UpdateStatus(userID, n.ID, model.StatusFailed, 0)
		return model.Notification{}, fmt.Errorf("dispatch notification %s: %w", n.ID, err)
	}

	zlog.Logger.Info().Str("id", n.ID).Str("user_id", userID).Str("type", string(typ)).Msg("notification accepted")

	return n, nil
}

// GetUserNotifications returns the user's notifications in creation order.
func (s *Service) GetUserNotifications(_ context.Context, userID string) ([]model.Notification, error) {
	return s.repo.List(userID), nil
}
