package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
)

// NotificationService covers the recipient-side housekeeping; notifications
// themselves are emitted by the workflow services.
type NotificationService struct {
	store *store.Store
}

func NewNotificationService(st *store.Store) *NotificationService {
	return &NotificationService{store: st}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.store.Notifications(ctx)
	if err != nil {
		return nil, err
	}
	mine := []models.Notification{}
	for _, n := range notifications {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	notifications, err := s.store.Notifications(ctx)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID == id && notifications[i].UserID == userID {
			notifications[i].Read = true
			return s.store.SaveNotifications(ctx, notifications)
		}
	}
	return fmt.Errorf("%w: notification %s", ErrNotFound, id)
}

// MarkAllRead flags every notification addressed to the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	notifications, err := s.store.Notifications(ctx)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].UserID == userID {
			notifications[i].Read = true
		}
	}
	return s.store.SaveNotifications(ctx, notifications)
}

// Delete removes one notification belonging to the user.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	notifications, err := s.store.Notifications(ctx)
	if err != nil {
		return err
	}
	kept := notifications[:0]
	found := false
	for _, n := range notifications {
		if n.ID == id && n.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}
	return s.store.SaveNotifications(ctx, kept)
}
