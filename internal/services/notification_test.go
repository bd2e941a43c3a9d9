package services_test

import (
	"testing"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
	"github.com/stretchr/testify/require"
)

func TestListForUserNewestFirst(t *testing.T) {
	st, ctx := newStore(t)
	base := time.Now().Add(-time.Hour)
	require.NoError(t, st.SaveNotifications(ctx, []models.Notification{
		{ID: "n1", UserID: "owner1", Title: "oldest", CreatedAt: base},
		{ID: "n2", UserID: "renter1", Title: "not mine", CreatedAt: base.Add(time.Minute)},
		{ID: "n3", UserID: "owner1", Title: "newest", CreatedAt: base.Add(2 * time.Minute)},
	}))
	svc := services.NewNotificationService(st)

	mine, err := svc.ListForUser(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "n3", mine[0].ID)
	require.Equal(t, "n1", mine[1].ID)
}

func TestMarkRead(t *testing.T) {
	st, ctx := newStore(t)
	require.NoError(t, st.SaveNotifications(ctx, []models.Notification{
		{ID: "n1", UserID: "owner1"},
		{ID: "n2", UserID: "owner1"},
	}))
	svc := services.NewNotificationService(st)

	require.NoError(t, svc.MarkRead(ctx, "n1", "owner1"))

	notifications, err := st.Notifications(ctx)
	require.NoError(t, err)
	require.True(t, notifications[0].Read)
	require.False(t, notifications[1].Read)

	// Wrong owner or missing id is a not-found.
	require.ErrorIs(t, svc.MarkRead(ctx, "n2", "renter1"), services.ErrNotFound)
	require.ErrorIs(t, svc.MarkRead(ctx, "gone", "owner1"), services.ErrNotFound)
}

func TestMarkAllReadScopedToUser(t *testing.T) {
	st, ctx := newStore(t)
	require.NoError(t, st.SaveNotifications(ctx, []models.Notification{
		{ID: "n1", UserID: "owner1"},
		{ID: "n2", UserID: "owner1"},
		{ID: "n3", UserID: "renter1"},
	}))
	svc := services.NewNotificationService(st)

	require.NoError(t, svc.MarkAllRead(ctx, "owner1"))

	notifications, err := st.Notifications(ctx)
	require.NoError(t, err)
	require.True(t, notifications[0].Read)
	require.True(t, notifications[1].Read)
	require.False(t, notifications[2].Read)
}

func TestDeleteNotification(t *testing.T) {
	st, ctx := newStore(t)
	require.NoError(t, st.SaveNotifications(ctx, []models.Notification{
		{ID: "n1", UserID: "owner1"},
		{ID: "n2", UserID: "renter1"},
	}))
	svc := services.NewNotificationService(st)

	require.NoError(t, svc.Delete(ctx, "n1", "owner1"))

	notifications, err := st.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "n2", notifications[0].ID)

	require.ErrorIs(t, svc.Delete(ctx, "n1", "owner1"), services.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "n2", "owner1"), services.ErrNotFound)
}
