package services_test

import (
	"context"
	"testing"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/kv"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*store.Store, context.Context) {
	t.Helper()
	return store.New(kv.NewMemory()), context.Background()
}

// seedPeople writes one owner and one connected renter user.
func seedPeople(t *testing.T, ctx context.Context, st *store.Store) {
	t.Helper()
	require.NoError(t, st.SaveUsers(ctx, []models.User{
		{
			ID: "owner1", Username: "owner1", Role: models.RoleOwner,
			Name: "Rajesh Sharma", Phone: "9876543210", Email: "rajesh@example.com",
		},
		{
			ID: "renter1", Username: "renter1", Role: models.RoleRenter,
			Name: "Ravi Kumar", Phone: "9123456789", Email: "ravi@example.com",
		},
	}))
}

func notificationsFor(t *testing.T, ctx context.Context, st *store.Store, userID string) []models.Notification {
	t.Helper()
	notifications, err := st.Notifications(ctx)
	require.NoError(t, err)
	mine := []models.Notification{}
	for _, n := range notifications {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	return mine
}
