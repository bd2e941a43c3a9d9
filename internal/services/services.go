package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
)

// Renters provisioned by an owner get this credential until they change it.
const defaultRenterPassword = "renter123"

func appendNotification(ctx context.Context, st *store.Store, n models.Notification) error {
	notifications, err := st.Notifications(ctx)
	if err != nil {
		return err
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	notifications = append(notifications, n)
	return st.SaveNotifications(ctx, notifications)
}

func userByID(users []models.User, id string) *models.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

// generateUsername derives a handle from the email local part with a random
// suffix so provisioned accounts don't collide.
func generateUsername(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	return local + uuid.NewString()[:8]
}

// monthPayment builds the single billing row for the calendar month of now,
// due on dueDay of that month.
func monthPayment(renterUserID, ownerID string, amount float64, dueDay int, now time.Time) models.Payment {
	due := time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, now.Location())
	return models.Payment{
		ID:       uuid.NewString(),
		RenterID: renterUserID,
		OwnerID:  ownerID,
		Month:    now.Month().String(),
		Year:     now.Year(),
		Amount:   amount,
		DueDate:  due.Format("2006-01-02"),
		Status:   models.PaymentPending,
	}
}

func rupees(amount float64) string {
	return fmt.Sprintf("₹%.0f", amount)
}
