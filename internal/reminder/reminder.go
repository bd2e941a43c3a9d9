package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
)

type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeverityUrgent
	SeverityOverdue
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityUrgent:
		return "urgent"
	case SeverityOverdue:
		return "overdue"
	default:
		return "none"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify buckets a due date by whole calendar days remaining from now:
// past due is overdue, within 3 days urgent, within 7 warning, else none.
func Classify(dueDate, now time.Time) (Severity, int) {
	days := daysBetween(now, dueDate)
	switch {
	case days < 0:
		return SeverityOverdue, days
	case days <= 3:
		return SeverityUrgent, days
	case days <= 7:
		return SeverityWarning, days
	default:
		return SeverityNone, days
	}
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Reminder is derived view state for one open payment; nothing here is
// persisted.
type Reminder struct {
	PaymentID string         `json:"paymentId"`
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
	DaysLeft  int            `json:"daysLeft"`
	Payment   models.Payment `json:"payment"`
}

// Evaluator computes reminders for a renter's current-month payments.
type Evaluator struct {
	store *store.Store
}

func NewEvaluator(st *store.Store) *Evaluator {
	return &Evaluator{store: st}
}

// Evaluate finds the renter's accepted connection and classifies every open
// payment for the current calendar month.
func (e *Evaluator) Evaluate(ctx context.Context, userID string) ([]Reminder, error) {
	renters, err := e.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	connected := false
	for _, r := range renters {
		if r.UserID == userID && r.ConnectionStatus == models.ConnectionAccepted {
			connected = true
			break
		}
	}
	if !connected {
		return nil, nil
	}

	payments, err := e.store.Payments(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	currentMonth := now.Month().String()
	var reminders []Reminder
	for _, p := range payments {
		if p.RenterID != userID || !p.Payable() || p.Month != currentMonth {
			continue
		}
		due, err := time.Parse("2006-01-02", p.DueDate)
		if err != nil {
			continue
		}
		severity, days := Classify(due, now)
		if severity == SeverityNone {
			continue
		}
		reminders = append(reminders, Reminder{
			PaymentID: p.ID,
			Severity:  severity,
			Message:   message(severity, p.Amount, days),
			DaysLeft:  days,
			Payment:   p,
		})
	}
	return reminders, nil
}

func message(severity Severity, amount float64, days int) string {
	switch severity {
	case SeverityOverdue:
		return fmt.Sprintf("Your rent payment of ₹%.0f is overdue by %d day(s)!", amount, -days)
	case SeverityUrgent:
		return fmt.Sprintf("Urgent: Rent payment of ₹%.0f is due in %d day(s)!", amount, days)
	default:
		return fmt.Sprintf("Reminder: Rent payment of ₹%.0f is due in %d days.", amount, days)
	}
}
