package models

import "time"

type NotificationType string

const (
	NotifyConnectionRequest NotificationType = "connection_request"
	NotifyPaymentProof      NotificationType = "payment_proof"
	NotifyPaymentApproved   NotificationType = "payment_approved"
	NotifyPaymentOverdue    NotificationType = "payment_overdue"
	NotifyReminder          NotificationType = "reminder"
)

// Notification is a one-way informational event addressed to a single user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	RelatedID string           `json:"relatedId,omitempty"`
}
