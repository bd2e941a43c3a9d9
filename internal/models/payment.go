package models

type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "pending"
	PaymentProofSubmitted PaymentStatus = "proof_submitted"
	PaymentApproved       PaymentStatus = "approved"
	PaymentPaid           PaymentStatus = "paid"
	PaymentOverdue        PaymentStatus = "overdue"
)

// Payment is one billing obligation for one renter for one calendar month.
// RenterID holds the renter's user id, not the connection id.
type Payment struct {
	ID         string        `json:"id"`
	RenterID   string        `json:"renterId"`
	OwnerID    string        `json:"ownerId"`
	Month      string        `json:"month"`
	Year       int           `json:"year"`
	Amount     float64       `json:"amount"`
	DueDate    string        `json:"dueDate"` // YYYY-MM-DD
	Status     PaymentStatus `json:"status"`
	ProofImage string        `json:"proofImage,omitempty"`
	PaidDate   string        `json:"paidDate,omitempty"`
}

// Payable reports whether the renter may still submit a payment for it.
func (p *Payment) Payable() bool {
	return p.Status == PaymentPending || p.Status == PaymentOverdue
}
