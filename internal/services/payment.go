package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
	log "github.com/sirupsen/logrus"
)

// PaymentService owns the payment lifecycle. With reviewProofs disabled a
// proof upload marks the payment paid immediately; enabled, it parks the
// payment in proof_submitted until the owner approves.
type PaymentService struct {
	store        *store.Store
	reviewProofs bool
}

func NewPaymentService(st *store.Store, reviewProofs bool) *PaymentService {
	return &PaymentService{store: st, reviewProofs: reviewProofs}
}

// ListByRenter returns a renter's payments, most recent due date first.
func (s *PaymentService) ListByRenter(ctx context.Context, renterUserID string) ([]models.Payment, error) {
	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	mine := []models.Payment{}
	for _, p := range payments {
		if p.RenterID == renterUserID {
			mine = append(mine, p)
		}
	}
	sortByDueDateDesc(mine)
	return mine, nil
}

// ListByOwner returns every payment billed by an owner, most recent first.
func (s *PaymentService) ListByOwner(ctx context.Context, ownerID string) ([]models.Payment, error) {
	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	mine := []models.Payment{}
	for _, p := range payments {
		if p.OwnerID == ownerID {
			mine = append(mine, p)
		}
	}
	sortByDueDateDesc(mine)
	return mine, nil
}

// Get returns one payment, restricted to its two participants.
func (s *PaymentService) Get(ctx context.Context, paymentID, requesterID string) (*models.Payment, error) {
	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		p := payments[i]
		if p.ID != paymentID {
			continue
		}
		if p.RenterID != requesterID && p.OwnerID != requesterID {
			return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
		}
		return &p, nil
	}
	return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
}

// SubmitProof records the renter's uploaded proof image on a pending or
// overdue payment and advances its status.
func (s *PaymentService) SubmitProof(ctx context.Context, paymentID, renterUserID, proofImage string) (*models.Payment, error) {
	if proofImage == "" {
		return nil, fmt.Errorf("%w: proof image is required", ErrInvalid)
	}

	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	index := -1
	for i := range payments {
		if payments[i].ID == paymentID && payments[i].RenterID == renterUserID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}
	if !payments[index].Payable() {
		return nil, fmt.Errorf("%w: can only pay a pending or overdue payment, current status is %s",
			ErrConflict, payments[index].Status)
	}

	payments[index].ProofImage = proofImage
	if s.reviewProofs {
		payments[index].Status = models.PaymentProofSubmitted
	} else {
		payments[index].Status = models.PaymentPaid
		payments[index].PaidDate = time.Now().Format("2006-01-02")
	}
	if err := s.store.SavePayments(ctx, payments); err != nil {
		return nil, err
	}
	payment := payments[index]

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	renterName := "Your renter"
	if renter := userByID(users, renterUserID); renter != nil {
		renterName = renter.Name
	}

	if s.reviewProofs {
		err = appendNotification(ctx, s.store, models.Notification{
			UserID:    payment.OwnerID,
			Type:      models.NotifyPaymentProof,
			Title:     "Payment Proof Submitted",
			Message:   fmt.Sprintf("%s has submitted payment proof for %s rent.", renterName, payment.Month),
			RelatedID: payment.ID,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("Payment %s moved to proof_submitted by renter %s", payment.ID, renterUserID)
		return &payment, nil
	}

	err = appendNotification(ctx, s.store, models.Notification{
		UserID:    payment.OwnerID,
		Type:      models.NotifyPaymentApproved,
		Title:     "Payment Received",
		Message: fmt.Sprintf("%s has paid %s for %s %d rent.",
			renterName, rupees(payment.Amount), payment.Month, payment.Year),
		RelatedID: payment.ID,
	})
	if err != nil {
		return nil, err
	}
	err = appendNotification(ctx, s.store, models.Notification{
		UserID:    renterUserID,
		Type:      models.NotifyPaymentApproved,
		Title:     "Payment Successful!",
		Message: fmt.Sprintf("Your payment of %s for %s %d has been recorded as paid.",
			rupees(payment.Amount), payment.Month, payment.Year),
		RelatedID: payment.ID,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Payment %s marked paid by renter %s", payment.ID, renterUserID)
	return &payment, nil
}

// Approve completes the review path: the owner accepts a submitted proof and
// the payment becomes paid.
func (s *PaymentService) Approve(ctx context.Context, paymentID, ownerID string) (*models.Payment, error) {
	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	index := -1
	for i := range payments {
		if payments[i].ID == paymentID && payments[i].OwnerID == ownerID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}
	if payments[index].Status != models.PaymentProofSubmitted {
		return nil, fmt.Errorf("%w: can only approve a payment with submitted proof, current status is %s",
			ErrConflict, payments[index].Status)
	}

	payments[index].Status = models.PaymentPaid
	payments[index].PaidDate = time.Now().Format("2006-01-02")
	if err := s.store.SavePayments(ctx, payments); err != nil {
		return nil, err
	}
	payment := payments[index]

	err = appendNotification(ctx, s.store, models.Notification{
		UserID:    payment.RenterID,
		Type:      models.NotifyPaymentApproved,
		Title:     "Payment Approved",
		Message: fmt.Sprintf("Your payment of %s for %s %d has been approved.",
			rupees(payment.Amount), payment.Month, payment.Year),
		RelatedID: payment.ID,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Payment %s approved by owner %s", payment.ID, ownerID)
	return &payment, nil
}

// Due dates are ISO formatted, so string order is date order. Ties keep the
// underlying read order.
func sortByDueDateDesc(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate > payments[j].DueDate
	})
}
