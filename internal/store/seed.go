package store

import (
	"fmt"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Sample dataset matching the fixtures shipped with the app. Passwords are
// hashed at seed time so login goes through the same comparison as real
// accounts.

func seedUsers() ([]models.User, error) {
	users := []models.User{
		{
			ID:       "admin1",
			Username: "admin",
			Password: "admin123",
			Role:     models.RoleAdmin,
			Name:     "Admin User",
			Phone:    "9000000000",
			Email:    "admin@paymybill.com",
			Address:  "Admin Office",
		},
		{
			ID:        "owner1",
			Username:  "owner1",
			Password:  "owner123",
			Role:      models.RoleOwner,
			Name:      "Rajesh Sharma",
			Phone:     "9876543210",
			Email:     "rajesh@example.com",
			Address:   "123 Main Street, Mumbai",
			UpiID:     "rajesh@upi",
			UpiQrCode: "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=upi://pay?pa=rajesh@upi",
		},
		{
			ID:       "renter1",
			Username: "renter1",
			Password: "renter123",
			Role:     models.RoleRenter,
			Name:     "Ravi Kumar",
			Phone:    "9123456789",
			Email:    "ravi@example.com",
			Address:  "Room 101, Main Street",
		},
		{
			ID:       "renter2",
			Username: "renter2",
			Password: "renter123",
			Role:     models.RoleRenter,
			Name:     "Amit Singh",
			Phone:    "9987654321",
			Email:    "amit@example.com",
			Address:  "Room 102, Main Street",
		},
	}
	for i := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users[i].Password = string(hashed)
	}
	return users, nil
}

func seedRenters() []models.Renter {
	return []models.Renter{
		{
			ID:               "r1",
			UserID:           "renter1",
			OwnerID:          "owner1",
			RoomNumber:       "101",
			RentAmount:       5000,
			RentStartDate:    "2024-01-01",
			NumberOfPeople:   2,
			NumberOfRooms:    1,
			DueDate:          1,
			ConnectionStatus: models.ConnectionAccepted,
			InitiatedBy:      models.InitiatedByOwner,
		},
		{
			ID:               "r2",
			UserID:           "renter2",
			OwnerID:          "owner1",
			RoomNumber:       "102",
			RentAmount:       6000,
			RentStartDate:    "2024-01-01",
			NumberOfPeople:   1,
			NumberOfRooms:    1,
			DueDate:          15,
			ConnectionStatus: models.ConnectionAccepted,
			InitiatedBy:      models.InitiatedByOwner,
		},
	}
}

func seedPayments() []models.Payment {
	year := time.Now().Year()
	return []models.Payment{
		{
			ID: "p1", RenterID: "renter1", OwnerID: "owner1",
			Month: "January", Year: year, Amount: 5000,
			DueDate: fmt.Sprintf("%d-01-01", year),
			Status:  models.PaymentPaid, PaidDate: fmt.Sprintf("%d-01-01", year),
		},
		{
			ID: "p2", RenterID: "renter1", OwnerID: "owner1",
			Month: "February", Year: year, Amount: 5000,
			DueDate: fmt.Sprintf("%d-02-01", year),
			Status:  models.PaymentPending,
		},
		{
			ID: "p3", RenterID: "renter1", OwnerID: "owner1",
			Month: "March", Year: year, Amount: 5000,
			DueDate: fmt.Sprintf("%d-03-01", year),
			Status:  models.PaymentProofSubmitted,
			ProofImage: "https://placehold.co/400x600/e2e8f0/1e293b?text=Payment+Proof",
		},
		{
			ID: "p4", RenterID: "renter2", OwnerID: "owner1",
			Month: "January", Year: year, Amount: 6000,
			DueDate: fmt.Sprintf("%d-01-15", year),
			Status:  models.PaymentPaid, PaidDate: fmt.Sprintf("%d-01-14", year),
		},
		{
			ID: "p5", RenterID: "renter2", OwnerID: "owner1",
			Month: "February", Year: year, Amount: 6000,
			DueDate: fmt.Sprintf("%d-02-15", year),
			Status:  models.PaymentOverdue,
		},
		{
			ID: "p6", RenterID: "renter2", OwnerID: "owner1",
			Month: "March", Year: year, Amount: 6000,
			DueDate: fmt.Sprintf("%d-03-15", year),
			Status:  models.PaymentPending,
		},
	}
}

func seedNotifications() []models.Notification {
	now := time.Now()
	return []models.Notification{
		{
			ID:        "n1",
			UserID:    "owner1",
			Type:      models.NotifyPaymentProof,
			Title:     "Payment Proof Submitted",
			Message:   "Ravi Kumar has submitted payment proof for March rent.",
			CreatedAt: now,
			RelatedID: "p3",
		},
		{
			ID:        "n2",
			UserID:    "owner1",
			Type:      models.NotifyPaymentOverdue,
			Title:     "Payment Overdue",
			Message:   "Amit Singh has not paid February rent. Payment is overdue.",
			CreatedAt: now.Add(-24 * time.Hour),
			RelatedID: "p5",
		},
	}
}
