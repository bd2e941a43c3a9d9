package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RenterService owns the connection lifecycle between owners and renters.
type RenterService struct {
	store *store.Store
}

func NewRenterService(st *store.Store) *RenterService {
	return &RenterService{store: st}
}

type AddRenterInput struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	RoomNumber     string  `json:"roomNumber"`
	RentAmount     float64 `json:"rentAmount"`
	RentStartDate  string  `json:"rentStartDate"`
	NumberOfPeople int     `json:"numberOfPeople"`
	NumberOfRooms  int     `json:"numberOfRooms"`
	DueDay         int     `json:"dueDate"`
	ElectricBill   float64 `json:"electricBill"`
	WaterBill      float64 `json:"waterBill"`
	OtherCharges   float64 `json:"otherCharges"`
}

// AddRenter is the owner's manual flow: find or provision the user, create an
// already-accepted connection, bill the current month, and notify the renter.
// Re-submission reuses an existing user but still appends a new connection.
func (s *RenterService) AddRenter(ctx context.Context, ownerID string, in AddRenterInput) (*models.Renter, error) {
	if in.Name == "" || in.Phone == "" || in.Email == "" || in.RoomNumber == "" {
		return nil, fmt.Errorf("%w: name, phone, email and room number are required", ErrInvalid)
	}
	if in.RentAmount <= 0 {
		return nil, fmt.Errorf("%w: rent amount must be positive", ErrInvalid)
	}
	if in.DueDay < 1 || in.DueDay > 31 {
		return nil, fmt.Errorf("%w: due day must be between 1 and 31", ErrInvalid)
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	var renterUser *models.User
	for i := range users {
		if users[i].Phone == in.Phone || users[i].Email == in.Email {
			renterUser = &users[i]
			break
		}
	}
	if renterUser == nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultRenterPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users = append(users, models.User{
			ID:       uuid.NewString(),
			Username: generateUsername(in.Email),
			Password: string(hashed),
			Role:     models.RoleRenter,
			Name:     in.Name,
			Phone:    in.Phone,
			Email:    in.Email,
			Address:  "Room " + in.RoomNumber,
		})
		renterUser = &users[len(users)-1]
		if err := s.store.SaveUsers(ctx, users); err != nil {
			return nil, err
		}
		log.Printf("Provisioned renter user %s for owner %s", renterUser.ID, ownerID)
	}

	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	connection := models.Renter{
		ID:               uuid.NewString(),
		UserID:           renterUser.ID,
		OwnerID:          ownerID,
		RoomNumber:       in.RoomNumber,
		RentAmount:       in.RentAmount,
		RentStartDate:    in.RentStartDate,
		NumberOfPeople:   in.NumberOfPeople,
		NumberOfRooms:    in.NumberOfRooms,
		DueDate:          in.DueDay,
		ConnectionStatus: models.ConnectionAccepted,
		InitiatedBy:      models.InitiatedByOwner,
		ElectricBill:     in.ElectricBill,
		WaterBill:        in.WaterBill,
		OtherCharges:     in.OtherCharges,
	}
	renters = append(renters, connection)
	if err := s.store.SaveRenters(ctx, renters); err != nil {
		return nil, err
	}

	// One payment for the current month only, not a recurring schedule.
	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	payments = append(payments, monthPayment(renterUser.ID, ownerID, in.RentAmount, in.DueDay, time.Now()))
	if err := s.store.SavePayments(ctx, payments); err != nil {
		return nil, err
	}

	err = appendNotification(ctx, s.store, models.Notification{
		UserID:  renterUser.ID,
		Type:    models.NotifyConnectionRequest,
		Title:   "Connected to Owner",
		Message: "You have been added as a renter. Check your payments.",
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Owner %s added renter connection %s", ownerID, connection.ID)
	return &connection, nil
}

// SendRequest creates a pending owner-initiated connection for the user with
// the given email, provisioning the account when it does not exist yet.
func (s *RenterService) SendRequest(ctx context.Context, ownerID, name, email string) (*models.Renter, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalid)
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	var invitee *models.User
	for i := range users {
		if users[i].Email == email {
			invitee = &users[i]
			break
		}
	}
	if invitee == nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultRenterPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users = append(users, models.User{
			ID:       uuid.NewString(),
			Username: generateUsername(email),
			Password: string(hashed),
			Role:     models.RoleRenter,
			Name:     name,
			Email:    email,
		})
		invitee = &users[len(users)-1]
		if err := s.store.SaveUsers(ctx, users); err != nil {
			return nil, err
		}
	}

	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range renters {
		if r.UserID == invitee.ID && r.OwnerID == ownerID {
			return nil, fmt.Errorf("%w: renter is already connected or has a pending request", ErrConflict)
		}
	}

	connection := models.Renter{
		ID:               uuid.NewString(),
		UserID:           invitee.ID,
		OwnerID:          ownerID,
		RentStartDate:    time.Now().Format("2006-01-02"),
		NumberOfPeople:   1,
		NumberOfRooms:    1,
		DueDate:          1,
		ConnectionStatus: models.ConnectionPending,
		InitiatedBy:      models.InitiatedByOwner,
	}
	renters = append(renters, connection)
	if err := s.store.SaveRenters(ctx, renters); err != nil {
		return nil, err
	}

	ownerName := "A property owner"
	if owner := userByID(users, ownerID); owner != nil {
		ownerName = owner.Name
	}
	err = appendNotification(ctx, s.store, models.Notification{
		UserID:    invitee.ID,
		Type:      models.NotifyConnectionRequest,
		Title:     "New Owner Request",
		Message:   fmt.Sprintf("%s wants to add you as their renter.", ownerName),
		RelatedID: connection.ID,
	})
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

// RequestOwner is the renter-initiated mirror of SendRequest: the renter
// looks up an owner by email and asks for a connection.
func (s *RenterService) RequestOwner(ctx context.Context, renterUserID, ownerEmail string) (*models.Renter, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	var owner *models.User
	for i := range users {
		if users[i].Email == ownerEmail && users[i].Role == models.RoleOwner {
			owner = &users[i]
			break
		}
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: no owner with that email", ErrNotFound)
	}

	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range renters {
		if r.UserID == renterUserID && r.OwnerID == owner.ID {
			return nil, fmt.Errorf("%w: already connected or pending with this owner", ErrConflict)
		}
	}

	connection := models.Renter{
		ID:               uuid.NewString(),
		UserID:           renterUserID,
		OwnerID:          owner.ID,
		RentStartDate:    time.Now().Format("2006-01-02"),
		NumberOfPeople:   1,
		NumberOfRooms:    1,
		DueDate:          1,
		ConnectionStatus: models.ConnectionPending,
		InitiatedBy:      models.InitiatedByRenter,
	}
	renters = append(renters, connection)
	if err := s.store.SaveRenters(ctx, renters); err != nil {
		return nil, err
	}

	renterName := "A renter"
	if renter := userByID(users, renterUserID); renter != nil {
		renterName = renter.Name
	}
	err = appendNotification(ctx, s.store, models.Notification{
		UserID:    owner.ID,
		Type:      models.NotifyConnectionRequest,
		Title:     "New Renter Request",
		Message:   fmt.Sprintf("%s wants to connect with you as a renter.", renterName),
		RelatedID: connection.ID,
	})
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

// Respond flips a pending connection to accepted or rejected and notifies
// the counterparty of whoever responded.
func (s *RenterService) Respond(ctx context.Context, connectionID, responderUserID string, accept bool) error {
	renters, err := s.store.Renters(ctx)
	if err != nil {
		return err
	}
	index := -1
	for i := range renters {
		if renters[i].ID == connectionID {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("%w: connection %s", ErrNotFound, connectionID)
	}
	connection := renters[index]
	if responderUserID != connection.UserID && responderUserID != connection.OwnerID {
		return fmt.Errorf("%w: connection %s", ErrNotFound, connectionID)
	}

	if accept {
		renters[index].ConnectionStatus = models.ConnectionAccepted
	} else {
		renters[index].ConnectionStatus = models.ConnectionRejected
	}
	if err := s.store.SaveRenters(ctx, renters); err != nil {
		return err
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return err
	}
	responderName := "The other party"
	if responder := userByID(users, responderUserID); responder != nil {
		responderName = responder.Name
	}

	recipient := connection.OwnerID
	if responderUserID != connection.UserID {
		recipient = connection.UserID
	}

	title := "Request Declined"
	message := fmt.Sprintf("%s has declined your connection request.", responderName)
	if accept && responderUserID == connection.UserID {
		title = "Renter Accepted"
		message = fmt.Sprintf("%s has accepted your connection request. Please add their room details.", responderName)
	} else if accept {
		title = "Request Accepted"
		message = fmt.Sprintf("%s has accepted your connection request.", responderName)
	}

	return appendNotification(ctx, s.store, models.Notification{
		UserID:    recipient,
		Type:      models.NotifyConnectionRequest,
		Title:     title,
		Message:   message,
		RelatedID: connection.ID,
	})
}

type EditRenterInput struct {
	RoomNumber     string  `json:"roomNumber"`
	RentAmount     float64 `json:"rentAmount"`
	NumberOfPeople int     `json:"numberOfPeople"`
	NumberOfRooms  int     `json:"numberOfRooms"`
	DueDay         int     `json:"dueDate"`
	ElectricBill   float64 `json:"electricBill"`
	WaterBill      float64 `json:"waterBill"`
	OtherCharges   float64 `json:"otherCharges"`
}

// EditRenter overwrites the connection's room and billing fields, restricted
// to the owning landlord. When the renter has no payment rows yet and the new
// rent is positive, the first bill for the current month is created here,
// charges included.
func (s *RenterService) EditRenter(ctx context.Context, connectionID, ownerID string, in EditRenterInput) (*models.Renter, error) {
	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	index := -1
	for i := range renters {
		if renters[i].ID == connectionID && renters[i].OwnerID == ownerID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("%w: connection %s", ErrNotFound, connectionID)
	}

	dueDay := in.DueDay
	if dueDay < 1 || dueDay > 31 {
		dueDay = 1
	}
	renters[index].RoomNumber = in.RoomNumber
	renters[index].RentAmount = in.RentAmount
	renters[index].NumberOfPeople = in.NumberOfPeople
	renters[index].NumberOfRooms = in.NumberOfRooms
	renters[index].DueDate = dueDay
	renters[index].ElectricBill = in.ElectricBill
	renters[index].WaterBill = in.WaterBill
	renters[index].OtherCharges = in.OtherCharges
	if err := s.store.SaveRenters(ctx, renters); err != nil {
		return nil, err
	}
	connection := renters[index]

	payments, err := s.store.Payments(ctx)
	if err != nil {
		return nil, err
	}
	existing := 0
	for _, p := range payments {
		if p.RenterID == connection.UserID {
			existing++
		}
	}
	if existing == 0 && in.RentAmount > 0 {
		payments = append(payments, monthPayment(connection.UserID, connection.OwnerID, connection.TotalRent(), dueDay, time.Now()))
		if err := s.store.SavePayments(ctx, payments); err != nil {
			return nil, err
		}
		log.Printf("Created first bill for renter %s, amount %.0f", connection.UserID, connection.TotalRent())
	}
	return &connection, nil
}

// DeleteRenter removes a connection belonging to ownerID and hard-cascades
// its payment rows. The underlying user and historical notifications stay.
func (s *RenterService) DeleteRenter(ctx context.Context, connectionID, ownerID string) error {
	renters, err := s.store.Renters(ctx)
	if err != nil {
		return err
	}
	index := -1
	for i := range renters {
		if renters[i].ID == connectionID && renters[i].OwnerID == ownerID {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("%w: connection %s", ErrNotFound, connectionID)
	}
	connection := renters[index]
	renters = append(renters[:index], renters[index+1:]...)
	if err := s.store.SaveRenters(ctx, renters); err != nil {
		return err
	}

	payments, err := s.store.Payments(ctx)
	if err != nil {
		return err
	}
	kept := payments[:0]
	for _, p := range payments {
		if p.RenterID != connection.UserID {
			kept = append(kept, p)
		}
	}
	if err := s.store.SavePayments(ctx, kept); err != nil {
		return err
	}
	log.Printf("Deleted renter connection %s and %d payment(s)", connectionID, len(payments)-len(kept))
	return nil
}

// ListByOwner returns every connection belonging to an owner.
func (s *RenterService) ListByOwner(ctx context.Context, ownerID string) ([]models.Renter, error) {
	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	mine := []models.Renter{}
	for _, r := range renters {
		if r.OwnerID == ownerID {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

// ConnectionForUser returns the user's accepted connection, or nil.
func (s *RenterService) ConnectionForUser(ctx context.Context, userID string) (*models.Renter, error) {
	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	for i := range renters {
		if renters[i].UserID == userID && renters[i].ConnectionStatus == models.ConnectionAccepted {
			return &renters[i], nil
		}
	}
	return nil, nil
}

// PendingForUser lists pending requests addressed to the user, from either
// direction.
func (s *RenterService) PendingForUser(ctx context.Context, userID string) ([]models.Renter, error) {
	renters, err := s.store.Renters(ctx)
	if err != nil {
		return nil, err
	}
	pending := []models.Renter{}
	for _, r := range renters {
		if r.ConnectionStatus != models.ConnectionPending {
			continue
		}
		if (r.UserID == userID && r.InitiatedBy == models.InitiatedByOwner) ||
			(r.OwnerID == userID && r.InitiatedBy == models.InitiatedByRenter) {
			pending = append(pending, r)
		}
	}
	return pending, nil
}
