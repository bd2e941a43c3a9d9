package services_test

import (
	"testing"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
	"github.com/stretchr/testify/require"
)

func TestAddRenterCreatesUserConnectionPaymentNotification(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	connection, err := svc.AddRenter(ctx, "owner1", services.AddRenterInput{
		Name:           "Ravi Renter",
		Phone:          "9123456780",
		Email:          "ravi@x.com",
		RoomNumber:     "101",
		RentAmount:     5000,
		RentStartDate:  "2025-01-01",
		NumberOfPeople: 2,
		NumberOfRooms:  1,
		DueDay:         1,
	})
	require.NoError(t, err)
	require.Equal(t, "owner1", connection.OwnerID)
	require.Equal(t, models.ConnectionAccepted, connection.ConnectionStatus)
	require.Equal(t, models.InitiatedByOwner, connection.InitiatedBy)

	users, err := st.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	created := users[2]
	require.Equal(t, models.RoleRenter, created.Role)
	require.Equal(t, "ravi@x.com", created.Email)
	require.Equal(t, "Room 101", created.Address)
	require.Equal(t, created.ID, connection.UserID)

	now := time.Now()
	payments, err := st.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, created.ID, payments[0].RenterID)
	require.Equal(t, "owner1", payments[0].OwnerID)
	require.Equal(t, now.Month().String(), payments[0].Month)
	require.Equal(t, now.Year(), payments[0].Year)
	require.Equal(t, 5000.0, payments[0].Amount)
	require.Equal(t, models.PaymentPending, payments[0].Status)

	notifications := notificationsFor(t, ctx, st, created.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotifyConnectionRequest, notifications[0].Type)
}

func TestAddRenterReusesUserButDuplicatesConnection(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	in := services.AddRenterInput{
		Name: "Ravi", Phone: "9123456780", Email: "ravi@x.com",
		RoomNumber: "101", RentAmount: 5000, DueDay: 1,
	}
	_, err := svc.AddRenter(ctx, "owner1", in)
	require.NoError(t, err)
	_, err = svc.AddRenter(ctx, "owner1", in)
	require.NoError(t, err)

	users, err := st.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// No dedup on the connection itself.
	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Len(t, renters, 2)
}

func TestAddRenterValidation(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	cases := []services.AddRenterInput{
		{Phone: "9", Email: "a@b.c", RoomNumber: "1", RentAmount: 100, DueDay: 1},       // no name
		{Name: "A", Phone: "9", Email: "a@b.c", RoomNumber: "1", RentAmount: 0, DueDay: 1}, // zero rent
		{Name: "A", Phone: "9", Email: "a@b.c", RoomNumber: "1", RentAmount: 100, DueDay: 32},
	}
	for _, in := range cases {
		_, err := svc.AddRenter(ctx, "owner1", in)
		require.ErrorIs(t, err, services.ErrInvalid)
	}

	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Empty(t, renters)
}

func TestSendRequestCreatesPendingConnection(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	connection, err := svc.SendRequest(ctx, "owner1", "Ravi Kumar", "ravi@example.com")
	require.NoError(t, err)
	require.Equal(t, "renter1", connection.UserID)
	require.Equal(t, models.ConnectionPending, connection.ConnectionStatus)
	require.Equal(t, models.InitiatedByOwner, connection.InitiatedBy)
	require.Zero(t, connection.RentAmount)
	require.Empty(t, connection.RoomNumber)

	notifications := notificationsFor(t, ctx, st, "renter1")
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotifyConnectionRequest, notifications[0].Type)
	require.Contains(t, notifications[0].Message, "Rajesh Sharma")
	require.Equal(t, connection.ID, notifications[0].RelatedID)
}

func TestSendRequestRejectsExistingConnection(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	_, err := svc.SendRequest(ctx, "owner1", "Ravi", "ravi@example.com")
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, "owner1", "Ravi", "ravi@example.com")
	require.ErrorIs(t, err, services.ErrConflict)

	// No partial writes on the conflict path.
	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Len(t, renters, 1)
	require.Len(t, notificationsFor(t, ctx, st, "renter1"), 1)
}

func TestRequestOwner(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	_, err := svc.RequestOwner(ctx, "renter1", "nobody@example.com")
	require.ErrorIs(t, err, services.ErrNotFound)

	connection, err := svc.RequestOwner(ctx, "renter1", "rajesh@example.com")
	require.NoError(t, err)
	require.Equal(t, models.InitiatedByRenter, connection.InitiatedBy)
	require.Equal(t, models.ConnectionPending, connection.ConnectionStatus)

	notifications := notificationsFor(t, ctx, st, "owner1")
	require.Len(t, notifications, 1)
	require.Contains(t, notifications[0].Message, "Ravi Kumar")
}

func TestRespondAccept(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	connection, err := svc.SendRequest(ctx, "owner1", "Ravi", "ravi@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Respond(ctx, connection.ID, "renter1", true))

	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionAccepted, renters[0].ConnectionStatus)

	notifications := notificationsFor(t, ctx, st, "owner1")
	require.Len(t, notifications, 1)
	require.Equal(t, "Renter Accepted", notifications[0].Title)
}

func TestRespondReject(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	connection, err := svc.SendRequest(ctx, "owner1", "Ravi", "ravi@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Respond(ctx, connection.ID, "renter1", false))

	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionRejected, renters[0].ConnectionStatus)

	notifications := notificationsFor(t, ctx, st, "owner1")
	require.Len(t, notifications, 1)
	require.Equal(t, "Request Declined", notifications[0].Title)
}

func TestRespondMissingConnection(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	err := svc.Respond(ctx, "gone", "renter1", true)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestEditRenterCreatesFirstBillWithCharges(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	// Connection that came in through the request flow, so no bill yet.
	connection, err := svc.SendRequest(ctx, "owner1", "Ravi", "ravi@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, connection.ID, "renter1", true))

	updated, err := svc.EditRenter(ctx, connection.ID, "owner1", services.EditRenterInput{
		RoomNumber:     "101",
		RentAmount:     5000,
		NumberOfPeople: 2,
		NumberOfRooms:  1,
		DueDay:         5,
		ElectricBill:   300,
		WaterBill:      100,
		OtherCharges:   50,
	})
	require.NoError(t, err)
	require.Equal(t, 5450.0, updated.TotalRent())

	payments, err := st.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, 5450.0, payments[0].Amount)
	require.Equal(t, models.PaymentPending, payments[0].Status)
	require.Equal(t, "renter1", payments[0].RenterID)

	// Editing again must not create a second bill.
	_, err = svc.EditRenter(ctx, connection.ID, "owner1", services.EditRenterInput{
		RoomNumber: "101", RentAmount: 6000, NumberOfPeople: 2, NumberOfRooms: 1, DueDay: 5,
	})
	require.NoError(t, err)
	payments, err = st.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
}

func TestDeleteRenterCascadesOwnPaymentsOnly(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	require.NoError(t, st.SaveRenters(ctx, []models.Renter{
		{ID: "r1", UserID: "renter1", OwnerID: "owner1", ConnectionStatus: models.ConnectionAccepted},
		{ID: "r2", UserID: "renter2", OwnerID: "owner1", ConnectionStatus: models.ConnectionAccepted},
	}))
	require.NoError(t, st.SavePayments(ctx, []models.Payment{
		{ID: "p1", RenterID: "renter1", OwnerID: "owner1", Status: models.PaymentPending},
		{ID: "p2", RenterID: "renter1", OwnerID: "owner1", Status: models.PaymentPaid},
		{ID: "p3", RenterID: "renter2", OwnerID: "owner1", Status: models.PaymentPending},
	}))

	require.NoError(t, svc.DeleteRenter(ctx, "r1", "owner1"))

	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Len(t, renters, 1)
	require.Equal(t, "r2", renters[0].ID)

	payments, err := st.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, "p3", payments[0].ID)

	// The user record itself stays.
	users, err := st.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.ErrorIs(t, svc.DeleteRenter(ctx, "r1", "owner1"), services.ErrNotFound)
}

func TestRespondRestrictedToParticipants(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	connection, err := svc.SendRequest(ctx, "owner1", "Ravi", "ravi@example.com")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Respond(ctx, connection.ID, "mallory", true), services.ErrNotFound)

	// The request is still pending and nobody was notified of a decision.
	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionPending, renters[0].ConnectionStatus)
	require.Empty(t, notificationsFor(t, ctx, st, "owner1"))

	// Either party may respond.
	require.NoError(t, svc.Respond(ctx, connection.ID, "owner1", false))
}

func TestEditRenterScopedToOwner(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	require.NoError(t, st.SaveRenters(ctx, []models.Renter{
		{ID: "r1", UserID: "renter1", OwnerID: "owner1", RentAmount: 5000,
			ConnectionStatus: models.ConnectionAccepted},
	}))

	_, err := svc.EditRenter(ctx, "r1", "other-owner", services.EditRenterInput{
		RoomNumber: "999", RentAmount: 1, NumberOfPeople: 1, NumberOfRooms: 1, DueDay: 1,
	})
	require.ErrorIs(t, err, services.ErrNotFound)

	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Equal(t, 5000.0, renters[0].RentAmount)
}

func TestDeleteRenterScopedToOwner(t *testing.T) {
	st, ctx := newStore(t)
	seedPeople(t, ctx, st)
	svc := services.NewRenterService(st)

	require.NoError(t, st.SaveRenters(ctx, []models.Renter{
		{ID: "r1", UserID: "renter1", OwnerID: "owner1", ConnectionStatus: models.ConnectionAccepted},
	}))
	require.NoError(t, st.SavePayments(ctx, []models.Payment{
		{ID: "p1", RenterID: "renter1", OwnerID: "owner1", Status: models.PaymentPending},
	}))

	require.ErrorIs(t, svc.DeleteRenter(ctx, "r1", "other-owner"), services.ErrNotFound)

	// Nothing was removed, the cascade never ran.
	renters, err := st.Renters(ctx)
	require.NoError(t, err)
	require.Len(t, renters, 1)
	payments, err := st.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
}
