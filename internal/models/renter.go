package models

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// Initiator records which side opened a connection request.
type Initiator string

const (
	InitiatedByOwner  Initiator = "owner"
	InitiatedByRenter Initiator = "renter"
)

// Renter links one renter user to at most one owner user. A pair should have
// at most one live connection; the request flow guards this before insert.
type Renter struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	OwnerID          string           `json:"ownerId"`
	RoomNumber       string           `json:"roomNumber"`
	RentAmount       float64          `json:"rentAmount"`
	RentStartDate    string           `json:"rentStartDate"`
	NumberOfPeople   int              `json:"numberOfPeople"`
	NumberOfRooms    int              `json:"numberOfRooms"`
	DueDate          int              `json:"dueDate"` // day of month, 1-31
	ConnectionStatus ConnectionStatus `json:"connectionStatus"`
	InitiatedBy      Initiator        `json:"initiatedBy"`
	ElectricBill     float64          `json:"electricBill,omitempty"`
	WaterBill        float64          `json:"waterBill,omitempty"`
	OtherCharges     float64          `json:"otherCharges,omitempty"`
}

// TotalRent is the base rent plus all itemized charges.
func (r *Renter) TotalRent() float64 {
	return r.RentAmount + r.ElectricBill + r.WaterBill + r.OtherCharges
}
