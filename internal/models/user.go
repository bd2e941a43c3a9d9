package models

// UserRole distinguishes property owners from renters. Admin accounts pass
// every role gate.
type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleRenter UserRole = "renter"
	RoleAdmin  UserRole = "admin"
)

// User model
type User struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	Role          UserRole `json:"role"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	UpiID         string   `json:"upiId,omitempty"`
	UpiQrCode     string   `json:"upiQrCode,omitempty"`
	BankName      string   `json:"bankName,omitempty"`
	AccountNumber string   `json:"accountNumber,omitempty"`
	IfscCode      string   `json:"ifscCode,omitempty"`
}
