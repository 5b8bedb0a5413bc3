// Package entity holds the identity domain types.
package entity

import "time"

// Role is the user's access level.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleVendor Role = "Vendor"
)

// User is an account that can sign in to the service.
type User struct {
	ID             int64
	Email          string
	Role           Role
	FirstName      string
	LastName       string
	VendorID       *int64
	Company        string
	ContactNumber  string
	PasswordHash   string
	IsTempPassword bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins the name parts for display and email greetings.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
