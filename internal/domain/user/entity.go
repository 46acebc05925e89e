package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR admin - full organization access
	RoleManager  Role = "manager"  // Can approve leave for reports
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Role           Role
	ManagerID      *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join fields for responses
	ManagerName *string
}

// IsAdmin checks if user is an HR admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// FullName returns the display name used in listings and audit trails.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
