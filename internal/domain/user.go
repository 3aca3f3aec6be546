package domain

import "time"

// Role enumerates access levels for accounts.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleStaff      Role = "STAFF"
	RoleDoctor     Role = "DOCTOR"
	RolePatient    Role = "PATIENT"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleStaff, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User is the account record behind every principal.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	GivenName    string
	FamilyName   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
