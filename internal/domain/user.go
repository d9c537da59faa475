package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the coarse authorization role carried in access token claims.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLeader, RoleMember:
		return true
	}
	return false
}

// User is an account that can own projects, belong to projects, and be
// assigned tasks. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Name         string
	LastName     string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated identity with the password hash stripped.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	FullName string    `json:"fullName"`
	Role     Role      `json:"role"`
}

// Principal returns the sanitized identity view of the user.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
