package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. A user's role is fixed at registration.
const (
	RoleDonor     = "donor"
	RoleRequester = "requester"
	RoleAdmin     = "admin"
)

// User account statuses, mutated by admins only.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"size:20;not null"`
	Status    string    `json:"status" gorm:"size:20;default:'active'"`
	Location  string    `json:"location" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidRole reports whether role is one of the registerable roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleRequester, RoleAdmin:
		return true
	}
	return false
}

// IsValidUserStatus reports whether status is an allowed account status.
func IsValidUserStatus(status string) bool {
	return status == UserStatusActive || status == UserStatusInactive
}
