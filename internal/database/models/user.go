package models

import (
	"github.com/google/uuid"
)

// Role is the closed set of authorization roles. Invitation rights form a
// strict hierarchy: a super admin invites tenant admins, a tenant admin
// invites customers, and plain users get read-only dashboard access.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// CanInvite reports whether the role may issue magic-link invitations.
func (r Role) CanInvite() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return true
	}
	return false
}

// User represents an account that can sign in. TenantID is nil only for a
// super admin that has not been associated with the seed tenant yet.
type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string     `json:"-" gorm:"column:password;not null;size:255"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:'USER'" validate:"required"`
	TenantID     *uuid.UUID `json:"tenantId,omitempty" gorm:"type:uuid;index"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
