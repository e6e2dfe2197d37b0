package models

import (
	"github.com/google/uuid"
)

// Customer is a CRM record scoped to a tenant. The same email may appear as
// a customer of different tenants, so uniqueness is on (email, tenant).
type Customer struct {
	BaseModel
	Name     string    `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email    string    `json:"email" gorm:"uniqueIndex:idx_customers_email_tenant;not null;size:255" validate:"required,email,max=255"`
	Phone    *string   `json:"phone,omitempty" gorm:"size:30"`
	Address  *string   `json:"address,omitempty" gorm:"size:255"`
	TenantID uuid.UUID `json:"tenantId" gorm:"type:uuid;uniqueIndex:idx_customers_email_tenant;not null;index"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
