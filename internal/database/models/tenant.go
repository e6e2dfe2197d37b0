package models

// Tenant represents the root entity for multi-tenancy. Every admin and
// customer belongs to exactly one tenant; the slug is the tenant's stable,
// URL-safe identifier.
type Tenant struct {
	BaseModel
	Name  string `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
	Email string `json:"email,omitempty" gorm:"size:255"`

	// Relationships
	Users     []User     `json:"users,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Customers []Customer `json:"customers,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
