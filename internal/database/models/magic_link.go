package models

import (
	"time"
)

// MagicLink is a pending invitation. The token is opaque and single-use:
// only the registration flow deletes the row, and only after a successful
// registration. Expiry is recomputed from the stored timestamp rather than
// kept as a separate flag.
type MagicLink struct {
	BaseModel
	Email   string    `json:"email" gorm:"not null;size:255" validate:"required,email"`
	Token   string    `json:"token" gorm:"uniqueIndex;not null;size:128" validate:"required"`
	Expires time.Time `json:"expires" gorm:"not null"`
}

// IsExpired reports whether the link is past its expiry at the given time.
func (m *MagicLink) IsExpired(now time.Time) bool {
	return now.After(m.Expires)
}

// TableName returns the table name for MagicLink
func (MagicLink) TableName() string {
	return "magic_links"
}
