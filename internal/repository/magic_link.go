package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MagicLinkRepository handles database operations for magic links
type MagicLinkRepository struct {
	db *gorm.DB
}

// NewMagicLinkRepository creates a new magic link repository
func NewMagicLinkRepository(db *gorm.DB) *MagicLinkRepository {
	return &MagicLinkRepository{db: db}
}

// Create creates a new magic link
func (r *MagicLinkRepository) Create(link *models.MagicLink) error {
	return r.db.Create(link).Error
}

// GetByToken retrieves a magic link by its opaque token
func (r *MagicLinkRepository) GetByToken(token string) (*models.MagicLink, error) {
	var link models.MagicLink
	err := r.db.First(&link, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete deletes a magic link. Only the registration flow calls this, after
// the invitation has been consumed.
func (r *MagicLinkRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.MagicLink{}, "id = ?", id).Error
}
