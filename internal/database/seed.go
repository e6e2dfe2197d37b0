package database

import (
	"errors"
	"fmt"

	"crm-backend/internal/config"
	"crm-backend/internal/database/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedTenantName = "Signizr"
	seedTenantSlug = "signizr"
)

// SeedSuperAdmin ensures the seed tenant and the bootstrap SUPER_ADMIN user
// exist. Credentials come from SUPER_ADMIN_EMAIL / SUPER_ADMIN_PASSWORD; when
// they are unset the seed is skipped with a warning so local setups without
// them still start.
func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	var tenant models.Tenant
	err := db.First(&tenant, "slug = ?", seedTenantSlug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tenant = models.Tenant{
			Name:  seedTenantName,
			Slug:  seedTenantSlug,
			Email: cfg.SuperAdminEmail,
		}
		if err := db.Create(&tenant).Error; err != nil {
			return fmt.Errorf("create seed tenant: %w", err)
		}
		logrus.Infof("Seed tenant %q created", seedTenantSlug)
	} else if err != nil {
		return fmt.Errorf("lookup seed tenant: %w", err)
	}

	var admin models.User
	err = db.First(&admin, "role = ?", models.RoleSuperAdmin).Error
	if err == nil {
		logrus.Debug("Super admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup super admin: %w", err)
	}

	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		logrus.Warn("Super admin credentials not found in environment variables, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}

	admin = models.User{
		Name:         "Super Admin",
		Email:        cfg.SuperAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		TenantID:     &tenant.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}

	logrus.Info("Super admin user created")
	return nil
}
