package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleUser.IsValid())

	assert.False(t, Role("").IsValid())
	assert.False(t, Role("OWNER").IsValid())
	assert.False(t, Role("admin").IsValid())
}

func TestRoleCanInvite(t *testing.T) {
	assert.True(t, RoleSuperAdmin.CanInvite())
	assert.True(t, RoleAdmin.CanInvite())

	assert.False(t, RoleUser.CanInvite())
	assert.False(t, Role("OWNER").CanInvite())
}

func TestMagicLinkIsExpired(t *testing.T) {
	now := time.Now()
	link := &MagicLink{Expires: now.Add(24 * time.Hour)}

	assert.False(t, link.IsExpired(now))
	assert.False(t, link.IsExpired(link.Expires))
	assert.True(t, link.IsExpired(now.Add(25*time.Hour)))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "tenants", Tenant{}.TableName())
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "customers", Customer{}.TableName())
	assert.Equal(t, "magic_links", MagicLink{}.TableName())
}
