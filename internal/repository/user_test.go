//go:build integration
// +build integration

package repository

import (
	"testing"

	"crm-backend/internal/database/models"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	tenantRepo    *TenantRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.tenantRepo = NewTenantRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new user
func (suite *UserRepositoryTestSuite) TestCreate() {
	user := suite.factories.User.Create()

	err := suite.repo.Create(user)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, user.ID)
	suite.Equal(models.RoleUser, user.Role)
}

// TestCreateDuplicateEmail tests that email uniqueness spans all tenants
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	user1 := suite.factories.User.WithEmail("dup@test.com")
	suite.NoError(suite.repo.Create(user1))

	user2 := suite.factories.User.WithEmail("dup@test.com")
	err := suite.repo.Create(user2)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByEmail tests retrieving a user by email
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	user := suite.factories.User.WithEmail("findme@test.com")
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByEmail("findme@test.com")

	suite.NoError(err)
	suite.Equal(user.ID, retrieved.ID)
}

// TestGetByEmailNotFound tests retrieving a non-existent user
func (suite *UserRepositoryTestSuite) TestGetByEmailNotFound() {
	_, err := suite.repo.GetByEmail("ghost@test.com")

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByEmailWithTenant tests that the tenant association is preloaded
func (suite *UserRepositoryTestSuite) TestGetByEmailWithTenant() {
	tenant := suite.factories.Tenant.Create()
	suite.NoError(suite.tenantRepo.Create(tenant))

	user := suite.factories.User.WithTenant(tenant.ID)
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByEmailWithTenant(user.Email)

	suite.NoError(err)
	suite.NotNil(retrieved.Tenant)
	suite.Equal(tenant.Slug, retrieved.Tenant.Slug)
}

// TestGetByEmailWithTenantNoTenant tests a super admin without a tenant
func (suite *UserRepositoryTestSuite) TestGetByEmailWithTenantNoTenant() {
	user := suite.factories.User.WithRole(models.RoleSuperAdmin)
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByEmailWithTenant(user.Email)

	suite.NoError(err)
	suite.Nil(retrieved.TenantID)
	suite.Nil(retrieved.Tenant)
}

// TestUpdate tests role and tenant reassignment
func (suite *UserRepositoryTestSuite) TestUpdate() {
	tenant := suite.factories.Tenant.Create()
	suite.NoError(suite.tenantRepo.Create(tenant))

	user := suite.factories.User.Create()
	suite.NoError(suite.repo.Create(user))

	user.Role = models.RoleAdmin
	user.TenantID = &tenant.ID
	err := suite.repo.Update(user)

	suite.NoError(err)

	retrieved, err := suite.repo.GetByID(user.ID)
	suite.NoError(err)
	suite.Equal(models.RoleAdmin, retrieved.Role)
	suite.Equal(tenant.ID, *retrieved.TenantID)
}

// TestDelete tests deleting a user
func (suite *UserRepositoryTestSuite) TestDelete() {
	user := suite.factories.User.Create()
	suite.NoError(suite.repo.Create(user))

	suite.NoError(suite.repo.Delete(user.ID))

	_, err := suite.repo.GetByID(user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestUserRepositoryTestSuite runs the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
