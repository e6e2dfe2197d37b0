//go:build integration
// +build integration

package service_test

import (
	"testing"

	"crm-backend/internal/auth"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"
	"crm-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RegistrationServiceTestSuite exercises the registration flow against a
// real Postgres, since its guarantees are transactional.
type RegistrationServiceTestSuite struct {
	suite.Suite
	baseTestSuite       *testutils.BaseTestSuite
	registrationService *service.RegistrationService
	factories           *testutils.FactorySet

	tenantRepo    *repository.TenantRepository
	userRepo      *repository.UserRepository
	customerRepo  *repository.CustomerRepository
	magicLinkRepo *repository.MagicLinkRepository
}

// SetupSuite runs before all tests in the suite
func (suite *RegistrationServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	db := suite.baseTestSuite.DB
	suite.registrationService = service.NewRegistrationService(db, validator.New())
	suite.factories = testutils.NewFactorySet()

	suite.tenantRepo = repository.NewTenantRepository(db)
	suite.userRepo = repository.NewUserRepository(db)
	suite.customerRepo = repository.NewCustomerRepository(db)
	suite.magicLinkRepo = repository.NewMagicLinkRepository(db)
}

// TearDownSuite runs after all tests in the suite
func (suite *RegistrationServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *RegistrationServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *RegistrationServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestRegisterAdminPath tests the super-admin invite path: a new tenant is
// derived from the registrant's name, the user becomes its ADMIN and the
// magic link is gone
func (suite *RegistrationServiceTestSuite) TestRegisterAdminPath() {
	link := suite.factories.MagicLink.Create("a@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Acme",
		Email:    "a@x.com",
		Password: "12345678",
		Token:    link.Token,
	})
	suite.NoError(err)

	tenant, err := suite.tenantRepo.GetBySlug("acme")
	suite.NoError(err)
	suite.Equal("Acme", tenant.Name)

	user, err := suite.userRepo.GetByEmail("a@x.com")
	suite.NoError(err)
	suite.Equal(models.RoleAdmin, user.Role)
	suite.Equal(tenant.ID, *user.TenantID)
	suite.True(auth.CheckPassword(user.PasswordHash, "12345678"))

	_, err = suite.magicLinkRepo.GetByToken(link.Token)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestRegisterSlugCollision tests that a colliding slug gets a suffix and
// both tenants survive
func (suite *RegistrationServiceTestSuite) TestRegisterSlugCollision() {
	taken := suite.factories.Tenant.WithSlug("acme")
	suite.Require().NoError(suite.tenantRepo.Create(taken))

	link := suite.factories.MagicLink.Create("b@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Acme",
		Email:    "b@x.com",
		Password: "12345678",
		Token:    link.Token,
	})
	suite.NoError(err)

	user, err := suite.userRepo.GetByEmail("b@x.com")
	suite.NoError(err)

	created, err := suite.tenantRepo.GetByID(*user.TenantID)
	suite.NoError(err)
	suite.NotEqual(taken.ID, created.ID)
	suite.NotEqual("acme", created.Slug)
	suite.Contains(created.Slug, "acme-")
}

// TestRegisterSlugFromMultiWordName tests whitespace collapsing in the slug
func (suite *RegistrationServiceTestSuite) TestRegisterSlugFromMultiWordName() {
	link := suite.factories.MagicLink.Create("w@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Widget   Works Inc",
		Email:    "w@x.com",
		Password: "12345678",
		Token:    link.Token,
	})
	suite.NoError(err)

	_, err = suite.tenantRepo.GetBySlug("widget-works-inc")
	suite.NoError(err)
}

// TestRegisterCustomerPath tests the admin invite path: a customer row plus
// a USER account bound to the tenant
func (suite *RegistrationServiceTestSuite) TestRegisterCustomerPath() {
	tenant := suite.factories.Tenant.Create()
	suite.Require().NoError(suite.tenantRepo.Create(tenant))

	link := suite.factories.MagicLink.Create("c@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	tenantID := tenant.ID.String()
	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Carol",
		Email:    "c@x.com",
		Password: "12345678",
		Token:    link.Token,
		TenantID: &tenantID,
	})
	suite.NoError(err)

	customer, err := suite.customerRepo.GetByEmailAndTenant("c@x.com", tenant.ID)
	suite.NoError(err)
	suite.Equal("Carol", customer.Name)

	user, err := suite.userRepo.GetByEmail("c@x.com")
	suite.NoError(err)
	suite.Equal(models.RoleUser, user.Role)
	suite.Equal(tenant.ID, *user.TenantID)

	_, err = suite.magicLinkRepo.GetByToken(link.Token)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestRegisterRebindsExistingUser tests re-registration of an existing email:
// the account is rebound to the new role and tenant, no second row appears
func (suite *RegistrationServiceTestSuite) TestRegisterRebindsExistingUser() {
	existing := suite.factories.User.WithEmail("a@x.com")
	suite.Require().NoError(suite.userRepo.Create(existing))

	link := suite.factories.MagicLink.Create("a@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Acme",
		Email:    "a@x.com",
		Password: "newpassword",
		Token:    link.Token,
	})
	suite.NoError(err)

	user, err := suite.userRepo.GetByEmail("a@x.com")
	suite.NoError(err)
	suite.Equal(existing.ID, user.ID)
	suite.Equal(models.RoleAdmin, user.Role)
	suite.NotNil(user.TenantID)
	suite.True(auth.CheckPassword(user.PasswordHash, "newpassword"))
}

// TestRegisterInvalidToken tests an unknown token
func (suite *RegistrationServiceTestSuite) TestRegisterInvalidToken() {
	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Acme",
		Email:    "a@x.com",
		Password: "12345678",
		Token:    "no-such-token",
	})

	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

// TestRegisterExpiredTokenLeavesDatabaseUnchanged tests that an expired
// token changes nothing: no tenant, no user, and the link row survives
func (suite *RegistrationServiceTestSuite) TestRegisterExpiredTokenLeavesDatabaseUnchanged() {
	link := suite.factories.MagicLink.Expired("late@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Late Corp",
		Email:    "late@x.com",
		Password: "12345678",
		Token:    link.Token,
	})
	suite.ErrorIs(err, apperrors.ErrTokenExpired)

	_, err = suite.userRepo.GetByEmail("late@x.com")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = suite.tenantRepo.GetBySlug("late-corp")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	// The expired row is not consumed either, only registration deletes it
	stored, err := suite.magicLinkRepo.GetByToken(link.Token)
	suite.NoError(err)
	suite.Equal(link.ID, stored.ID)
}

// TestRegisterEmailMismatch tests that the registrant email must match the
// invitation
func (suite *RegistrationServiceTestSuite) TestRegisterEmailMismatch() {
	link := suite.factories.MagicLink.Create("invited@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Mallory",
		Email:    "other@x.com",
		Password: "12345678",
		Token:    link.Token,
	})

	suite.ErrorIs(err, apperrors.ErrEmailMismatch)
}

// TestRegisterUnknownTenant tests a tenant id that resolves to nothing
func (suite *RegistrationServiceTestSuite) TestRegisterUnknownTenant() {
	link := suite.factories.MagicLink.Create("c@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	bogus := "tenant-but-not-a-uuid"
	err := suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Carol",
		Email:    "c@x.com",
		Password: "12345678",
		Token:    link.Token,
		TenantID: &bogus,
	})
	suite.ErrorIs(err, apperrors.ErrInvalidTenant)

	missing := "00000000-0000-0000-0000-000000000001"
	err = suite.registrationService.Register(&service.RegisterRequest{
		Name:     "Carol",
		Email:    "c@x.com",
		Password: "12345678",
		Token:    link.Token,
		TenantID: &missing,
	})
	suite.ErrorIs(err, apperrors.ErrInvalidTenant)

	// The failed attempts consumed nothing
	_, err = suite.magicLinkRepo.GetByToken(link.Token)
	suite.NoError(err)
}

// TestRegisterTokenSingleUse tests that a consumed token never registers twice
func (suite *RegistrationServiceTestSuite) TestRegisterTokenSingleUse() {
	link := suite.factories.MagicLink.Create("once@x.com")
	suite.Require().NoError(suite.magicLinkRepo.Create(link))

	req := &service.RegisterRequest{
		Name:     "Once Corp",
		Email:    "once@x.com",
		Password: "12345678",
		Token:    link.Token,
	}
	suite.NoError(suite.registrationService.Register(req))

	err := suite.registrationService.Register(req)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

// TestRegistrationServiceTestSuite runs the test suite
func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}
