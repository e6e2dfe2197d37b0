//go:build integration
// +build integration

package repository

import (
	"fmt"
	"testing"

	"crm-backend/internal/database/models"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// CustomerRepositoryTestSuite tests the CustomerRepository
type CustomerRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *CustomerRepository
	tenantRepo    *TenantRepository
	factories     *testutils.FactorySet
	tenant        *models.Tenant
}

// SetupSuite runs before all tests in the suite
func (suite *CustomerRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewCustomerRepository(suite.baseTestSuite.DB)
	suite.tenantRepo = NewTenantRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *CustomerRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test and creates a fresh tenant
func (suite *CustomerRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.tenant = suite.factories.Tenant.Create()
	suite.Require().NoError(suite.tenantRepo.Create(suite.tenant))
}

// TearDownTest runs after each test
func (suite *CustomerRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new customer
func (suite *CustomerRepositoryTestSuite) TestCreate() {
	customer := suite.factories.Customer.Create(suite.tenant.ID)

	err := suite.repo.Create(customer)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, customer.ID)
}

// TestCreateDuplicateEmailSameTenant tests the (email, tenant) unique constraint
func (suite *CustomerRepositoryTestSuite) TestCreateDuplicateEmailSameTenant() {
	c1 := suite.factories.Customer.WithEmail(suite.tenant.ID, "dup@test.com")
	suite.NoError(suite.repo.Create(c1))

	c2 := suite.factories.Customer.WithEmail(suite.tenant.ID, "dup@test.com")
	err := suite.repo.Create(c2)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestCreateSameEmailDifferentTenants tests that the same email may exist
// as customers of two different tenants
func (suite *CustomerRepositoryTestSuite) TestCreateSameEmailDifferentTenants() {
	other := suite.factories.Tenant.Create()
	suite.NoError(suite.tenantRepo.Create(other))

	c1 := suite.factories.Customer.WithEmail(suite.tenant.ID, "shared@test.com")
	suite.NoError(suite.repo.Create(c1))

	c2 := suite.factories.Customer.WithEmail(other.ID, "shared@test.com")
	suite.NoError(suite.repo.Create(c2))
}

// TestGetByEmailAndTenant tests the tenant-scoped email lookup
func (suite *CustomerRepositoryTestSuite) TestGetByEmailAndTenant() {
	customer := suite.factories.Customer.WithEmail(suite.tenant.ID, "scoped@test.com")
	suite.NoError(suite.repo.Create(customer))

	retrieved, err := suite.repo.GetByEmailAndTenant("scoped@test.com", suite.tenant.ID)
	suite.NoError(err)
	suite.Equal(customer.ID, retrieved.ID)

	_, err = suite.repo.GetByEmailAndTenant("scoped@test.com", uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestListByTenant tests listing scoped to a tenant
func (suite *CustomerRepositoryTestSuite) TestListByTenant() {
	other := suite.factories.Tenant.Create()
	suite.NoError(suite.tenantRepo.Create(other))

	for i := 0; i < 3; i++ {
		suite.NoError(suite.repo.Create(suite.factories.Customer.Create(suite.tenant.ID)))
	}
	suite.NoError(suite.repo.Create(suite.factories.Customer.Create(other.ID)))

	customers, total, err := suite.repo.ListByTenant(suite.tenant.ID, "", 10, 0)

	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(customers, 3)
}

// TestListByTenantPagination tests limit and offset behavior
func (suite *CustomerRepositoryTestSuite) TestListByTenantPagination() {
	for i := 0; i < 15; i++ {
		customer := suite.factories.Customer.WithEmail(suite.tenant.ID, fmt.Sprintf("c%02d@test.com", i))
		suite.NoError(suite.repo.Create(customer))
	}

	page2, total, err := suite.repo.ListByTenant(suite.tenant.ID, "", 10, 10)

	suite.NoError(err)
	suite.Equal(int64(15), total)
	suite.Len(page2, 5)
}

// TestListByTenantSearch tests the case-insensitive substring filter
func (suite *CustomerRepositoryTestSuite) TestListByTenantSearch() {
	alice := suite.factories.Customer.WithEmail(suite.tenant.ID, "alice@test.com")
	alice.Name = "Alice Smith"
	suite.NoError(suite.repo.Create(alice))

	bob := suite.factories.Customer.WithEmail(suite.tenant.ID, "bob@test.com")
	bob.Name = "Bob Jones"
	suite.NoError(suite.repo.Create(bob))

	customers, total, err := suite.repo.ListByTenant(suite.tenant.ID, "ALICE", 10, 0)

	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(customers, 1)
	suite.Equal("Alice Smith", customers[0].Name)
}

// TestListByTenantSearchPhone tests searching over the phone column
func (suite *CustomerRepositoryTestSuite) TestListByTenantSearchPhone() {
	customer := suite.factories.Customer.Create(suite.tenant.ID)
	phone := "+49-30-901820"
	customer.Phone = &phone
	suite.NoError(suite.repo.Create(customer))

	_, total, err := suite.repo.ListByTenant(suite.tenant.ID, "901820", 10, 0)

	suite.NoError(err)
	suite.Equal(int64(1), total)
}

// TestCustomerRepositoryTestSuite runs the test suite
func TestCustomerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepositoryTestSuite))
}
