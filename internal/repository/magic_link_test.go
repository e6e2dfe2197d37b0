//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MagicLinkRepositoryTestSuite tests the MagicLinkRepository
type MagicLinkRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MagicLinkRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *MagicLinkRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewMagicLinkRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *MagicLinkRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MagicLinkRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *MagicLinkRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests persisting a magic link
func (suite *MagicLinkRepositoryTestSuite) TestCreate() {
	link := suite.factories.MagicLink.Create("invitee@test.com")

	err := suite.repo.Create(link)

	suite.NoError(err)
	suite.True(link.Expires.After(time.Now()))
}

// TestCreateDuplicateToken tests the token unique constraint
func (suite *MagicLinkRepositoryTestSuite) TestCreateDuplicateToken() {
	link1 := suite.factories.MagicLink.Create("a@test.com")
	suite.NoError(suite.repo.Create(link1))

	link2 := suite.factories.MagicLink.Create("b@test.com")
	link2.Token = link1.Token
	err := suite.repo.Create(link2)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByToken tests retrieving a magic link by its token
func (suite *MagicLinkRepositoryTestSuite) TestGetByToken() {
	link := suite.factories.MagicLink.Create("invitee@test.com")
	suite.NoError(suite.repo.Create(link))

	retrieved, err := suite.repo.GetByToken(link.Token)

	suite.NoError(err)
	suite.Equal(link.ID, retrieved.ID)
	suite.Equal("invitee@test.com", retrieved.Email)
}

// TestGetByTokenNotFound tests lookup of an unknown token
func (suite *MagicLinkRepositoryTestSuite) TestGetByTokenNotFound() {
	_, err := suite.repo.GetByToken("no-such-token")

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDelete tests that a deleted token never resolves again
func (suite *MagicLinkRepositoryTestSuite) TestDelete() {
	link := suite.factories.MagicLink.Create("invitee@test.com")
	suite.NoError(suite.repo.Create(link))

	suite.NoError(suite.repo.Delete(link.ID))

	_, err := suite.repo.GetByToken(link.Token)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestMagicLinkRepositoryTestSuite runs the test suite
func TestMagicLinkRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MagicLinkRepositoryTestSuite))
}
