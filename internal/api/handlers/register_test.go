package handlers

import (
	"errors"
	"net/http"
	"testing"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"
	"crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// RegisterHandlerTestSuite defines the test suite for RegisterHandler
type RegisterHandlerTestSuite struct {
	suite.Suite
	ctrl                    *gomock.Controller
	mockRegistrationService *mocks.MockRegistrationServiceInterface
	handler                 *RegisterHandler
	httpSuite               *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *RegisterHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRegistrationService = mocks.NewMockRegistrationServiceInterface(suite.ctrl)

	suite.handler = NewRegisterHandler(suite.mockRegistrationService, logger.New())

	suite.httpSuite = testutils.SetupHTTPTest()
	suite.httpSuite.Router.POST("/api/register", suite.handler.Register)
}

// TearDownTest cleans up after each test
func (suite *RegisterHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Jane Doe",
		"email":    "jane@acme.com",
		"password": "supersecret",
		"token":    "sometoken",
	}
}

// TestRegister tests a successful registration
func (suite *RegisterHandlerTestSuite) TestRegister() {
	suite.mockRegistrationService.EXPECT().
		Register(gomock.Any()).
		DoAndReturn(func(req *service.RegisterRequest) error {
			suite.Equal("jane@acme.com", req.Email)
			suite.Equal("sometoken", req.Token)
			return nil
		}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/register", registerBody())

	suite.Equal(http.StatusCreated, recorder.Code)

	var response map[string]string
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	suite.Equal("Registration successful", response["message"])
}

// TestRegisterInvalidBody tests the malformed payload mapping
func (suite *RegisterHandlerTestSuite) TestRegisterInvalidBody() {
	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/register", "not-json")

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "Invalid request body")
}

// TestRegisterTokenErrors tests that every token failure maps to a 400 with
// the sentinel's message
func (suite *RegisterHandlerTestSuite) TestRegisterTokenErrors() {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"invalid token", apperrors.ErrInvalidToken, "Invalid token"},
		{"expired token", apperrors.ErrTokenExpired, "expired"},
		{"email mismatch", apperrors.ErrEmailMismatch, "does not match"},
		{"invalid tenant", apperrors.ErrInvalidTenant, "Invalid tenant"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockRegistrationService.EXPECT().
				Register(gomock.Any()).
				Return(tc.err).
				Times(1)

			recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/register", registerBody())

			testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, tc.message)
		})
	}
}

// TestRegisterInternalError tests that unexpected failures stay opaque
func (suite *RegisterHandlerTestSuite) TestRegisterInternalError() {
	suite.mockRegistrationService.EXPECT().
		Register(gomock.Any()).
		Return(errors.New("connection refused")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/register", registerBody())

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusInternalServerError, "Registration failed")
}

// TestRegisterHandlerTestSuite runs the test suite
func TestRegisterHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RegisterHandlerTestSuite))
}
