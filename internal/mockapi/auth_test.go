package mockapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trackspring/client/internal/test"
	"github.com/trackspring/client/pkg/models"
)

func (suite *TestSuiteStandard) TestRegister() {
	auth := suite.register("bob")

	suite.Assert().NotEmpty(auth.Token)
	suite.Assert().Equal("Bearer", auth.Type)
	suite.Assert().Equal("bob", auth.Username)
	suite.Assert().Equal("bob@example.com", auth.Email)
}

func (suite *TestSuiteStandard) TestRegisterFails() {
	tests := []struct {
		name string
		req  models.RegisterRequest
		msg  string
	}{
		{
			"Username taken",
			models.RegisterRequest{Username: "alice", Email: "other@example.com", Password: test.Password},
			"Username is already taken!",
		},
		{
			"Email taken",
			models.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: test.Password},
			"Email is already in use!",
		},
		{
			"Password too short",
			models.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "12345"},
			"Password must be at least 6 characters long",
		},
		{
			"Invalid email",
			models.RegisterRequest{Username: "carol", Email: "carol", Password: test.Password},
			"Invalid email format",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, "http://example.com/api/auth/register", tt.req)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
			assert.Equal(t, tt.msg, test.DecodeError(t, &r))
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterEmptyBody() {
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/api/auth/register", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	suite.Assert().Equal("The request body must not be empty", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestLogin() {
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/api/auth/login", models.LoginRequest{
		Username: "alice",
		Password: test.Password,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var auth models.AuthResponse
	test.DecodeResponse(suite.T(), &r, &auth)
	suite.Assert().NotEqual(suite.token, auth.Token, "every login issues a new token")

	// Both tokens stay valid
	suite.requestAs(auth.Token, http.MethodGet, "/auth/me", nil, http.StatusOK)
	suite.request(http.MethodGet, "/auth/me", nil, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	for _, req := range []models.LoginRequest{
		{Username: "alice", Password: "wrong password"},
		{Username: "nobody", Password: test.Password},
	} {
		r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/api/auth/login", req)
		test.AssertHTTPStatus(suite.T(), http.StatusUnauthorized, &r)
		suite.Assert().Equal("Invalid username or password", test.DecodeError(suite.T(), &r))
	}
}

func (suite *TestSuiteStandard) TestMe() {
	r := suite.request(http.MethodGet, "/auth/me", nil, http.StatusOK)

	var user models.User
	test.DecodeResponse(suite.T(), &r, &user)
	suite.Assert().Equal("alice", user.Username)
	suite.Assert().Equal("alice@example.com", user.Email)
	suite.Assert().NotZero(user.ID)
}

func (suite *TestSuiteStandard) TestUnauthenticated() {
	r := suite.requestAs("", http.MethodGet, "/auth/me", nil, http.StatusUnauthorized)
	suite.Assert().Equal("Authentication is required", test.DecodeError(suite.T(), &r))

	r = suite.requestAs("not-a-token", http.MethodGet, "/transactions", nil, http.StatusUnauthorized)
	suite.Assert().Equal("Invalid or expired token", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	r := suite.request(http.MethodGet, "/transactions", nil, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), &r), "an error occurred on the server")

	hr := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/api/healthz", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusInternalServerError, &hr)
}

func (suite *TestSuiteStandard) TestHealthz() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/api/healthz", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
}
