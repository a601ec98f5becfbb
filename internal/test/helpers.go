// Package test contains helpers for tests running against the mock API.
package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackspring/client/internal/database"
	"github.com/trackspring/client/internal/mockapi"
	"github.com/trackspring/client/internal/storage"
	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"github.com/trackspring/client/pkg/state"
	"github.com/trackspring/client/pkg/types"
)

// TOLERANCE is the duration that a CreatedAt or UpdatedAt time.Time
// is allowed to differ from the time at which it is checked.
const TOLERANCE = time.Minute

// Password is the password of all users created by Register.
const Password = "correct horse"

// Handler returns the mock API mounted at /api.
func Handler(t *testing.T, opts ...mockapi.Option) http.Handler {
	gin.SetMode(gin.TestMode)

	db, err := mockapi.Connect(database.InMemory)
	require.Nil(t, err, "mock API database could not be opened")
	t.Cleanup(func() { _ = database.Close(db) })

	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	mockapi.New(db, opts...).RegisterRoutes(r.Group("/api"))

	return r
}

// Server starts the mock API. Its URL ends with /api.
func Server(t *testing.T, opts ...mockapi.Option) string {
	srv := httptest.NewServer(Handler(t, opts...))
	t.Cleanup(srv.Close)

	return srv.URL + "/api"
}

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, h http.Handler, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteStr []byte
	var err error

	// If the body is a string, convert it to bytes
	if s, ok := body.(string); ok {
		byteStr = []byte(s)
	} else if body != nil {
		byteStr, err = json.Marshal(body)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshalled from object input", err)
		}
	}

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(byteStr))
	req.Header.Set("Content-Type", "application/json")

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	h.ServeHTTP(recorder, req)

	return *recorder
}

// Bearer returns the Authorization header for token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, expected int, r *httptest.ResponseRecorder) {
	assert.Equal(t, expected, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}

// DecodeError returns the error message of an error response.
func DecodeError(t *testing.T, r *httptest.ResponseRecorder) string {
	var body struct {
		Error string `json:"error"`
	}
	DecodeResponse(t, r, &body)
	return body.Error
}

// Client returns an API client for baseURL that sends token.
func Client(t *testing.T, baseURL, token string) *api.Client {
	c, err := api.New(baseURL, api.WithTokenSource(api.TokenFunc(func() string { return token })))
	require.Nil(t, err)
	return c
}

// Register creates a user with Password and returns a client authenticated as them.
func Register(t *testing.T, baseURL, username string) (*api.Client, models.AuthResponse) {
	auth, err := service.NewAuthService(Client(t, baseURL, "")).Register(context.Background(), models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: Password,
	})
	require.Nil(t, err, "user %s could not be registered", username)

	return Client(t, baseURL, auth.Token), auth
}

// Env is a logged in client against a fresh mock API.
type Env struct {
	URL      string
	Client   *api.Client
	Services service.Services
	Session  *state.Session
	Store    *storage.Store
}

// NewEnv starts the mock API, registers a user and logs the session in.
func NewEnv(t *testing.T, opts ...mockapi.Option) Env {
	url := Server(t, opts...)

	store, err := storage.Open(database.InMemory)
	require.Nil(t, err)
	t.Cleanup(func() { _ = store.Close() })

	session, err := state.NewSession(store)
	require.Nil(t, err)

	client, err := api.New(url, api.WithTokenSource(session))
	require.Nil(t, err)

	services := service.New(client)
	auth, err := services.Auth.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: Password,
	})
	require.Nil(t, err)
	require.Nil(t, session.Login(auth.User(), auth.Token))

	return Env{
		URL:      url,
		Client:   client,
		Services: services,
		Session:  session,
		Store:    store,
	}
}

// Fixture returns n expenses, one per hour before now, with amounts
// 1.00, 2.00, ... in shuffled order and alternating categories.
func Fixture(now time.Time, n int) []models.TransactionRequest {
	reqs := make([]models.TransactionRequest, 0, n)
	for i := 0; i < n; i++ {
		// Amounts are a permutation of 1..n unless n is a multiple of 7
		amount := (i*7)%n + 1

		category := "Food & Dining"
		if i%2 == 1 {
			category = "Transportation"
		}

		reqs = append(reqs, models.TransactionRequest{
			Description:     fmt.Sprintf("Fixture %02d", i),
			Amount:          decimal.NewFromInt(int64(amount)),
			Type:            models.Expense,
			TransactionDate: types.NewTimestamp(now.Add(-time.Duration(i+1) * time.Hour)),
			Category:        &category,
		})
	}
	return reqs
}

// Seed creates all transactions and returns them as stored.
func Seed(t *testing.T, s *service.TransactionService, reqs ...models.TransactionRequest) []models.Transaction {
	out := make([]models.Transaction, 0, len(reqs))
	for _, req := range reqs {
		tr, err := s.Create(context.Background(), req)
		require.Nil(t, err, "transaction %q could not be created", req.Description)
		out = append(out, tr)
	}
	return out
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
