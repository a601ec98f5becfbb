// Package mockapi implements the trackspring REST API backed by sqlite.
// It serves as the test fixture of the client and as a local
// development server.
package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/trackspring/client/internal/database"
	"github.com/trackspring/client/internal/httputil"
	"gorm.io/gorm"
)

const userKey = "user"

// Server holds the state of the API.
type Server struct {
	db    *gorm.DB
	now   func() time.Time
	base  string
	table map[string]decimal.Decimal
	rates *RateTable
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithRates replaces DefaultRates. rates are units per one unit of base.
func WithRates(base string, rates map[string]decimal.Decimal) Option {
	return func(s *Server) {
		s.base = base
		s.table = rates
	}
}

// Connect opens the database at dsn, migrates it and seeds the default categories.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := database.Connect(dsn, &User{}, &Token{}, &Transaction{}, &Category{})
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&Category{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		return nil, err
	}

	if count == 0 {
		if err := db.Create(defaultCategories()).Error; err != nil {
			return nil, err
		}
	}

	return db, nil
}

// New returns a Server using db, which must have been opened with Connect.
func New(db *gorm.DB, opts ...Option) *Server {
	s := &Server{
		db:    db,
		now:   time.Now,
		base:  "USD",
		table: DefaultRates,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rates = NewRateTable(s.base, s.table, s.now)
	return s
}

// RegisterRoutes attaches all API routes to r.
func (s *Server) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", s.Register)
		auth.POST("/login", s.Login)
		auth.GET("/me", s.authenticate, s.Me)
		auth.OPTIONS("/me", httputil.OptionsGet)
	}

	s.registerTransactionRoutes(r.Group("/transactions", s.authenticate))
	s.registerCategoryRoutes(r.Group("/categories", s.authenticate))
	s.registerCurrencyRoutes(r.Group("/currency", s.authenticate))
}

// Healthz pings the database.
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Success		204
//	@Failure		500	{object}	httpError
//	@Router			/healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		abort(c, fmt.Errorf("%w: %s", database.ErrGeneral, err))
		return
	}

	c.Status(http.StatusNoContent)
}

// authenticate resolves the bearer token to a user and aborts with 401 otherwise.
func (s *Server) authenticate(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		abort(c, errUnauthorized)
		return
	}

	var t Token
	err := s.db.Preload("User").Where(&Token{Value: token}).First(&t).Error
	if errors.Is(err, database.ErrResourceNotFound) {
		abort(c, errTokenInvalid)
		return
	}
	if err != nil {
		abort(c, err)
		return
	}

	c.Set(userKey, t.User)
	c.Next()
}

func currentUser(c *gin.Context) User {
	return c.MustGet(userKey).(User)
}
