package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trackspring/client/internal/database"
	"github.com/trackspring/client/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "Bearer"

// Register creates a user and logs them in
//
//	@Summary		Register
//	@Description	Creates a new user and returns a token for it
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	models.AuthResponse
//	@Failure		400		{object}	httpError
//	@Param			user	body		models.RegisterRequest	true	"User"
//	@Router			/auth/register [post]
func (s *Server) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bind(c, &req) {
		return
	}

	if err := s.unique(&User{Username: req.Username}, errUsernameTaken); err != nil {
		abort(c, err)
		return
	}

	if err := s.unique(&User{Email: req.Email}, errEmailTaken); err != nil {
		abort(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		abort(c, err)
		return
	}

	user := User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		abort(c, err)
		return
	}

	s.respondToken(c, user)
}

// unique returns taken if a user matching query exists.
func (s *Server) unique(query *User, taken error) error {
	var count int64
	if err := s.db.Model(&User{}).Where(query).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return taken
	}
	return nil
}

// Login returns a new token for valid credentials
//
//	@Summary		Login
//	@Description	Returns a new token for the user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	models.AuthResponse
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Param			credentials	body		models.LoginRequest	true	"Credentials"
//	@Router			/auth/login [post]
func (s *Server) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bind(c, &req) {
		return
	}

	var user User
	err := s.db.Where(&User{Username: req.Username}).First(&user).Error
	if errors.Is(err, database.ErrResourceNotFound) {
		abort(c, errCredentials)
		return
	}
	if err != nil {
		abort(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		abort(c, errCredentials)
		return
	}

	s.respondToken(c, user)
}

func (s *Server) respondToken(c *gin.Context, user User) {
	token := Token{
		Value:  uuid.New().String(),
		UserID: user.ID,
	}

	if err := s.db.Create(&token).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:    token.Value,
		Type:     tokenType,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Me returns the authenticated user
//
//	@Summary		Current user
//	@Description	Returns the user the token belongs to
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.User
//	@Failure		401	{object}	httpError
//	@Router			/auth/me [get]
func (s *Server) Me(c *gin.Context) {
	user := currentUser(c)

	c.JSON(http.StatusOK, models.User{
		ID:       int64(user.ID),
		Username: user.Username,
		Email:    user.Email,
	})
}
