package models

// User is the snapshot of the authenticated user kept in the session.
type User struct {
	ID       int64  `json:"id,omitempty" example:"1"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for obtaining a token.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token    string `json:"token" example:"0f8e4f2c-5b1e-4a33-9c55-4e4b1b2e0a11"`
	Type     string `json:"type" example:"Bearer"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

// User returns the user snapshot contained in the response.
func (a AuthResponse) User() User {
	return User{
		Username: a.Username,
		Email:    a.Email,
	}
}
