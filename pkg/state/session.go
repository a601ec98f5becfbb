// Package state holds in-memory copies of server state and keeps them
// consistent with the mutations made through it.
package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/trackspring/client/pkg/models"
)

// Keys of the persisted session entries.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store persists the session between runs.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Session holds the authenticated user and their token.
//
// The token is read from the store on every use, the user is kept in memory.
type Session struct {
	store Store

	mu   sync.RWMutex
	user *models.User
}

// NewSession restores the session persisted in store.
//
// The session is logged in if both token and user are stored and the user
// can be decoded. A user that cannot be decoded removes both entries. The
// token is not verified with the server.
func NewSession(store Store) (*Session, error) {
	s := &Session{store: store}

	token, hasToken, err := store.Get(TokenKey)
	if err != nil {
		return nil, fmt.Errorf("could not read token: %w", err)
	}

	data, hasUser, err := store.Get(UserKey)
	if err != nil {
		return nil, fmt.Errorf("could not read user: %w", err)
	}

	if !hasToken || !hasUser || token == "" {
		return s, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		log.Warn().Err(err).Msg("removing unreadable session")
		if err := store.Delete(TokenKey, UserKey); err != nil {
			return nil, fmt.Errorf("could not remove unreadable session: %w", err)
		}
		return s, nil
	}

	s.user = &user
	return s, nil
}

// Login stores the user and token.
func (s *Session) Login(user models.User, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(TokenKey, token); err != nil {
		return fmt.Errorf("could not store token: %w", err)
	}
	if err := s.store.Set(UserKey, string(data)); err != nil {
		return fmt.Errorf("could not store user: %w", err)
	}

	s.user = &user
	return nil
}

// Logout removes the user and token. The server is not notified.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	return s.store.Delete(TokenKey, UserKey)
}

// User returns the logged in user.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token returns the stored token or an empty string.
func (s *Session) Token() string {
	token, ok, err := s.store.Get(TokenKey)
	if err != nil {
		log.Error().Err(err).Msg("could not read token")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// IsAuthenticated reports if a user is loaded and a token is stored.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	hasUser := s.user != nil
	s.mu.RUnlock()

	return hasUser && s.Token() != ""
}
