package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on any login mismatch. It carries no
// detail about which part of the credentials was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session represents an authenticated operator session
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
}

// Service handles operator login, logout and session validation
type Service struct {
	credStore CredentialStore
	sessions  *cache.Cache
	logger    *logrus.Logger

	mu        sync.Mutex
	observers []func(*Session)
}

// NewService creates a new auth service. Sessions expire after ttl of
// inactivity; the cache sweeps expired sessions itself.
func NewService(credStore CredentialStore, ttl time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		credStore: credStore,
		sessions:  cache.New(ttl, 10*time.Minute),
		logger:    logger,
	}
}

// Login verifies the credentials and creates a new session
func (s *Service) Login(username, password string) (*Session, error) {
	creds, err := s.credStore.GetCredentials()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load credentials")
		return nil, ErrInvalidCredentials
	}

	if username != creds.Username {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &Session{
		Token:     token,
		Username:  username,
		CreatedAt: time.Now(),
	}
	s.sessions.SetDefault(token, session)

	s.logger.WithField("username", username).Info("Operator logged in")
	s.notify(session)

	return session, nil
}

// Logout invalidates the session for the given token. Unknown tokens are a
// no-op.
func (s *Service) Logout(token string) {
	if _, found := s.sessions.Get(token); !found {
		return
	}

	s.sessions.Delete(token)
	s.logger.Info("Operator logged out")
	s.notify(nil)
}

// Validate resolves a token to its session, refreshing the TTL
func (s *Service) Validate(token string) (*Session, bool) {
	value, found := s.sessions.Get(token)
	if !found {
		return nil, false
	}

	session := value.(*Session)
	s.sessions.SetDefault(token, session)
	return session, true
}

// Observe registers a callback invoked with the current session on every
// change: the new session on login, nil on logout. Callbacks live for the
// lifetime of the service.
func (s *Service) Observe(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Service) notify(session *Session) {
	s.mu.Lock()
	observers := make([]func(*Session), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}

// newToken generates an opaque session token
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
