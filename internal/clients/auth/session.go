package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/memberwd/backoffice/internal/entity"
)

// Session holds the token pair and the authenticated profile. It
// implements api.TokenSource so resource clients pick the access token
// up automatically. Tokens live in memory only; nothing is persisted.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	profile      entity.Staff
}

func sessionFromAPI(data sessionResponse) *Session {
	return &Session{
		accessToken:  data.AccessToken,
		refreshToken: data.RefreshToken,
		profile:      data.User,
	}
}

// NewSession builds a session from externally supplied tokens (the CLI
// env-var path). The profile stays zero until Me is called.
func NewSession(accessToken, refreshToken string) *Session {
	return &Session{
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

func (s *Session) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.accessToken == "" {
		return "", entity.ErrUnauthenticated
	}

	return s.accessToken, nil
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

func (s *Session) Profile() entity.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profile
}

// Update swaps the token pair in place after a refresh.
func (s *Session) Update(next *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = next.accessToken
	if next.refreshToken != "" {
		s.refreshToken = next.refreshToken
	}

	if !next.profile.ID.IsNil() {
		s.profile = next.profile
	}
}

// ExpiresSoon reports whether the access token expires within the given
// window. Claims are read without signature verification: the backend
// verifies tokens, the client only schedules a proactive refresh, so
// the expiry here is advisory and never used for access decisions.
func (s *Session) ExpiresSoon(window time.Duration) (bool, error) {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	if token == "" {
		return false, entity.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return false, fmt.Errorf("parse token claims: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("read exp claim: %w", err)
	}

	if exp == nil {
		return false, nil
	}

	return time.Until(exp.Time) < window, nil
}
