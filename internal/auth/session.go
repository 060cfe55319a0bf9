package auth

import (
	"sync"

	"medibill/internal/domain"
)

// Session holds the authenticated identity for the lifetime of one request.
// Initialize must succeed before Principal is used; Dispose clears it.
type Session struct {
	validator TokenValidator

	mu     sync.RWMutex
	claims *Claims
}

// NewSession creates an uninitialized session.
func NewSession(validator TokenValidator) *Session {
	return &Session{validator: validator}
}

// Initialize validates token and loads its claims. A failed Initialize
// leaves the session empty.
func (s *Session) Initialize(token string) error {
	claims, err := s.validator.Validate(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.claims = nil
		return err
	}
	s.claims = claims
	return nil
}

// Dispose clears the session. It is safe to call more than once.
func (s *Session) Dispose() {
	s.mu.Lock()
	s.claims = nil
	s.mu.Unlock()
}

// Principal returns the caller identity, or ErrSessionNotReady.
func (s *Session) Principal() (domain.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return domain.Principal{}, domain.ErrSessionNotReady
	}
	return s.claims.Principal(), nil
}
