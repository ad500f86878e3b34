// Package store holds the client-side state containers: the session store
// owning the credential lifecycle and current profile, and the app store
// owning the per-entity caches synchronized against the server.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

// SessionStore owns the authentication token lifecycle and the in-memory
// business profile. It is an explicit, dependency-injected handle rather
// than a process-wide singleton, so independent sessions can coexist.
//
// The authenticated predicate is never cached: IsAuthenticated re-reads the
// durable token storage on every call, so the store cannot drift from
// storage (it can still be stale relative to server-side revocation).
//
// Individual operations are not serialized against each other; a register
// racing a logout leaves whichever state resolved last. The mutex only
// protects the in-memory profile and error fields.
type SessionStore struct {
	api    ports.BookingAPI
	tokens ports.TokenStorage
	log    zerolog.Logger

	mu      sync.RWMutex
	user    *domain.User
	lastErr string
}

// NewSessionStore builds a session store over the given gateway and token
// storage.
func NewSessionStore(api ports.BookingAPI, tokens ports.TokenStorage, log zerolog.Logger) *SessionStore {
	return &SessionStore{api: api, tokens: tokens, log: log}
}

// Register creates the business account. On success both tokens are
// persisted and the returned profile is kept in memory.
func (s *SessionStore) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthSession, error) {
	s.setErr("")
	session, err := s.api.Register(ctx, in)
	if err != nil {
		s.setErr(domain.ServerMessage(err, "registration failed"))
		return nil, err
	}
	return session, s.adopt(session)
}

// Login exchanges credentials for a token pair. On success both tokens are
// persisted and the returned profile is kept in memory.
func (s *SessionStore) Login(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error) {
	s.setErr("")
	session, err := s.api.Login(ctx, in)
	if err != nil {
		s.setErr(domain.ServerMessage(err, "login failed"))
		return nil, err
	}
	return session, s.adopt(session)
}

func (s *SessionStore) adopt(session *domain.AuthSession) error {
	if err := s.tokens.Store(domain.Credentials{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	}); err != nil {
		s.setErr("failed to persist credentials")
		return err
	}
	s.mu.Lock()
	s.user = session.User
	s.mu.Unlock()
	s.log.Info().Msg("session established")
	return nil
}

// Logout clears the durable tokens and drops the in-memory profile. It is a
// pure local state change: no network call is made.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.lastErr = ""
	s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.log.Info().Msg("session cleared")
	return nil
}

// FetchProfile hydrates the profile from the server, for the case where
// only the token survived (token present, profile absent). A failure
// records the error but does not tear the session down.
func (s *SessionStore) FetchProfile(ctx context.Context) (*domain.User, error) {
	user, err := s.api.GetProfile(ctx)
	if err != nil {
		s.setErr(domain.ServerMessage(err, "failed to fetch profile"))
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// UpdateProfile replaces the in-memory profile with the server's returned
// object on success.
func (s *SessionStore) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error) {
	s.setErr("")
	user, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		s.setErr(domain.ServerMessage(err, "failed to update profile"))
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// IsAuthenticated reports whether the durable storage currently holds an
// access token. Storage is consulted on every call; presence of the token
// string is the sole predicate.
func (s *SessionStore) IsAuthenticated() bool {
	creds, err := s.tokens.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read credentials")
		return false
	}
	return !creds.IsAnonymous()
}

// CurrentUser returns a copy of the in-memory profile, or nil when none has
// been loaded.
func (s *SessionStore) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Err returns the most recent operation error message, empty when the last
// operation succeeded.
func (s *SessionStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *SessionStore) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
