package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

func TestSessionStoreLoginPersistsTokens(t *testing.T) {
	api := &stubAPI{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error) {
			return &domain.AuthSession{
				Token:        "abc",
				RefreshToken: "def",
				User:         &domain.User{ID: "u1", Email: in.Email},
			}, nil
		},
	}
	tokens := &memoryTokens{}
	s := NewSessionStore(api, tokens, zerolog.Nop())

	session, err := s.Login(context.Background(), ports.LoginInput{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token != "abc" {
		t.Errorf("expected token abc, got %q", session.Token)
	}
	if !s.IsAuthenticated() {
		t.Error("expected IsAuthenticated true after login")
	}
	if tokens.creds.Token != "abc" || tokens.creds.RefreshToken != "def" {
		t.Errorf("storage holds %+v, want token abc / refresh def", tokens.creds)
	}
	if got := s.CurrentUser(); got == nil || got.ID != "u1" {
		t.Errorf("CurrentUser = %+v, want user u1", got)
	}
}

func TestSessionStoreLoginFailureRecordsServerMessage(t *testing.T) {
	api := &stubAPI{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error) {
			return nil, &domain.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
		},
	}
	tokens := &memoryTokens{}
	s := NewSessionStore(api, tokens, zerolog.Nop())

	_, err := s.Login(context.Background(), ports.LoginInput{Email: "a@b.com", Password: "bad"})
	if err == nil {
		t.Fatal("expected error from failed login")
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected IsAuthenticated false after failed login")
	}
	if got := s.Err(); got != "Invalid credentials" {
		t.Errorf("Err() = %q, want server message", got)
	}
}

func TestSessionStoreRegisterEstablishesSession(t *testing.T) {
	api := &stubAPI{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.AuthSession, error) {
			return &domain.AuthSession{
				Token:        "tok",
				RefreshToken: "ref",
				User:         &domain.User{ID: "u2", BusinessName: in.BusinessName},
				Message:      "User registered successfully",
			}, nil
		},
	}
	tokens := &memoryTokens{}
	s := NewSessionStore(api, tokens, zerolog.Nop())

	session, err := s.Register(context.Background(), ports.RegisterInput{
		BusinessName: "Salon",
		Email:        "salon@x.com",
		Password:     "pw",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.Message != "User registered successfully" {
		t.Errorf("unexpected message %q", session.Message)
	}
	if !s.IsAuthenticated() {
		t.Error("expected IsAuthenticated true after register")
	}
}

func TestSessionStoreLogoutClearsEverything(t *testing.T) {
	api := &stubAPI{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error) {
			return &domain.AuthSession{Token: "abc", RefreshToken: "def", User: &domain.User{ID: "u1"}}, nil
		},
	}
	tokens := &memoryTokens{}
	s := NewSessionStore(api, tokens, zerolog.Nop())

	if _, err := s.Login(context.Background(), ports.LoginInput{}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected IsAuthenticated false after logout")
	}
	if tokens.creds.Token != "" || tokens.creds.RefreshToken != "" {
		t.Errorf("storage not cleared: %+v", tokens.creds)
	}
	if s.CurrentUser() != nil {
		t.Error("expected nil CurrentUser after logout")
	}
}

func TestSessionStoreIsAuthenticatedReadsStorage(t *testing.T) {
	tokens := &memoryTokens{}
	s := NewSessionStore(&stubAPI{}, tokens, zerolog.Nop())

	if s.IsAuthenticated() {
		t.Error("expected false with empty storage")
	}
	// Tokens written behind the store's back, as another session handle or a
	// prior process would.
	tokens.creds = domain.Credentials{Token: "external"}
	if !s.IsAuthenticated() {
		t.Error("expected true once storage holds a token")
	}
	tokens.creds = domain.Credentials{}
	if s.IsAuthenticated() {
		t.Error("expected false after storage cleared externally")
	}
}

func TestSessionStoreFetchProfileFailureKeepsSession(t *testing.T) {
	api := &stubAPI{
		getProfileFn: func(ctx context.Context) (*domain.User, error) {
			return nil, errors.New("network down")
		},
	}
	tokens := &memoryTokens{creds: domain.Credentials{Token: "abc"}}
	s := NewSessionStore(api, tokens, zerolog.Nop())

	if _, err := s.FetchProfile(context.Background()); err == nil {
		t.Fatal("expected error from FetchProfile")
	}
	if !s.IsAuthenticated() {
		t.Error("profile fetch failure must not tear down the session")
	}
	if s.Err() == "" {
		t.Error("expected error message recorded")
	}
}

func TestSessionStoreUpdateProfileReplacesUser(t *testing.T) {
	api := &stubAPI{
		updateProfileFn: func(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error) {
			return &domain.User{ID: "u1", BusinessName: in.BusinessName, Email: in.Email}, nil
		},
	}
	s := NewSessionStore(api, &memoryTokens{}, zerolog.Nop())

	updated, err := s.UpdateProfile(context.Background(), ports.ProfileUpdate{
		BusinessName: "New Name",
		Email:        "new@x.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.BusinessName != "New Name" {
		t.Errorf("unexpected business name %q", updated.BusinessName)
	}
	if got := s.CurrentUser(); got == nil || got.Email != "new@x.com" {
		t.Errorf("CurrentUser = %+v, want updated profile", got)
	}
}
