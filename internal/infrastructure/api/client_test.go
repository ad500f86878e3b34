package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

// trackingTokens records Clear calls so teardown behavior is observable.
type trackingTokens struct {
	mu      sync.Mutex
	creds   domain.Credentials
	cleared int
}

func (s *trackingTokens) Load() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *trackingTokens) Store(creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *trackingTokens) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = domain.Credentials{}
	s.cleared++
	return nil
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("", &trackingTokens{}); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := New("http://localhost:8088/api", nil); err == nil {
		t.Error("expected error for nil token storage")
	}
}

func TestNewNormalizesBaseURL(t *testing.T) {
	c, err := New("localhost:8088/api/", &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.baseURL != "http://localhost:8088/api" {
		t.Errorf("baseURL = %q, want scheme added and trailing slash trimmed", c.baseURL)
	}
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tokens := &trackingTokens{creds: domain.Credentials{Token: "tok-123"}}
	c, err := New(srv.URL, tokens)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := c.ListServices(context.Background()); err != nil {
		t.Fatalf("ListServices returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer credential", gotAuth)
	}
}

func TestClientOmitsHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, hasAuth = r.Header.Get("Authorization"), r.Header.Get("Authorization") != ""
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := c.ListServices(context.Background()); err != nil {
		t.Fatalf("ListServices returned error: %v", err)
	}
	if hasAuth {
		t.Errorf("anonymous request carried Authorization %q", gotAuth)
	}
}

func TestClientUnauthorizedTearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired"}`))
	}))
	defer srv.Close()

	tokens := &trackingTokens{creds: domain.Credentials{Token: "stale", RefreshToken: "stale-refresh"}}
	var handlerFired bool
	c, err := New(srv.URL, tokens, WithSessionExpiredHandler(func() { handlerFired = true }))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// Any authenticated call triggers the teardown, not just auth endpoints.
	_, err = c.ListAppointments(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if tokens.cleared != 1 {
		t.Errorf("Clear called %d times, want 1", tokens.cleared)
	}
	if creds, _ := tokens.Load(); creds.Token != "" || creds.RefreshToken != "" {
		t.Errorf("both tokens must be cleared, got %+v", creds)
	}
	if !handlerFired {
		t.Error("session-expired handler must fire before the error returns")
	}
	if got := domain.ServerMessage(err, ""); got != "Token expired" {
		t.Errorf("server message = %q, want Token expired", got)
	}
}

func TestClientSingleAttemptPerCall(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := c.ListServices(context.Background()); err == nil {
		t.Fatal("expected error from 500 response")
	}
	if calls != 1 {
		t.Errorf("server saw %d requests, want exactly 1", calls)
	}
}

func TestClientErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Service not found"}`, "Service not found"},
		{"error field fallback", `{"error":"bad request"}`, "bad request"},
		{"message wins over error", `{"message":"primary","error":"secondary"}`, "primary"},
		{"non-json body", "plain failure", "plain failure"},
		{"empty body", "", "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, err := New(srv.URL, &trackingTokens{})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			_, err = c.GetService(context.Background(), "x")
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if got := domain.ServerMessage(err, "fallback"); got != tc.want {
				t.Errorf("message = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClientStatusUpdateUsesQueryParameter(t *testing.T) {
	var gotPath, gotStatus, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotStatus, gotMethod = r.URL.Path, r.URL.Query().Get("status"), r.Method
		json.NewEncoder(w).Encode(domain.Appointment{ID: "a1", Status: domain.StatusConfirmed})
	}))
	defer srv.Close()

	c, err := New(srv.URL, &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := c.UpdateAppointmentStatus(context.Background(), "a1", "CONFIRMED"); err != nil {
		t.Fatalf("UpdateAppointmentStatus returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
	if gotPath != "/appointments/a1/status" {
		t.Errorf("path = %q", gotPath)
	}
	if gotStatus != "CONFIRMED" {
		t.Errorf("status query = %q, want CONFIRMED", gotStatus)
	}
}

func TestClientDateRangeQuery(t *testing.T) {
	var gotStart, gotEnd string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStart, gotEnd = r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	start := domain.NewDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	end := domain.NewDate(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	if _, err := c.ListAppointmentsByDateRange(context.Background(), start, end); err != nil {
		t.Fatalf("ListAppointmentsByDateRange returned error: %v", err)
	}
	if gotStart != "2026-01-01" || gotEnd != "2026-01-31" {
		t.Errorf("query = %q..%q, want ISO dates", gotStart, gotEnd)
	}
}

func TestClientRegisterDecodesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var in ports.RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode register body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.AuthSession{
			Token:        "new-token",
			RefreshToken: "new-refresh",
			User:         &domain.User{ID: "u1", BusinessName: in.BusinessName},
			Message:      "User registered successfully",
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL, &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	session, err := c.Register(context.Background(), ports.RegisterInput{BusinessName: "Salon", Email: "s@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.Token != "new-token" || session.User == nil || session.User.BusinessName != "Salon" {
		t.Errorf("unexpected session %+v", session)
	}
}

func TestClientPublicEndpointsSkipAuth(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if strings.Contains(r.URL.Path, "confirm") || strings.Contains(r.URL.Path, "cancel") {
			w.Write([]byte("Appointment confirmed successfully"))
			return
		}
		json.NewEncoder(w).Encode(domain.BookingProfile{BusinessID: "b1", BusinessName: "Salon"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, &trackingTokens{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := c.ConfirmPublicAppointment(context.Background(), "tok-1"); err != nil {
		t.Fatalf("ConfirmPublicAppointment returned error: %v", err)
	}
	if err := c.CancelPublicAppointment(context.Background(), "tok-2"); err != nil {
		t.Fatalf("CancelPublicAppointment returned error: %v", err)
	}
	profile, err := c.GetBookingProfile(context.Background(), "b1")
	if err != nil {
		t.Fatalf("GetBookingProfile returned error: %v", err)
	}
	if profile.BusinessName != "Salon" {
		t.Errorf("unexpected profile %+v", profile)
	}
	want := []string{
		"POST /appointments/public/confirm/tok-1",
		"POST /appointments/public/cancel/tok-2",
		"GET /public/booking/b1",
	}
	for i, w := range want {
		if i >= len(paths) || paths[i] != w {
			t.Errorf("request %d = %v, want %q", i, paths, w)
		}
	}
}
