// Package stubserver is a development stand-in for the booking API. It
// implements the wire contract the client layer assumes — register/login,
// profile, services, availability, appointments, public booking, analytics
// — over in-memory state, so integration tests and local front-end work
// need no real backend. Booking business rules (conflict detection, overlap
// validation, reminders) are deliberately absent.
package stubserver

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

type account struct {
	ID           string
	BusinessName string
	Email        string
	Phone        string
	PasswordHash []byte
	CreatedAt    time.Time

	Services     map[string]domain.Service
	Availability map[string]domain.AvailabilitySlot
	Appointments map[string]domain.Appointment
}

// state is the whole in-memory world, guarded by one mutex. Throughput is
// irrelevant for a dev stub. Account pointers never leave the lock: every
// read or write of an account's maps goes through withAccount, and the
// other accessors hand out value copies only.
type state struct {
	mu      sync.Mutex
	byID    map[string]*account
	byEmail map[string]*account
	byToken map[string]string // confirmation token -> owning account id
}

func newState() *state {
	return &state{
		byID:    make(map[string]*account),
		byEmail: make(map[string]*account),
		byToken: make(map[string]string),
	}
}

// createAccount registers a new business and returns its profile snapshot,
// or false when the email is taken.
func (s *state) createAccount(businessName, email, phone string, passwordHash []byte) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return nil, false
	}
	acc := &account{
		ID:           uuid.NewString(),
		BusinessName: businessName,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		Services:     make(map[string]domain.Service),
		Availability: make(map[string]domain.AvailabilitySlot),
		Appointments: make(map[string]domain.Appointment),
	}
	s.byID[acc.ID] = acc
	s.byEmail[email] = acc
	return acc.user(), true
}

// credentialsByEmail returns the account id and password hash for the login
// check. The hash slice is replaced wholesale on password change, never
// mutated in place, so comparing it outside the lock is safe.
func (s *state) credentialsByEmail(email string) (string, []byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byEmail[email]
	if !ok {
		return "", nil, false
	}
	return acc.ID, acc.PasswordHash, true
}

func (s *state) exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	return ok
}

// withAccount runs fn while holding the state lock. Reads and writes both
// go through here: fn must copy out whatever it needs and must not let the
// account pointer escape.
func (s *state) withAccount(id string, fn func(acc *account)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byID[id]
	if !ok {
		return false
	}
	fn(acc)
	return true
}

func (s *state) registerConfirmationToken(token, accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = accountID
}

func (s *state) confirmationOwner(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byToken[token]
	return id, ok
}

// The account methods below touch its maps and must only be called with
// state.mu held (inside createAccount or a withAccount closure). They
// return value copies, safe to use after the lock is released.

func (acc *account) user() *domain.User {
	return &domain.User{
		ID:           acc.ID,
		BusinessName: acc.BusinessName,
		Email:        acc.Email,
		Phone:        acc.Phone,
		CreatedAt:    domain.Timestamp{Time: acc.CreatedAt},
	}
}

// sortedServices returns the account's services in insertion-ish stable
// order (by creation time then id) so list responses are deterministic.
func (acc *account) sortedServices() []domain.Service {
	out := make([]domain.Service, 0, len(acc.Services))
	for _, svc := range acc.Services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Time.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (acc *account) sortedAvailability() []domain.AvailabilitySlot {
	out := make([]domain.AvailabilitySlot, 0, len(acc.Availability))
	for _, slot := range acc.Availability {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime.Time.Before(out[j].StartTime.Time)
	})
	return out
}

func (acc *account) sortedAppointments() []domain.Appointment {
	out := make([]domain.Appointment, 0, len(acc.Appointments))
	for _, appt := range acc.Appointments {
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Time.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
