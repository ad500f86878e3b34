package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

// Operation identifiers for pending-state tracking. One entry per store
// action, so concurrent actions against different entity kinds cannot
// clobber each other's in-flight indicator.
const (
	OpFetchServices      = "services.fetch"
	OpCreateService      = "services.create"
	OpUpdateService      = "services.update"
	OpDeleteService      = "services.delete"
	OpFetchAvailability  = "availability.fetch"
	OpCreateAvailability = "availability.create"
	OpDeleteAvailability = "availability.delete"
	OpFetchAppointments  = "appointments.fetch"
	OpCreateAppointment  = "appointments.create"
	OpUpdateAppointment  = "appointments.update_status"
	OpDeleteAppointment  = "appointments.delete"
	OpFetchAnalytics     = "analytics.fetch"
)

// AppStore owns the in-memory caches of services, availability slots,
// appointments and the analytics snapshot, and the mutating operations that
// keep them synchronized with the server.
//
// Every cache follows the same policy: fetch-all replaces wholesale on
// success and leaves the previous contents untouched on failure; create
// appends the server-returned record; update replaces the matching element
// with the server's full returned object; delete removes by id. Id
// uniqueness is assumed, never enforced.
type AppStore struct {
	api ports.BookingAPI
	log zerolog.Logger

	mu           sync.RWMutex
	services     []domain.Service
	availability []domain.AvailabilitySlot
	appointments []domain.Appointment
	analytics    *domain.AnalyticsSnapshot
	pending      map[string]int
	lastErr      string
}

// NewAppStore builds a domain state store over the given gateway.
func NewAppStore(api ports.BookingAPI, log zerolog.Logger) *AppStore {
	return &AppStore{api: api, log: log, pending: make(map[string]int)}
}

// Pending reports whether at least one invocation of the given operation is
// in flight.
func (s *AppStore) Pending(op string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[op] > 0
}

// Busy reports whether any operation at all is in flight.
func (s *AppStore) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.pending {
		if n > 0 {
			return true
		}
	}
	return false
}

// Err returns the most recent failure message. It is cleared by the next
// operation that succeeds, not by one that merely starts, so a concurrent
// operation cannot wipe a recorded failure before the caller reads it.
func (s *AppStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *AppStore) begin(op string) {
	s.mu.Lock()
	s.pending[op]++
	s.mu.Unlock()
}

func (s *AppStore) end(op string) {
	s.mu.Lock()
	s.pending[op]--
	if s.pending[op] <= 0 {
		delete(s.pending, op)
	}
	s.mu.Unlock()
}

func (s *AppStore) fail(op string, err error, fallback string) error {
	msg := domain.ServerMessage(err, fallback)
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	s.log.Error().Err(err).Str("operation", op).Msg(fallback)
	return err
}

// --- Services ---

// Services returns a copy of the service cache.
func (s *AppStore) Services() []domain.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Service, len(s.services))
	copy(out, s.services)
	return out
}

// FetchServices replaces the service cache with the server's list. On
// failure the previous cache is left untouched and the error is both
// recorded and returned.
func (s *AppStore) FetchServices(ctx context.Context) error {
	s.begin(OpFetchServices)
	defer s.end(OpFetchServices)

	services, err := s.api.ListServices(ctx)
	if err != nil {
		return s.fail(OpFetchServices, err, "failed to fetch services")
	}
	s.mu.Lock()
	s.services = services
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// CreateService appends the server-returned record (with its server-assigned
// id) to the cache on success.
func (s *AppStore) CreateService(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	s.begin(OpCreateService)
	defer s.end(OpCreateService)

	created, err := s.api.CreateService(ctx, in)
	if err != nil {
		return nil, s.fail(OpCreateService, err, "failed to create service")
	}
	s.mu.Lock()
	s.services = append(s.services, *created)
	s.lastErr = ""
	s.mu.Unlock()
	return created, nil
}

// UpdateService replaces the matching cached element with the server's full
// returned object. A full overwrite, not a merge: fields defaulted
// server-side are reflected because the server returns the complete record.
func (s *AppStore) UpdateService(ctx context.Context, id string, in ports.ServiceInput) (*domain.Service, error) {
	s.begin(OpUpdateService)
	defer s.end(OpUpdateService)

	updated, err := s.api.UpdateService(ctx, id, in)
	if err != nil {
		return nil, s.fail(OpUpdateService, err, "failed to update service")
	}
	s.mu.Lock()
	for i := range s.services {
		if s.services[i].ID == id {
			s.services[i] = *updated
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return updated, nil
}

// DeleteService removes the matching cached element by id. An id absent
// from the cache removes nothing.
func (s *AppStore) DeleteService(ctx context.Context, id string) error {
	s.begin(OpDeleteService)
	defer s.end(OpDeleteService)

	if err := s.api.DeleteService(ctx, id); err != nil {
		return s.fail(OpDeleteService, err, "failed to delete service")
	}
	s.mu.Lock()
	s.services = removeService(s.services, id)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func removeService(list []domain.Service, id string) []domain.Service {
	out := list[:0]
	for _, svc := range list {
		if svc.ID != id {
			out = append(out, svc)
		}
	}
	return out
}

// --- Availability ---

// Availability returns a copy of the availability cache.
func (s *AppStore) Availability() []domain.AvailabilitySlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AvailabilitySlot, len(s.availability))
	copy(out, s.availability)
	return out
}

// FetchAvailability replaces the availability cache with the server's list.
func (s *AppStore) FetchAvailability(ctx context.Context) error {
	s.begin(OpFetchAvailability)
	defer s.end(OpFetchAvailability)

	slots, err := s.api.ListAvailability(ctx)
	if err != nil {
		return s.fail(OpFetchAvailability, err, "failed to fetch availability")
	}
	s.mu.Lock()
	s.availability = slots
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// CreateAvailability appends the server-returned slot to the cache.
func (s *AppStore) CreateAvailability(ctx context.Context, in ports.AvailabilityInput) (*domain.AvailabilitySlot, error) {
	s.begin(OpCreateAvailability)
	defer s.end(OpCreateAvailability)

	created, err := s.api.CreateAvailability(ctx, in)
	if err != nil {
		return nil, s.fail(OpCreateAvailability, err, "failed to create availability")
	}
	s.mu.Lock()
	s.availability = append(s.availability, *created)
	s.lastErr = ""
	s.mu.Unlock()
	return created, nil
}

// DeleteAvailability removes the matching cached slot by id.
func (s *AppStore) DeleteAvailability(ctx context.Context, id string) error {
	s.begin(OpDeleteAvailability)
	defer s.end(OpDeleteAvailability)

	if err := s.api.DeleteAvailability(ctx, id); err != nil {
		return s.fail(OpDeleteAvailability, err, "failed to delete availability")
	}
	s.mu.Lock()
	out := s.availability[:0]
	for _, slot := range s.availability {
		if slot.ID != id {
			out = append(out, slot)
		}
	}
	s.availability = out
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// --- Appointments ---

// Appointments returns a copy of the appointment cache.
func (s *AppStore) Appointments() []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// FetchAppointments replaces the appointment cache with the server's list.
func (s *AppStore) FetchAppointments(ctx context.Context) error {
	s.begin(OpFetchAppointments)
	defer s.end(OpFetchAppointments)

	appts, err := s.api.ListAppointments(ctx)
	if err != nil {
		return s.fail(OpFetchAppointments, err, "failed to fetch appointments")
	}
	s.mu.Lock()
	s.appointments = appts
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// CreateAppointment appends the server-returned appointment to the cache.
func (s *AppStore) CreateAppointment(ctx context.Context, in domain.AppointmentRequest) (*domain.Appointment, error) {
	s.begin(OpCreateAppointment)
	defer s.end(OpCreateAppointment)

	created, err := s.api.CreateAppointment(ctx, in)
	if err != nil {
		return nil, s.fail(OpCreateAppointment, err, "failed to create appointment")
	}
	s.mu.Lock()
	s.appointments = append(s.appointments, *created)
	s.lastErr = ""
	s.mu.Unlock()
	return created, nil
}

// UpdateAppointmentStatus requests the transition server-side and patches
// only the status field of the matching cached element with the REQUESTED
// value, without reconciling against the server's response body. If the
// server normalizes or rejects the value after accepting the request, the
// cache disagrees with server truth until the next full fetch; callers
// wanting the authoritative record should refetch.
func (s *AppStore) UpdateAppointmentStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	s.begin(OpUpdateAppointment)
	defer s.end(OpUpdateAppointment)

	if _, err := s.api.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return nil, s.fail(OpUpdateAppointment, err, "failed to update appointment")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i].Status = domain.AppointmentStatus(status)
			patched := s.appointments[i]
			return &patched, nil
		}
	}
	return nil, nil
}

// DeleteAppointment removes the matching cached appointment by id.
func (s *AppStore) DeleteAppointment(ctx context.Context, id string) error {
	s.begin(OpDeleteAppointment)
	defer s.end(OpDeleteAppointment)

	if err := s.api.DeleteAppointment(ctx, id); err != nil {
		return s.fail(OpDeleteAppointment, err, "failed to delete appointment")
	}
	s.mu.Lock()
	out := s.appointments[:0]
	for _, appt := range s.appointments {
		if appt.ID != id {
			out = append(out, appt)
		}
	}
	s.appointments = out
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// --- Analytics ---

// Analytics returns a copy of the last fetched snapshot, or nil before the
// first successful fetch. The snapshot is read-only: one fetch action,
// wholesale replace, no mutation.
func (s *AppStore) Analytics() *domain.AnalyticsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analytics == nil {
		return nil
	}
	snap := *s.analytics
	return &snap
}

// FetchAnalytics replaces the analytics snapshot wholesale.
func (s *AppStore) FetchAnalytics(ctx context.Context) error {
	s.begin(OpFetchAnalytics)
	defer s.end(OpFetchAnalytics)

	snapshot, err := s.api.GetAnalytics(ctx)
	if err != nil {
		return s.fail(OpFetchAnalytics, err, "failed to fetch analytics")
	}
	s.mu.Lock()
	s.analytics = snapshot
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}
