package store

import (
	"context"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

// stubAPI implements ports.BookingAPI with overridable function fields.
// Methods without an override return zero values.
type stubAPI struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.AuthSession, error)
	loginFn         func(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error)
	getProfileFn    func(ctx context.Context) (*domain.User, error)
	updateProfileFn func(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error)

	listServicesFn  func(ctx context.Context) ([]domain.Service, error)
	createServiceFn func(ctx context.Context, in ports.ServiceInput) (*domain.Service, error)
	updateServiceFn func(ctx context.Context, id string, in ports.ServiceInput) (*domain.Service, error)
	deleteServiceFn func(ctx context.Context, id string) error

	listAvailabilityFn   func(ctx context.Context) ([]domain.AvailabilitySlot, error)
	createAvailabilityFn func(ctx context.Context, in ports.AvailabilityInput) (*domain.AvailabilitySlot, error)
	deleteAvailabilityFn func(ctx context.Context, id string) error

	listAppointmentsFn  func(ctx context.Context) ([]domain.Appointment, error)
	createAppointmentFn func(ctx context.Context, in domain.AppointmentRequest) (*domain.Appointment, error)
	updateStatusFn      func(ctx context.Context, id, status string) (*domain.Appointment, error)
	deleteAppointmentFn func(ctx context.Context, id string) error

	getAnalyticsFn func(ctx context.Context) (*domain.AnalyticsSnapshot, error)
}

var _ ports.BookingAPI = (*stubAPI)(nil)

func (s *stubAPI) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthSession, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, in)
	}
	return &domain.AuthSession{}, nil
}

func (s *stubAPI) Login(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, in)
	}
	return &domain.AuthSession{}, nil
}

func (s *stubAPI) GetProfile(ctx context.Context) (*domain.User, error) {
	if s.getProfileFn != nil {
		return s.getProfileFn(ctx)
	}
	return &domain.User{}, nil
}

func (s *stubAPI) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error) {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, in)
	}
	return &domain.User{}, nil
}

func (s *stubAPI) ListServices(ctx context.Context) ([]domain.Service, error) {
	if s.listServicesFn != nil {
		return s.listServicesFn(ctx)
	}
	return nil, nil
}

func (s *stubAPI) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return &domain.Service{ID: id}, nil
}

func (s *stubAPI) CreateService(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	if s.createServiceFn != nil {
		return s.createServiceFn(ctx, in)
	}
	return &domain.Service{}, nil
}

func (s *stubAPI) UpdateService(ctx context.Context, id string, in ports.ServiceInput) (*domain.Service, error) {
	if s.updateServiceFn != nil {
		return s.updateServiceFn(ctx, id, in)
	}
	return &domain.Service{ID: id}, nil
}

func (s *stubAPI) DeleteService(ctx context.Context, id string) error {
	if s.deleteServiceFn != nil {
		return s.deleteServiceFn(ctx, id)
	}
	return nil
}

func (s *stubAPI) ListAvailability(ctx context.Context) ([]domain.AvailabilitySlot, error) {
	if s.listAvailabilityFn != nil {
		return s.listAvailabilityFn(ctx)
	}
	return nil, nil
}

func (s *stubAPI) GetAvailabilityByDay(ctx context.Context, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	return nil, nil
}

func (s *stubAPI) CreateAvailability(ctx context.Context, in ports.AvailabilityInput) (*domain.AvailabilitySlot, error) {
	if s.createAvailabilityFn != nil {
		return s.createAvailabilityFn(ctx, in)
	}
	return &domain.AvailabilitySlot{}, nil
}

func (s *stubAPI) DeleteAvailability(ctx context.Context, id string) error {
	if s.deleteAvailabilityFn != nil {
		return s.deleteAvailabilityFn(ctx, id)
	}
	return nil
}

func (s *stubAPI) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	if s.listAppointmentsFn != nil {
		return s.listAppointmentsFn(ctx)
	}
	return nil, nil
}

func (s *stubAPI) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return &domain.Appointment{ID: id}, nil
}

func (s *stubAPI) ListAppointmentsByDateRange(ctx context.Context, startDate, endDate domain.Date) ([]domain.Appointment, error) {
	return nil, nil
}

func (s *stubAPI) CreateAppointment(ctx context.Context, in domain.AppointmentRequest) (*domain.Appointment, error) {
	if s.createAppointmentFn != nil {
		return s.createAppointmentFn(ctx, in)
	}
	return &domain.Appointment{}, nil
}

func (s *stubAPI) UpdateAppointmentStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return &domain.Appointment{ID: id}, nil
}

func (s *stubAPI) DeleteAppointment(ctx context.Context, id string) error {
	if s.deleteAppointmentFn != nil {
		return s.deleteAppointmentFn(ctx, id)
	}
	return nil
}

func (s *stubAPI) ConfirmPublicAppointment(ctx context.Context, token string) error { return nil }

func (s *stubAPI) CancelPublicAppointment(ctx context.Context, token string) error { return nil }

func (s *stubAPI) GetBookingProfile(ctx context.Context, businessID string) (*domain.BookingProfile, error) {
	return &domain.BookingProfile{BusinessID: businessID}, nil
}

func (s *stubAPI) CreatePublicAppointment(ctx context.Context, businessID string, in domain.AppointmentRequest) (*domain.Appointment, error) {
	return &domain.Appointment{}, nil
}

func (s *stubAPI) GetAnalytics(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	if s.getAnalyticsFn != nil {
		return s.getAnalyticsFn(ctx)
	}
	return &domain.AnalyticsSnapshot{}, nil
}

// memoryTokens is a minimal in-memory ports.TokenStorage for store tests.
type memoryTokens struct {
	creds domain.Credentials
}

func (m *memoryTokens) Load() (domain.Credentials, error) { return m.creds, nil }

func (m *memoryTokens) Store(creds domain.Credentials) error {
	m.creds = creds
	return nil
}

func (m *memoryTokens) Clear() error {
	m.creds = domain.Credentials{}
	return nil
}
