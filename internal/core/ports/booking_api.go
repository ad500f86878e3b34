package ports

import (
	"context"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

// RegisterInput carries the business identity and credential fields sent to
// the register endpoint.
type RegisterInput struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
}

// LoginInput carries the credential fields sent to the login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate mirrors RegisterInput minus the password requirement; the
// server ignores an empty password on update.
type ProfileUpdate struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password,omitempty"`
}

// ServiceInput carries the caller-supplied fields for create and update.
type ServiceInput struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AvailabilityInput carries the caller-supplied fields for a new slot.
type AvailabilityInput struct {
	DayOfWeek int          `json:"dayOfWeek"`
	StartTime domain.Clock `json:"startTime"`
	EndTime   domain.Clock `json:"endTime"`
}

// BookingAPI is the REST contract this layer assumes of the remote server.
// Every method performs exactly one request attempt; resilience, if wanted,
// belongs to the caller.
type BookingAPI interface {
	Register(ctx context.Context, in RegisterInput) (*domain.AuthSession, error)
	Login(ctx context.Context, in LoginInput) (*domain.AuthSession, error)
	GetProfile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (*domain.User, error)

	ListServices(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, in ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id string, in ServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error

	ListAvailability(ctx context.Context) ([]domain.AvailabilitySlot, error)
	GetAvailabilityByDay(ctx context.Context, dayOfWeek int) ([]domain.AvailabilitySlot, error)
	CreateAvailability(ctx context.Context, in AvailabilityInput) (*domain.AvailabilitySlot, error)
	DeleteAvailability(ctx context.Context, id string) error

	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*domain.Appointment, error)
	ListAppointmentsByDateRange(ctx context.Context, startDate, endDate domain.Date) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, in domain.AppointmentRequest) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id, status string) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	ConfirmPublicAppointment(ctx context.Context, token string) error
	CancelPublicAppointment(ctx context.Context, token string) error

	GetBookingProfile(ctx context.Context, businessID string) (*domain.BookingProfile, error)
	CreatePublicAppointment(ctx context.Context, businessID string, in domain.AppointmentRequest) (*domain.Appointment, error)

	GetAnalytics(ctx context.Context) (*domain.AnalyticsSnapshot, error)
}
