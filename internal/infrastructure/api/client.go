// Package api implements the HTTP gateway every network call goes through.
// It decorates outgoing requests with the stored bearer credential and
// centralizes 401 handling: any unauthorized response tears down the
// stored session before the error reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
	"github.com/mawa3id/booking-client/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client provides typed access to the booking API. It performs exactly one
// attempt per call: no retry, no backoff. Callers wanting resilience layer
// it on top.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokens           ports.TokenStorage
	onSessionExpired ports.SessionExpiredHandler
	log              zerolog.Logger
}

// compile-time contract check
var _ ports.BookingAPI = (*Client)(nil)

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithSessionExpiredHandler registers the callback invoked after a 401
// response has cleared the stored credentials.
func WithSessionExpiredHandler(h ports.SessionExpiredHandler) Option {
	return func(c *Client) { c.onSessionExpired = h }
}

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New constructs a Client pointing at the given API base URL, persisting
// and reading credentials through tokens.
func New(base string, tokens ports.TokenStorage, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if tokens == nil {
		return nil, fmt.Errorf("api: token storage is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do executes a single request. The bearer credential is attached when the
// token store holds one; a 401 response clears both stored tokens and fires
// the session-expired handler before returning.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds, err := c.tokens.Load(); err == nil && !creds.IsAnonymous() {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(op, "transport_error").Inc()
		c.log.Error().Err(err).Str("operation", op).Str("path", path).Msg("request failed")
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	metrics.RequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		// Unconditional teardown, even for requests unrelated to session
		// validity. Must complete before the caller sees the error.
		c.teardownSession(op)
		return &domain.APIError{Status: resp.StatusCode, Message: extractMessage(resp.Body)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &domain.APIError{Status: resp.StatusCode, Message: extractMessage(resp.Body)}
		c.log.Debug().Str("operation", op).Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("request rejected")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) teardownSession(op string) {
	if err := c.tokens.Clear(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credentials after 401")
	}
	metrics.SessionTeardownsTotal.Inc()
	c.log.Warn().Str("operation", op).Msg("unauthorized response, session torn down")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// extractMessage pulls the server's human-readable message out of an error
// body. The backend uses a "message" field; "error" and the raw body are
// fallbacks for other envelopes.
func extractMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthSession, error) {
	var session domain.AuthSession
	if err := c.do(ctx, "register", http.MethodPost, "/register", nil, in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Login(ctx context.Context, in ports.LoginInput) (*domain.AuthSession, error) {
	var session domain.AuthSession
	if err := c.do(ctx, "login", http.MethodPost, "/login", nil, in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "get_profile", http.MethodGet, "/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "update_profile", http.MethodPut, "/profile", nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Services ---

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.do(ctx, "list_services", http.MethodGet, "/services", nil, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) GetService(ctx context.Context, id string) (*domain.Service, error) {
	var service domain.Service
	if err := c.do(ctx, "get_service", http.MethodGet, "/services/"+url.PathEscape(id), nil, nil, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *Client) CreateService(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	var service domain.Service
	if err := c.do(ctx, "create_service", http.MethodPost, "/services", nil, in, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *Client) UpdateService(ctx context.Context, id string, in ports.ServiceInput) (*domain.Service, error) {
	var service domain.Service
	if err := c.do(ctx, "update_service", http.MethodPut, "/services/"+url.PathEscape(id), nil, in, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.do(ctx, "delete_service", http.MethodDelete, "/services/"+url.PathEscape(id), nil, nil, nil)
}

// --- Availability ---

func (c *Client) ListAvailability(ctx context.Context) ([]domain.AvailabilitySlot, error) {
	var slots []domain.AvailabilitySlot
	if err := c.do(ctx, "list_availability", http.MethodGet, "/availability", nil, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) GetAvailabilityByDay(ctx context.Context, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	var slots []domain.AvailabilitySlot
	path := "/availability/" + strconv.Itoa(dayOfWeek)
	if err := c.do(ctx, "get_availability_by_day", http.MethodGet, path, nil, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) CreateAvailability(ctx context.Context, in ports.AvailabilityInput) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	if err := c.do(ctx, "create_availability", http.MethodPost, "/availability", nil, in, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *Client) DeleteAvailability(ctx context.Context, id string) error {
	return c.do(ctx, "delete_availability", http.MethodDelete, "/availability/"+url.PathEscape(id), nil, nil, nil)
}

// --- Appointments ---

func (c *Client) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var appts []domain.Appointment
	if err := c.do(ctx, "list_appointments", http.MethodGet, "/appointments", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (c *Client) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := c.do(ctx, "get_appointment", http.MethodGet, "/appointments/"+url.PathEscape(id), nil, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) ListAppointmentsByDateRange(ctx context.Context, startDate, endDate domain.Date) ([]domain.Appointment, error) {
	query := url.Values{}
	query.Set("startDate", startDate.String())
	query.Set("endDate", endDate.String())
	var appts []domain.Appointment
	if err := c.do(ctx, "list_appointments_by_date_range", http.MethodGet, "/appointments/date-range", query, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (c *Client) CreateAppointment(ctx context.Context, in domain.AppointmentRequest) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := c.do(ctx, "create_appointment", http.MethodPost, "/appointments", nil, in, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateAppointmentStatus sends the status as a query parameter, not a body;
// that is the server's contract. The status string is passed through without
// client-side validation.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	query := url.Values{}
	query.Set("status", status)
	var appt domain.Appointment
	path := "/appointments/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, "update_appointment_status", http.MethodPut, path, query, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, "delete_appointment", http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ConfirmPublicAppointment(ctx context.Context, token string) error {
	path := "/appointments/public/confirm/" + url.PathEscape(token)
	return c.do(ctx, "confirm_public_appointment", http.MethodPost, path, nil, nil, nil)
}

func (c *Client) CancelPublicAppointment(ctx context.Context, token string) error {
	path := "/appointments/public/cancel/" + url.PathEscape(token)
	return c.do(ctx, "cancel_public_appointment", http.MethodPost, path, nil, nil, nil)
}

// --- Public booking ---

func (c *Client) GetBookingProfile(ctx context.Context, businessID string) (*domain.BookingProfile, error) {
	var profile domain.BookingProfile
	path := "/public/booking/" + url.PathEscape(businessID)
	if err := c.do(ctx, "get_booking_profile", http.MethodGet, path, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreatePublicAppointment(ctx context.Context, businessID string, in domain.AppointmentRequest) (*domain.Appointment, error) {
	var appt domain.Appointment
	path := "/public/booking/" + url.PathEscape(businessID) + "/appointments"
	if err := c.do(ctx, "create_public_appointment", http.MethodPost, path, nil, in, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// --- Analytics ---

func (c *Client) GetAnalytics(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	var snapshot domain.AnalyticsSnapshot
	if err := c.do(ctx, "get_analytics", http.MethodGet, "/analytics", nil, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
