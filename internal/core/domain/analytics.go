package domain

// AnalyticsSnapshot is a read-only aggregate computed server-side and
// replaced wholesale on every fetch. Rates are percentages in [0, 100].
type AnalyticsSnapshot struct {
	TotalAppointments     int64 `json:"totalAppointments"`
	ConfirmedAppointments int64 `json:"confirmedAppointments"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
	NoShowAppointments    int64 `json:"noShowAppointments"`
	PendingAppointments   int64 `json:"pendingAppointments"`

	NoShowRate       float64 `json:"noShowRate"`
	ConfirmationRate float64 `json:"confirmationRate"`
	CancellationRate float64 `json:"cancellationRate"`

	TotalRevenue float64 `json:"totalRevenue"`
	RevenueLost  float64 `json:"revenueLost"`
	RevenueSaved float64 `json:"revenueSaved"`
}

// BookingProfile is the public, unauthenticated view of a business used by
// the customer-facing booking page.
type BookingProfile struct {
	BusinessID   string             `json:"businessId"`
	BusinessName string             `json:"businessName"`
	Phone        string             `json:"phone"`
	Services     []Service          `json:"services"`
	Availability []AvailabilitySlot `json:"availability"`
}
