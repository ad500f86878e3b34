package domain

// AppointmentStatus is the lifecycle state of an appointment as reported by
// the server. The client never validates transitions: whatever status string
// a caller requests is sent as-is and the server has the final word.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

// Appointment is a customer booking against a service.
type Appointment struct {
	ID                string            `json:"id"`
	ServiceID         string            `json:"serviceId"`
	CustomerName      string            `json:"customerName"`
	CustomerPhone     string            `json:"customerPhone"`
	AppointmentDate   Date              `json:"appointmentDate"`
	StartTime         Clock             `json:"startTime"`
	EndTime           Clock             `json:"endTime,omitempty"`
	Status            AppointmentStatus `json:"status"`
	ConfirmationToken string            `json:"confirmationToken,omitempty"`
	CreatedAt         Timestamp         `json:"createdAt,omitempty"`
	UpdatedAt         Timestamp         `json:"updatedAt,omitempty"`
}

// AppointmentRequest carries the fields a caller supplies when booking.
// EndTime, status and the confirmation token are assigned server-side.
type AppointmentRequest struct {
	ServiceID       string `json:"serviceId"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	AppointmentDate Date   `json:"appointmentDate"`
	StartTime       Clock  `json:"startTime"`
}
