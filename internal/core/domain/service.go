package domain

// Service is a bookable offering with a duration and a price.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	CreatedAt       Timestamp `json:"createdAt,omitempty"`
	UpdatedAt       Timestamp `json:"updatedAt,omitempty"`
}

// AvailabilitySlot is a recurring weekly working-hours window.
// DayOfWeek runs 0 (Sunday) through 6. Overlap between slots is not
// validated here; that is the server's call.
type AvailabilitySlot struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime Clock  `json:"startTime"`
	EndTime   Clock  `json:"endTime"`
}
