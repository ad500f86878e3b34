package stubserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

// handleBookingProfile serves the unauthenticated page payload: business
// identity plus its services and weekly availability in one response.
func (s *Server) handleBookingProfile(c echo.Context) error {
	var profile domain.BookingProfile
	ok := s.state.withAccount(c.Param("businessId"), func(acc *account) {
		profile = domain.BookingProfile{
			BusinessID:   acc.ID,
			BusinessName: acc.BusinessName,
			Phone:        acc.Phone,
			Services:     acc.sortedServices(),
			Availability: acc.sortedAvailability(),
		}
	})
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "business not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// handleCreatePublicAppointment books unauthenticated against the business
// named in the path.
func (s *Server) handleCreatePublicAppointment(c echo.Context) error {
	id := c.Param("businessId")
	if !s.state.exists(id) {
		return echo.NewHTTPError(http.StatusNotFound, "business not found")
	}
	return s.createAppointment(c, id)
}
