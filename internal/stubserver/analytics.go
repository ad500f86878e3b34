package stubserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

// assumed industry-standard reduction in no-shows from reminders
const noShowReduction = 0.20

// handleAnalytics recomputes the snapshot from stored appointments on every
// request. Rates are percentages; revenue figures are sums of the booked
// service's price per status bucket.
func (s *Server) handleAnalytics(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}

	var snap domain.AnalyticsSnapshot
	var allPrices float64
	s.state.withAccount(id, func(acc *account) {
		for _, appt := range acc.Appointments {
			snap.TotalAppointments++
			price := acc.Services[appt.ServiceID].Price
			allPrices += price
			switch appt.Status {
			case domain.StatusConfirmed:
				snap.ConfirmedAppointments++
				snap.TotalRevenue += price
			case domain.StatusCancelled:
				snap.CancelledAppointments++
			case domain.StatusNoShow:
				snap.NoShowAppointments++
				snap.RevenueLost += price
			case domain.StatusPending:
				snap.PendingAppointments++
			}
		}
	})

	if snap.TotalAppointments > 0 {
		total := float64(snap.TotalAppointments)
		snap.NoShowRate = float64(snap.NoShowAppointments) / total * 100
		snap.ConfirmationRate = float64(snap.ConfirmedAppointments) / total * 100
		snap.CancellationRate = float64(snap.CancelledAppointments) / total * 100
		snap.RevenueSaved = allPrices * noShowReduction * (snap.NoShowRate / 100)
	}
	return c.JSON(http.StatusOK, snap)
}
