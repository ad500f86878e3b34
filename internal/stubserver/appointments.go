package stubserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

type appointmentRequest struct {
	ServiceID       string       `json:"serviceId"       validate:"required"`
	CustomerName    string       `json:"customerName"    validate:"required"`
	CustomerPhone   string       `json:"customerPhone"   validate:"required"`
	AppointmentDate domain.Date  `json:"appointmentDate" validate:"required"`
	StartTime       domain.Clock `json:"startTime"       validate:"required"`
}

func (s *Server) handleListAppointments(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	var out []domain.Appointment
	s.state.withAccount(id, func(acc *account) {
		out = acc.sortedAppointments()
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetAppointment(c echo.Context) error {
	accID, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	var appt domain.Appointment
	var found bool
	s.state.withAccount(accID, func(acc *account) {
		appt, found = acc.Appointments[c.Param("id")]
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, appt)
}

func (s *Server) handleAppointmentsByDateRange(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	start, err := time.Parse("2006-01-02", c.QueryParam("startDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	end, err := time.Parse("2006-01-02", c.QueryParam("endDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	var appts []domain.Appointment
	s.state.withAccount(id, func(acc *account) {
		appts = acc.sortedAppointments()
	})
	out := make([]domain.Appointment, 0)
	for _, appt := range appts {
		day := appt.AppointmentDate.Time
		if !day.Before(start) && !day.After(end) {
			out = append(out, appt)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateAppointment(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	return s.createAppointment(c, id)
}

// createAppointment books against the given account. The slot is stored
// as-is: no conflict detection and no overlap checks here, that is the real
// backend's job.
func (s *Server) createAppointment(c echo.Context, accountID string) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// service lookup and insert in one critical section, so a concurrent
	// service delete cannot slip in between
	var appt domain.Appointment
	var svcFound bool
	s.state.withAccount(accountID, func(acc *account) {
		svc, ok := acc.Services[req.ServiceID]
		if !ok {
			return
		}
		svcFound = true
		now := time.Now().UTC()
		appt = domain.Appointment{
			ID:                uuid.NewString(),
			ServiceID:         svc.ID,
			CustomerName:      req.CustomerName,
			CustomerPhone:     req.CustomerPhone,
			AppointmentDate:   req.AppointmentDate,
			StartTime:         req.StartTime,
			EndTime:           domain.Clock{Time: req.StartTime.Time.Add(time.Duration(svc.DurationMinutes) * time.Minute)},
			Status:            domain.StatusPending,
			ConfirmationToken: uuid.NewString(),
			CreatedAt:         domain.Timestamp{Time: now},
			UpdatedAt:         domain.Timestamp{Time: now},
		}
		acc.Appointments[appt.ID] = appt
	})
	if !svcFound {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	s.state.registerConfirmationToken(appt.ConfirmationToken, accountID)
	return c.JSON(http.StatusCreated, appt)
}

func (s *Server) handleUpdateAppointmentStatus(c echo.Context) error {
	accID, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	status := c.QueryParam("status")
	if status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status query parameter is required")
	}

	id := c.Param("id")
	var updated *domain.Appointment
	s.state.withAccount(accID, func(acc *account) {
		appt, ok := acc.Appointments[id]
		if !ok {
			return
		}
		appt.Status = domain.AppointmentStatus(status)
		appt.UpdatedAt = domain.Timestamp{Time: time.Now().UTC()}
		acc.Appointments[id] = appt
		updated = &appt
	})
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteAppointment(c echo.Context) error {
	accID, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	found := false
	s.state.withAccount(accID, func(acc *account) {
		if _, ok := acc.Appointments[id]; ok {
			delete(acc.Appointments, id)
			found = true
		}
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Public confirm/cancel: token-in-path, no auth.

func (s *Server) handleConfirmAppointment(c echo.Context) error {
	return s.transitionByToken(c, domain.StatusConfirmed, "Appointment confirmed successfully")
}

func (s *Server) handleCancelAppointment(c echo.Context) error {
	return s.transitionByToken(c, domain.StatusCancelled, "Appointment cancelled successfully")
}

func (s *Server) transitionByToken(c echo.Context, status domain.AppointmentStatus, message string) error {
	token := c.Param("token")
	ownerID, ok := s.state.confirmationOwner(token)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "invalid confirmation token")
	}

	found := false
	s.state.withAccount(ownerID, func(acc *account) {
		for id, appt := range acc.Appointments {
			if appt.ConfirmationToken == token {
				appt.Status = status
				appt.UpdatedAt = domain.Timestamp{Time: time.Now().UTC()}
				acc.Appointments[id] = appt
				found = true
				return
			}
		}
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "invalid confirmation token")
	}
	return c.String(http.StatusOK, message)
}
