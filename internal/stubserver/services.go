package stubserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

type serviceRequest struct {
	Name            string  `json:"name"            validate:"required"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,min=1"`
	Price           float64 `json:"price"           validate:"required,gt=0"`
}

func (s *Server) handleListServices(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	var out []domain.Service
	s.state.withAccount(id, func(acc *account) {
		out = acc.sortedServices()
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetService(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	var svc domain.Service
	var found bool
	s.state.withAccount(id, func(acc *account) {
		svc, found = acc.Services[c.Param("id")]
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	return c.JSON(http.StatusOK, svc)
}

func (s *Server) handleCreateService(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now().UTC()
	svc := domain.Service{
		ID:              uuid.NewString(),
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		CreatedAt:       domain.Timestamp{Time: now},
		UpdatedAt:       domain.Timestamp{Time: now},
	}
	s.state.withAccount(id, func(acc *account) {
		acc.Services[svc.ID] = svc
	})
	return c.JSON(http.StatusCreated, svc)
}

func (s *Server) handleUpdateService(c echo.Context) error {
	accID, err := s.currentAccountID(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	var updated *domain.Service
	s.state.withAccount(accID, func(acc *account) {
		svc, ok := acc.Services[id]
		if !ok {
			return
		}
		svc.Name = req.Name
		svc.DurationMinutes = req.DurationMinutes
		svc.Price = req.Price
		svc.UpdatedAt = domain.Timestamp{Time: time.Now().UTC()}
		acc.Services[id] = svc
		updated = &svc
	})
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteService(c echo.Context) error {
	accID, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	found := false
	s.state.withAccount(accID, func(acc *account) {
		if _, ok := acc.Services[id]; ok {
			delete(acc.Services, id)
			found = true
		}
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	return c.NoContent(http.StatusNoContent)
}

type availabilityRequest struct {
	DayOfWeek *int         `json:"dayOfWeek" validate:"required,gte=0,lte=6"`
	StartTime domain.Clock `json:"startTime" validate:"required"`
	EndTime   domain.Clock `json:"endTime"   validate:"required"`
}

func (s *Server) handleListAvailability(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	var out []domain.AvailabilitySlot
	s.state.withAccount(id, func(acc *account) {
		out = acc.sortedAvailability()
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleAvailabilityByDay(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	day, err := strconv.Atoi(c.Param("dayOfWeek"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid day of week")
	}
	var slots []domain.AvailabilitySlot
	s.state.withAccount(id, func(acc *account) {
		slots = acc.sortedAvailability()
	})
	out := make([]domain.AvailabilitySlot, 0)
	for _, slot := range slots {
		if slot.DayOfWeek == day {
			out = append(out, slot)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateAvailability(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot := domain.AvailabilitySlot{
		ID:        uuid.NewString(),
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	s.state.withAccount(id, func(acc *account) {
		acc.Availability[slot.ID] = slot
	})
	return c.JSON(http.StatusCreated, slot)
}

func (s *Server) handleDeleteAvailability(c echo.Context) error {
	accID, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	found := false
	s.state.withAccount(accID, func(acc *account) {
		if _, ok := acc.Availability[id]; ok {
			delete(acc.Availability, id)
			found = true
		}
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "availability not found")
	}
	return c.NoContent(http.StatusNoContent)
}
