package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cookfarm/pantry-service/internal/api/dto"
	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/service"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

// CalendarHandler exposes expiry-date views.
type CalendarHandler struct {
	calendar *service.CalendarView
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(calendar *service.CalendarView) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// ByDate GET /calendar/date?date=YYYY-MM-DD.
func (h *CalendarHandler) ByDate(c *fiber.Ctx) error {
	raw := c.Query("date")
	if raw == "" {
		return apperrors.NewValidationError("date query parameter required", map[string]any{"date": "is required"})
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": raw})
	}
	items, err := h.calendar.IngredientsExpiringOn(c.UserContext(), date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientList(items)})
}

// Expired GET /calendar/expired.
func (h *CalendarHandler) Expired(c *fiber.Ctx) error {
	items, err := h.calendar.ExpiredIngredients(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientList(items)})
}

// Map GET /calendar/map.
func (h *CalendarHandler) Map(c *fiber.Ctx) error {
	grouped, err := h.calendar.CalendarMap(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCalendarMapResponse(grouped)})
}
