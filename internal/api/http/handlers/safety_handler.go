package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suraksha-setu/relief-service/internal/api/dto"
	"github.com/suraksha-setu/relief-service/internal/auth"
	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/service"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// SafetyHandler exposes safety check-in endpoints.
type SafetyHandler struct {
	service *service.SafetyService
}

// NewSafetyHandler constructs handler.
func NewSafetyHandler(safetyService *service.SafetyService) *SafetyHandler {
	return &SafetyHandler{service: safetyService}
}

// Create handles POST /api/safety.
func (h *SafetyHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.SafetyCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	check, err := h.service.Record(c.Context(), principal.User, service.SafetyCheckInput{
		Status:   domain.SafetyStatus(req.Status),
		Location: req.Location,
		Message:  req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSafetyCheckResponse(check)})
}

// History handles GET /api/safety/history. Returns the caller's own
// check-ins, newest-first.
func (h *SafetyHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	checks, err := h.service.History(c.Context(), principal.User)
	if err != nil {
		return err
	}

	items := make([]dto.SafetyCheckResponse, 0, len(checks))
	for i := range checks {
		items = append(items, dto.NewSafetyCheckResponse(&checks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
