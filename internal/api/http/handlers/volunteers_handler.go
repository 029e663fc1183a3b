package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suraksha-setu/relief-service/internal/api/dto"
	"github.com/suraksha-setu/relief-service/internal/auth"
	"github.com/suraksha-setu/relief-service/internal/service"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// VolunteersHandler exposes volunteer self-service and roster endpoints.
type VolunteersHandler struct {
	volunteers *service.VolunteerService
	incidents  *service.IncidentService
}

// NewVolunteersHandler constructs handler.
func NewVolunteersHandler(volunteerService *service.VolunteerService, incidentService *service.IncidentService) *VolunteersHandler {
	return &VolunteersHandler{volunteers: volunteerService, incidents: incidentService}
}

// MyIncidents handles GET /api/volunteers/my-incidents (volunteer).
func (h *VolunteersHandler) MyIncidents(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	views, err := h.incidents.ListAssignedTo(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incidentResponses(views)})
}

// UpdateAvailability handles PUT /api/volunteers/availability (volunteer).
func (h *VolunteersHandler) UpdateAvailability(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.UpdateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	volunteer, err := h.volunteers.UpdateAvailability(c.Context(), principal.User.ID.Hex(), *req.IsAvailable)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(volunteer)})
}

// Available handles GET /api/volunteers/available.
func (h *VolunteersHandler) Available(c *fiber.Ctx) error {
	summaries, err := h.volunteers.AvailableVolunteers(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.VolunteerSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.VolunteerSummaryResponse{
			ID:     s.ID,
			Name:   s.Name,
			Email:  s.Email,
			Skills: s.Skills,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
