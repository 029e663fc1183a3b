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

// BroadcastsHandler exposes announcement endpoints.
type BroadcastsHandler struct {
	service *service.BroadcastService
}

// NewBroadcastsHandler constructs handler.
func NewBroadcastsHandler(broadcastService *service.BroadcastService) *BroadcastsHandler {
	return &BroadcastsHandler{service: broadcastService}
}

// Create handles POST /api/broadcasts (admin).
func (h *BroadcastsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.CreateBroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	broadcast, err := h.service.Create(c.Context(), principal.User, req.Message, domain.Audience(req.TargetAudience))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBroadcastResponse(broadcast, nil)})
}

// List handles GET /api/broadcasts. Visibility is filtered by the caller's
// role.
func (h *BroadcastsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	views, err := h.service.ListForRole(c.Context(), principal.User.Role)
	if err != nil {
		return err
	}

	items := make([]dto.BroadcastResponse, 0, len(views))
	for i := range views {
		var sender *dto.UserRef
		if views[i].Sender != nil {
			sender = &dto.UserRef{ID: views[i].Sender.ID, Name: views[i].Sender.Name}
		}
		items = append(items, dto.NewBroadcastResponse(&views[i].Broadcast, sender))
	}
	return c.JSON(fiber.Map{"data": items})
}
