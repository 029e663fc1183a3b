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

// ResourcesHandler exposes relief-supply endpoints.
type ResourcesHandler struct {
	service *service.ResourceService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(resourceService *service.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{service: resourceService}
}

// Create handles POST /api/resources (admin).
func (h *ResourcesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	input := service.ResourceCreateInput{
		Name:     req.Name,
		Category: domain.ResourceCategory(req.Category),
		Quantity: req.Quantity,
		Location: req.Location,
	}
	resource, err := h.service.Create(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewResourceResponse(resource, nil)})
}

// List handles GET /api/resources.
func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.ResourceResponse, 0, len(views))
	for i := range views {
		var manager *dto.UserRef
		if views[i].Manager != nil {
			// manager reference resolves to name only
			manager = &dto.UserRef{ID: views[i].Manager.ID, Name: views[i].Manager.Name}
		}
		items = append(items, dto.NewResourceResponse(&views[i].Resource, manager))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PUT /api/resources/:id (admin).
func (h *ResourcesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	resource, err := h.service.UpdateQuantity(c.Context(), principal.User, c.Params("id"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponse(resource, nil)})
}
