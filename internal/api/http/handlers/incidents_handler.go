package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/suraksha-setu/relief-service/internal/api/dto"
	"github.com/suraksha-setu/relief-service/internal/auth"
	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/service"
	"github.com/suraksha-setu/relief-service/internal/storage"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// IncidentsHandler exposes incident endpoints.
type IncidentsHandler struct {
	service *service.IncidentService
	images  *storage.DiskStore
}

// NewIncidentsHandler constructs handler.
func NewIncidentsHandler(incidentService *service.IncidentService, images *storage.DiskStore) *IncidentsHandler {
	return &IncidentsHandler{service: incidentService, images: images}
}

// Create handles POST /api/incidents. Accepts a JSON body, or a multipart
// form with an optional image file and the location as a JSON-encoded
// string value.
func (h *IncidentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	req, imagePath, err := h.parseCreateRequest(c)
	if err != nil {
		return err
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	input := service.IncidentCreateInput{
		Type:        domain.IncidentType(req.Type),
		Description: req.Description,
		Location:    req.Location,
		Urgency:     req.Urgency,
		ImagePath:   imagePath,
	}
	incident, err := h.service.Report(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewIncidentResponse(incident, nil, nil)})
}

// List handles GET /api/incidents.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incidentResponses(views)})
}

// UpdateStatus handles PUT /api/incidents/:id/status (admin).
func (h *IncidentsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.UpdateIncidentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	incident, err := h.service.UpdateStatus(c.Context(), principal.User, c.Params("id"), domain.IncidentStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident, nil, nil)})
}

// Assign handles PUT /api/incidents/:id/assign. Admins may assign anyone;
// volunteers only themselves.
func (h *IncidentsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.AssignIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	view, err := h.service.Assign(c.Context(), principal.User, c.Params("id"), req.VolunteerID)
	if err != nil {
		return err
	}
	resp := dto.NewIncidentResponse(&view.Incident, userRef(view.Reporter), userRef(view.Assignee))
	return c.JSON(fiber.Map{"data": resp})
}

func (h *IncidentsHandler) parseCreateRequest(c *fiber.Ctx) (dto.CreateIncidentRequest, string, error) {
	var req dto.CreateIncidentRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Type = c.FormValue("type")
		req.Description = c.FormValue("description")
		req.Urgency = c.FormValue("urgency")
		if location := c.FormValue("location"); location != "" {
			req.Location = json.RawMessage(location)
		}

		imagePath := ""
		if file, err := c.FormFile("image"); err == nil && file != nil {
			saved, err := h.images.SaveImage(file)
			if err != nil {
				return req, "", apperrors.MapError(err)
			}
			imagePath = saved
		}
		return req, imagePath, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return req, "", apperrors.NewValidationError("invalid payload", nil)
	}
	return req, "", nil
}

func incidentResponses(views []service.IncidentView) []dto.IncidentResponse {
	items := make([]dto.IncidentResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.NewIncidentResponse(&views[i].Incident, userRef(views[i].Reporter), userRef(views[i].Assignee)))
	}
	return items
}

func userRef(ref *service.UserRef) *dto.UserRef {
	if ref == nil {
		return nil
	}
	return &dto.UserRef{ID: ref.ID, Name: ref.Name, Email: ref.Email}
}
