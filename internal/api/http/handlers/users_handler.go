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

// UsersHandler exposes registration, login, profile, and admin account
// endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserProfile(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserProfile(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// GetProfile handles GET /api/users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	user, err := h.auth.Profile(c.Context(), principal.User.ID.Hex())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}

// UpdateProfile handles PUT /api/users/profile. A fresh token is returned
// on every update.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("not authorized, no token")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	input := service.ProfileUpdateInput{
		Name:             req.Name,
		Email:            req.Email,
		Contact:          req.Contact,
		EmergencyContact: req.EmergencyContact,
		Password:         req.Password,
		IsAvailable:      req.IsAvailable,
		Skills:           req.Skills,
		Bio:              req.Bio,
	}
	user, token, exp, err := h.auth.UpdateProfile(c.Context(), principal.User.ID.Hex(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserProfile(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ListUsers handles GET /api/users (admin).
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.UserProfile, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserProfile(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateUserStatus handles PUT /api/users/:id/status (admin).
func (h *UsersHandler) UpdateUserStatus(c *fiber.Ctx) error {
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, err := h.auth.SetSuspension(c.Context(), c.Params("id"), *req.IsSuspended)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}
