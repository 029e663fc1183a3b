package dto

import (
	"time"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest payload for self-service profile changes. Omitted
// fields keep their stored values.
type UpdateProfileRequest struct {
	Name             string   `json:"name"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Contact          string   `json:"contact"`
	EmergencyContact string   `json:"emergencyContact"`
	Password         string   `json:"password" validate:"omitempty,min=6"`
	IsAvailable      *bool    `json:"isAvailable"`
	Skills           []string `json:"skills"`
	Bio              string   `json:"bio"`
}

// UpdateUserStatusRequest payload for admin suspension toggles.
type UpdateUserStatusRequest struct {
	IsSuspended *bool `json:"isSuspended" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SafetyStatusResponse is the embedded current-status snapshot.
type SafetyStatusResponse struct {
	Status    domain.SafetyStatus `json:"status"`
	Timestamp *time.Time          `json:"timestamp,omitempty"`
}

// UserProfile is the password-free account projection.
type UserProfile struct {
	ID               string               `json:"_id"`
	Name             string               `json:"name"`
	Email            string               `json:"email"`
	Role             domain.Role          `json:"role"`
	IsAvailable      bool                 `json:"isAvailable"`
	Skills           []string             `json:"skills"`
	IsSuspended      bool                 `json:"isSuspended"`
	SafetyStatus     SafetyStatusResponse `json:"safetyStatus"`
	Contact          string               `json:"contact,omitempty"`
	EmergencyContact string               `json:"emergencyContact,omitempty"`
	Bio              string               `json:"bio,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// NewUserProfile projects a domain user.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		IsAvailable: user.IsAvailable,
		Skills:      user.Skills,
		IsSuspended: user.IsSuspended,
		SafetyStatus: SafetyStatusResponse{
			Status:    user.SafetyStatus.Status,
			Timestamp: user.SafetyStatus.Timestamp,
		},
		Contact:          user.Contact,
		EmergencyContact: user.EmergencyContact,
		Bio:              user.Bio,
		CreatedAt:        user.CreatedAt,
	}
}

// UserRef is the inline projection for populated references.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
