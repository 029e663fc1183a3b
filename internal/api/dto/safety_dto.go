package dto

import (
	"encoding/json"
	"time"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// SafetyCheckRequest payload for check-ins.
type SafetyCheckRequest struct {
	Status   string          `json:"status" validate:"required"`
	Location json.RawMessage `json:"location" validate:"required"`
	Message  string          `json:"message"`
}

// SafetyCheckResponse is the wire shape for check-in records.
type SafetyCheckResponse struct {
	ID        string              `json:"_id"`
	User      string              `json:"user"`
	Status    domain.SafetyStatus `json:"status"`
	Location  domain.GeoPoint     `json:"location"`
	Message   string              `json:"message,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// NewSafetyCheckResponse projects a check-in record.
func NewSafetyCheckResponse(check *domain.SafetyCheck) SafetyCheckResponse {
	return SafetyCheckResponse{
		ID:        check.ID.Hex(),
		User:      check.User.Hex(),
		Status:    check.Status,
		Location:  check.Location,
		Message:   check.Message,
		CreatedAt: check.CreatedAt,
	}
}

// UpdateAvailabilityRequest payload for volunteer availability flips.
type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// VolunteerSummaryResponse is the available-roster projection.
type VolunteerSummaryResponse struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
}
