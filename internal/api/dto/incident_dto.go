package dto

import (
	"encoding/json"
	"time"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// CreateIncidentRequest payload for incident reports. Location may be a
// GeoJSON object or a JSON-encoded string of one (multipart forms).
type CreateIncidentRequest struct {
	Type        string          `json:"type" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Location    json.RawMessage `json:"location" validate:"required"`
	Urgency     string          `json:"urgency"`
}

// UpdateIncidentStatusRequest payload for admin status changes.
type UpdateIncidentStatusRequest struct {
	Status string `json:"status"`
}

// AssignIncidentRequest payload for volunteer assignment.
type AssignIncidentRequest struct {
	VolunteerID string `json:"volunteerId" validate:"required"`
}

// IncidentResponse is the wire shape for incidents.
type IncidentResponse struct {
	ID          string                `json:"_id"`
	Type        domain.IncidentType   `json:"type"`
	Description string                `json:"description"`
	Location    domain.GeoPoint       `json:"location"`
	Urgency     domain.Urgency        `json:"urgency"`
	Status      domain.IncidentStatus `json:"status"`
	ReportedBy  *UserRef              `json:"reportedBy"`
	AssignedTo  *UserRef              `json:"assignedTo"`
	Image       string                `json:"image,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// NewIncidentResponse projects an incident. When a reference was not
// populated, the bare id is still exposed.
func NewIncidentResponse(incident *domain.Incident, reporter, assignee *UserRef) IncidentResponse {
	if reporter == nil {
		reporter = &UserRef{ID: incident.ReportedBy.Hex()}
	}
	if assignee == nil && incident.AssignedTo != nil {
		assignee = &UserRef{ID: incident.AssignedTo.Hex()}
	}
	return IncidentResponse{
		ID:          incident.ID.Hex(),
		Type:        incident.Type,
		Description: incident.Description,
		Location:    incident.Location,
		Urgency:     incident.Urgency,
		Status:      incident.Status,
		ReportedBy:  reporter,
		AssignedTo:  assignee,
		Image:       incident.Image,
		CreatedAt:   incident.CreatedAt,
		UpdatedAt:   incident.UpdatedAt,
	}
}
