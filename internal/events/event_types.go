package events

import (
	"time"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentReported      EventType = "incident_reported"
	EventIncidentStatusChanged EventType = "incident_status_changed"
	EventIncidentAssigned      EventType = "incident_assigned"
	EventBroadcastSent         EventType = "broadcast_sent"
	EventSafetyCheckRecorded   EventType = "safety_check_recorded"
	EventResourceUpdated       EventType = "resource_updated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IncidentReportedPayload payload.
type IncidentReportedPayload struct {
	IncidentType domain.IncidentType `json:"incident_type"`
	Urgency      domain.Urgency      `json:"urgency"`
	HasImage     bool                `json:"has_image"`
}

// IncidentStatusChangedPayload payload.
type IncidentStatusChangedPayload struct {
	OldStatus domain.IncidentStatus `json:"old_status"`
	NewStatus domain.IncidentStatus `json:"new_status"`
}

// IncidentAssignedPayload payload.
type IncidentAssignedPayload struct {
	AssigneeID   string  `json:"assignee_id"`
	PrevAssignee *string `json:"prev_assignee,omitempty"`
	SelfAssigned bool    `json:"self_assigned"`
}

// BroadcastSentPayload payload.
type BroadcastSentPayload struct {
	TargetAudience domain.Audience `json:"target_audience"`
	MessagePreview string          `json:"message_preview"`
}

// SafetyCheckRecordedPayload payload.
type SafetyCheckRecordedPayload struct {
	Status domain.SafetyStatus `json:"status"`
}

// ResourceUpdatedPayload payload.
type ResourceUpdatedPayload struct {
	Quantity int                   `json:"quantity"`
	Status   domain.ResourceStatus `json:"status"`
}
