package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/events"
	"github.com/suraksha-setu/relief-service/internal/repository"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// IncidentService coordinates incident reporting, assignment, and status
// flows.
type IncidentService struct {
	incidents  repository.IncidentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewIncidentService constructs the service.
func NewIncidentService(incidents repository.IncidentRepository, users repository.UserRepository, dispatcher events.Dispatcher) *IncidentService {
	return &IncidentService{incidents: incidents, users: users, dispatcher: dispatcher}
}

// IncidentCreateInput describes an incident report. Location arrives either
// as a structured object or as a JSON-encoded string (multipart forms);
// both are normalized here.
type IncidentCreateInput struct {
	Type        domain.IncidentType
	Description string
	Location    json.RawMessage
	Urgency     string
	ImagePath   string
}

// Report creates an incident for the acting user.
func (s *IncidentService) Report(ctx context.Context, reporter *domain.User, input IncidentCreateInput) (*domain.Incident, error) {
	if !domain.ValidIncidentType(input.Type) {
		return nil, apperrors.NewValidationError("invalid incident type", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	location, err := normalizeLocation(input.Location)
	if err != nil {
		return nil, err
	}

	urgency := domain.Urgency(strings.ToUpper(strings.TrimSpace(input.Urgency)))
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}
	if !domain.ValidUrgency(urgency) {
		return nil, apperrors.NewValidationError("invalid urgency", nil)
	}

	incident := &domain.Incident{
		Type:        input.Type,
		Description: strings.TrimSpace(input.Description),
		Location:    location,
		Urgency:     urgency,
		Status:      domain.IncidentStatusReported,
		ReportedBy:  reporter.ID,
		Image:       input.ImagePath,
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventIncidentReported,
		SubjectID: incident.ID.Hex(),
		Actor:     events.Actor{UserID: reporter.ID.Hex(), Role: reporter.Role},
		Payload: events.IncidentReportedPayload{
			IncidentType: incident.Type,
			Urgency:      incident.Urgency,
			HasImage:     incident.Image != "",
		},
	})
	return incident, nil
}

// List returns all incidents newest-first with reporters and assignees
// resolved. Deliberately role-blind: every authenticated caller sees the
// full list.
func (s *IncidentService) List(ctx context.Context) ([]IncidentView, error) {
	incidents, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.populate(ctx, incidents)
}

// ListAssignedTo returns incidents assigned to the given volunteer.
func (s *IncidentService) ListAssignedTo(ctx context.Context, volunteer *domain.User) ([]IncidentView, error) {
	incidents, err := s.incidents.ListByAssignee(ctx, volunteer.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.populate(ctx, incidents)
}

// UpdateStatus sets the incident status. An empty status leaves the current
// value unchanged; no transition order is enforced.
func (s *IncidentService) UpdateStatus(ctx context.Context, actor *domain.User, incidentID string, status domain.IncidentStatus) (*domain.Incident, error) {
	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": incidentID})
		}
		return nil, apperrors.MapError(err)
	}

	if status != "" {
		if !domain.ValidIncidentStatus(status) {
			return nil, apperrors.NewValidationError("invalid status", nil)
		}
		oldStatus := incident.Status
		incident.Status = status
		if err := s.incidents.Update(ctx, incident); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.publish(ctx, events.Event{
			Type:      events.EventIncidentStatusChanged,
			SubjectID: incident.ID.Hex(),
			Actor:     events.Actor{UserID: actor.ID.Hex(), Role: actor.Role},
			Payload: events.IncidentStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return incident, nil
}

// Assign sets the incident's volunteer. Admins may assign anyone; everyone
// else may only assign themselves. Reassignment is allowed and last write
// wins.
func (s *IncidentService) Assign(ctx context.Context, actor *domain.User, incidentID, volunteerID string) (*IncidentView, error) {
	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": incidentID})
		}
		return nil, apperrors.MapError(err)
	}

	if actor.Role != domain.RoleAdmin && actor.ID.Hex() != volunteerID {
		return nil, apperrors.NewForbidden("you can only assign yourself to incidents")
	}

	assigneeID, err := primitive.ObjectIDFromHex(volunteerID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid volunteer id", nil)
	}

	var prev *string
	if incident.AssignedTo != nil {
		hex := incident.AssignedTo.Hex()
		prev = &hex
	}

	incident.AssignedTo = &assigneeID
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventIncidentAssigned,
		SubjectID: incident.ID.Hex(),
		Actor:     events.Actor{UserID: actor.ID.Hex(), Role: actor.Role},
		Payload: events.IncidentAssignedPayload{
			AssigneeID:   volunteerID,
			PrevAssignee: prev,
			SelfAssigned: actor.ID.Hex() == volunteerID,
		},
	})

	views, err := s.populate(ctx, []domain.Incident{*incident})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *IncidentService) populate(ctx context.Context, incidents []domain.Incident) ([]IncidentView, error) {
	ids := make([]primitive.ObjectID, 0, len(incidents)*2)
	for i := range incidents {
		ids = append(ids, incidents[i].ReportedBy)
		if incidents[i].AssignedTo != nil {
			ids = append(ids, *incidents[i].AssignedTo)
		}
	}

	refs, err := resolveUserRefs(ctx, s.users, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	views := make([]IncidentView, 0, len(incidents))
	for i := range incidents {
		view := IncidentView{Incident: incidents[i], Reporter: refs[incidents[i].ReportedBy]}
		if incidents[i].AssignedTo != nil {
			view.Assignee = refs[*incidents[i].AssignedTo]
		}
		views = append(views, view)
	}
	return views, nil
}

// normalizeLocation accepts a GeoJSON point either directly or wrapped in a
// JSON string and validates its shape.
func normalizeLocation(raw json.RawMessage) (domain.GeoPoint, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return domain.GeoPoint{}, apperrors.NewValidationError("location data is incomplete or invalid", nil)
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return domain.GeoPoint{}, apperrors.NewValidationError("invalid location format", nil)
		}
		raw = []byte(inner)
	}

	var point domain.GeoPoint
	if err := json.Unmarshal(raw, &point); err != nil {
		return domain.GeoPoint{}, apperrors.NewValidationError("invalid location format", nil)
	}
	if point.Type != "Point" || len(point.Coordinates) != 2 {
		return domain.GeoPoint{}, apperrors.NewValidationError("location data is incomplete or invalid", nil)
	}
	return point, nil
}

func (s *IncidentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
