package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/events"
	"github.com/suraksha-setu/relief-service/internal/repository"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// SafetyService records check-ins. Each check-in performs two writes: an
// append-only history record, then an overwrite of the user's embedded
// current-status snapshot. The writes are not wrapped in a transaction; the
// history record is written first so a failure in between never loses the
// historical event.
type SafetyService struct {
	checks     repository.SafetyCheckRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewSafetyService constructs the service.
func NewSafetyService(checks repository.SafetyCheckRepository, users repository.UserRepository, dispatcher events.Dispatcher) *SafetyService {
	return &SafetyService{checks: checks, users: users, dispatcher: dispatcher}
}

// SafetyCheckInput describes a check-in payload.
type SafetyCheckInput struct {
	Status   domain.SafetyStatus
	Location json.RawMessage
	Message  string
}

// Record persists the check-in and refreshes the user's snapshot.
func (s *SafetyService) Record(ctx context.Context, user *domain.User, input SafetyCheckInput) (*domain.SafetyCheck, error) {
	if input.Status != domain.SafetyStatusSafe && input.Status != domain.SafetyStatusNeedsHelp {
		return nil, apperrors.NewValidationError("status must be SAFE or NEEDS_HELP", nil)
	}

	location, err := normalizeLocation(input.Location)
	if err != nil {
		return nil, err
	}

	check := &domain.SafetyCheck{
		User:     user.ID,
		Status:   input.Status,
		Location: location,
		Message:  input.Message,
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return nil, apperrors.MapError(err)
	}

	now := time.Now()
	snapshot := domain.SafetySnapshot{Status: input.Status, Timestamp: &now}
	if err := s.users.UpdateSafetySnapshot(ctx, user.ID, snapshot); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSafetyCheckRecorded,
			SubjectID: check.ID.Hex(),
			Actor:     events.Actor{UserID: user.ID.Hex(), Role: user.Role},
			Timestamp: now,
			Payload:   events.SafetyCheckRecordedPayload{Status: input.Status},
		})
	}
	return check, nil
}

// History returns the acting user's check-ins, newest-first.
func (s *SafetyService) History(ctx context.Context, user *domain.User) ([]domain.SafetyCheck, error) {
	checks, err := s.checks.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return checks, nil
}
