package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/events"
	"github.com/suraksha-setu/relief-service/internal/repository"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// BroadcastService manages admin announcements.
type BroadcastService struct {
	broadcasts repository.BroadcastRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewBroadcastService constructs the service.
func NewBroadcastService(broadcasts repository.BroadcastRepository, users repository.UserRepository, dispatcher events.Dispatcher) *BroadcastService {
	return &BroadcastService{broadcasts: broadcasts, users: users, dispatcher: dispatcher}
}

// Create records a broadcast sent by the acting admin.
func (s *BroadcastService) Create(ctx context.Context, sender *domain.User, message string, audience domain.Audience) (*domain.Broadcast, error) {
	message = strings.TrimSpace(message)
	if message == "" || audience == "" {
		return nil, apperrors.NewValidationError("message and target audience are required", nil)
	}
	if !domain.ValidAudience(audience) {
		return nil, apperrors.NewValidationError("invalid target audience", nil)
	}

	broadcast := &domain.Broadcast{
		Message:        message,
		TargetAudience: audience,
		SentBy:         sender.ID,
	}
	if err := s.broadcasts.Create(ctx, broadcast); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventBroadcastSent,
			SubjectID: broadcast.ID.Hex(),
			Actor:     events.Actor{UserID: sender.ID.Hex(), Role: sender.Role},
			Timestamp: time.Now(),
			Payload: events.BroadcastSentPayload{
				TargetAudience: audience,
				MessagePreview: preview(message, 120),
			},
		})
	}
	return broadcast, nil
}

// ListForRole returns broadcasts visible to a reader with the given role,
// newest-first, with senders resolved to names.
func (s *BroadcastService) ListForRole(ctx context.Context, role domain.Role) ([]BroadcastView, error) {
	broadcasts, err := s.broadcasts.ListByAudience(ctx, domain.AudiencesForRole(role))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]primitive.ObjectID, 0, len(broadcasts))
	for i := range broadcasts {
		ids = append(ids, broadcasts[i].SentBy)
	}
	refs, err := resolveUserRefs(ctx, s.users, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	views := make([]BroadcastView, 0, len(broadcasts))
	for i := range broadcasts {
		views = append(views, BroadcastView{Broadcast: broadcasts[i], Sender: refs[broadcasts[i].SentBy]})
	}
	return views, nil
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
