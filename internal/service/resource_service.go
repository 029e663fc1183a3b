package service

import (
	"context"
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

const defaultResourceLocation = "Central Warehouse"

// ResourceService manages relief-supply line items. Stock status is always
// derived from quantity, never accepted from callers.
type ResourceService struct {
	resources  repository.ResourceRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewResourceService constructs the service.
func NewResourceService(resources repository.ResourceRepository, users repository.UserRepository, dispatcher events.Dispatcher) *ResourceService {
	return &ResourceService{resources: resources, users: users, dispatcher: dispatcher}
}

// ResourceCreateInput describes a new resource.
type ResourceCreateInput struct {
	Name     string
	Category domain.ResourceCategory
	Quantity int
	Location string
}

// Create records a resource managed by the acting admin.
func (s *ResourceService) Create(ctx context.Context, manager *domain.User, input ResourceCreateInput) (*domain.Resource, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if !domain.ValidResourceCategory(input.Category) {
		return nil, apperrors.NewValidationError("invalid category", nil)
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = defaultResourceLocation
	}

	quantity, status := domain.DeriveResourceStatus(input.Quantity)
	resource := &domain.Resource{
		Name:      name,
		Category:  input.Category,
		Quantity:  quantity,
		Status:    status,
		Location:  location,
		ManagedBy: manager.ID,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, apperrors.MapError(err)
	}
	return resource, nil
}

// List returns all resources newest-first with managers resolved to names.
func (s *ResourceService) List(ctx context.Context) ([]ResourceView, error) {
	resources, err := s.resources.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]primitive.ObjectID, 0, len(resources))
	for i := range resources {
		ids = append(ids, resources[i].ManagedBy)
	}
	refs, err := resolveUserRefs(ctx, s.users, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	views := make([]ResourceView, 0, len(resources))
	for i := range resources {
		views = append(views, ResourceView{Resource: resources[i], Manager: refs[resources[i].ManagedBy]})
	}
	return views, nil
}

// UpdateQuantity replaces the quantity, re-derives status, and records the
// acting admin as the new manager. Negative quantities clamp to zero.
func (s *ResourceService) UpdateQuantity(ctx context.Context, manager *domain.User, resourceID string, quantity int) (*domain.Resource, error) {
	resource, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("resource", map[string]any{"resource_id": resourceID})
		}
		return nil, apperrors.MapError(err)
	}

	resource.Quantity, resource.Status = domain.DeriveResourceStatus(quantity)
	resource.ManagedBy = manager.ID
	if err := s.resources.Update(ctx, resource); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventResourceUpdated,
			SubjectID: resource.ID.Hex(),
			Actor:     events.Actor{UserID: manager.ID.Hex(), Role: manager.Role},
			Timestamp: time.Now(),
			Payload: events.ResourceUpdatedPayload{
				Quantity: resource.Quantity,
				Status:   resource.Status,
			},
		})
	}
	return resource, nil
}
