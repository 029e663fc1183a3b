// Package repositorytest provides in-memory repository implementations for
// service and handler tests. The fakes mirror the Mongo-backed repositories'
// observable behavior: ids and timestamps are stamped on create, missing
// documents surface mongo.ErrNoDocuments, and list operations return
// newest-first.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// UserStore is an in-memory UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users []domain.User
}

// NewUserStore returns an empty store.
func NewUserStore() *UserStore {
	return &UserStore{}
}

// Seed inserts a user directly, stamping an id if absent, and returns it.
func (s *UserStore) Seed(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users = append(s.users, user)
	return user
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Skills == nil {
		user.Skills = []string{}
	}
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			s.users[i] = *user
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *UserStore) UpdateSafetySnapshot(_ context.Context, id primitive.ObjectID, snapshot domain.SafetySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].SafetyStatus = snapshot
			s.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == oid {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for i := len(s.users) - 1; i >= 0; i-- {
		out = append(out, s.users[i])
	}
	return out, nil
}

func (s *UserStore) ListByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []domain.User
	for i := range s.users {
		if _, ok := want[s.users[i].ID]; ok {
			out = append(out, s.users[i])
		}
	}
	return out, nil
}

func (s *UserStore) ListAvailableVolunteers(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.User
	for i := range s.users {
		if s.users[i].Role == domain.RoleVolunteer && s.users[i].IsAvailable {
			out = append(out, s.users[i])
		}
	}
	return out, nil
}

// IncidentStore is an in-memory IncidentRepository.
type IncidentStore struct {
	mu        sync.Mutex
	incidents []domain.Incident
}

// NewIncidentStore returns an empty store.
func NewIncidentStore() *IncidentStore {
	return &IncidentStore{}
}

func (s *IncidentStore) Create(_ context.Context, incident *domain.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	incident.CreatedAt = now
	incident.UpdatedAt = now
	incident.ID = primitive.NewObjectID()
	s.incidents = append(s.incidents, *incident)
	return nil
}

func (s *IncidentStore) Update(_ context.Context, incident *domain.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incidents {
		if s.incidents[i].ID == incident.ID {
			incident.UpdatedAt = time.Now()
			s.incidents[i] = *incident
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *IncidentStore) GetByID(_ context.Context, id string) (*domain.Incident, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incidents {
		if s.incidents[i].ID == oid {
			incident := s.incidents[i]
			return &incident, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *IncidentStore) List(_ context.Context) ([]domain.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Incident, 0, len(s.incidents))
	for i := len(s.incidents) - 1; i >= 0; i-- {
		out = append(out, s.incidents[i])
	}
	return out, nil
}

func (s *IncidentStore) ListByAssignee(_ context.Context, assigneeID primitive.ObjectID) ([]domain.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Incident
	for i := len(s.incidents) - 1; i >= 0; i-- {
		if s.incidents[i].AssignedTo != nil && *s.incidents[i].AssignedTo == assigneeID {
			out = append(out, s.incidents[i])
		}
	}
	return out, nil
}

// ResourceStore is an in-memory ResourceRepository.
type ResourceStore struct {
	mu        sync.Mutex
	resources []domain.Resource
}

// NewResourceStore returns an empty store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{}
}

func (s *ResourceStore) Create(_ context.Context, resource *domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	resource.CreatedAt = now
	resource.UpdatedAt = now
	resource.ID = primitive.NewObjectID()
	s.resources = append(s.resources, *resource)
	return nil
}

func (s *ResourceStore) Update(_ context.Context, resource *domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resources {
		if s.resources[i].ID == resource.ID {
			resource.UpdatedAt = time.Now()
			s.resources[i] = *resource
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *ResourceStore) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resources {
		if s.resources[i].ID == oid {
			resource := s.resources[i]
			return &resource, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *ResourceStore) List(_ context.Context) ([]domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Resource, 0, len(s.resources))
	for i := len(s.resources) - 1; i >= 0; i-- {
		out = append(out, s.resources[i])
	}
	return out, nil
}

// BroadcastStore is an in-memory BroadcastRepository.
type BroadcastStore struct {
	mu         sync.Mutex
	broadcasts []domain.Broadcast
}

// NewBroadcastStore returns an empty store.
func NewBroadcastStore() *BroadcastStore {
	return &BroadcastStore{}
}

func (s *BroadcastStore) Create(_ context.Context, broadcast *domain.Broadcast) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	broadcast.CreatedAt = now
	broadcast.UpdatedAt = now
	broadcast.ID = primitive.NewObjectID()
	s.broadcasts = append(s.broadcasts, *broadcast)
	return nil
}

func (s *BroadcastStore) ListByAudience(_ context.Context, audiences []domain.Audience) ([]domain.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[domain.Audience]struct{}, len(audiences))
	for _, a := range audiences {
		want[a] = struct{}{}
	}
	var out []domain.Broadcast
	for i := len(s.broadcasts) - 1; i >= 0; i-- {
		if len(audiences) == 0 {
			out = append(out, s.broadcasts[i])
			continue
		}
		if _, ok := want[s.broadcasts[i].TargetAudience]; ok {
			out = append(out, s.broadcasts[i])
		}
	}
	return out, nil
}

// SafetyCheckStore is an in-memory SafetyCheckRepository.
type SafetyCheckStore struct {
	mu     sync.Mutex
	checks []domain.SafetyCheck
}

// NewSafetyCheckStore returns an empty store.
func NewSafetyCheckStore() *SafetyCheckStore {
	return &SafetyCheckStore{}
}

func (s *SafetyCheckStore) Create(_ context.Context, check *domain.SafetyCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	check.CreatedAt = now
	check.UpdatedAt = now
	check.ID = primitive.NewObjectID()
	s.checks = append(s.checks, *check)
	return nil
}

func (s *SafetyCheckStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.SafetyCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.SafetyCheck
	for i := len(s.checks) - 1; i >= 0; i-- {
		if s.checks[i].User == userID {
			out = append(out, s.checks[i])
		}
	}
	return out, nil
}
