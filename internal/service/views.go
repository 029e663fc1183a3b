package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/repository"
)

// UserRef is the projection used when a related user is resolved inline
// (reporter, assignee, manager, sender).
type UserRef struct {
	ID    string
	Name  string
	Email string
}

// IncidentView is an incident with its references resolved.
type IncidentView struct {
	Incident domain.Incident
	Reporter *UserRef
	Assignee *UserRef
}

// ResourceView is a resource with its manager resolved.
type ResourceView struct {
	Resource domain.Resource
	Manager  *UserRef
}

// BroadcastView is a broadcast with its sender resolved.
type BroadcastView struct {
	Broadcast domain.Broadcast
	Sender    *UserRef
}

// resolveUserRefs loads the given users in one query and returns them
// keyed by id for inline population.
func resolveUserRefs(ctx context.Context, users repository.UserRepository, ids []primitive.ObjectID) (map[primitive.ObjectID]*UserRef, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	resolved, err := users.ListByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	refs := make(map[primitive.ObjectID]*UserRef, len(resolved))
	for i := range resolved {
		u := &resolved[i]
		refs[u.ID] = &UserRef{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
	}
	return refs, nil
}
