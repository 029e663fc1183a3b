package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/repository"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

// VolunteerService covers roster queries and availability self-service.
type VolunteerService struct {
	users repository.UserRepository
}

// NewVolunteerService constructs the service.
func NewVolunteerService(users repository.UserRepository) *VolunteerService {
	return &VolunteerService{users: users}
}

// VolunteerSummary is the roster projection: name, email, skills only.
type VolunteerSummary struct {
	ID     string
	Name   string
	Email  string
	Skills []string
}

// UpdateAvailability flips the acting volunteer's availability flag.
func (s *VolunteerService) UpdateAvailability(ctx context.Context, volunteerID string, isAvailable bool) (*domain.User, error) {
	volunteer, err := s.users.GetByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("volunteer", nil)
		}
		return nil, apperrors.MapError(err)
	}

	volunteer.IsAvailable = isAvailable
	if err := s.users.Update(ctx, volunteer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return volunteer, nil
}

// AvailableVolunteers returns the roster of volunteers currently marked
// available.
func (s *VolunteerService) AvailableVolunteers(ctx context.Context) ([]VolunteerSummary, error) {
	volunteers, err := s.users.ListAvailableVolunteers(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summaries := make([]VolunteerSummary, 0, len(volunteers))
	for i := range volunteers {
		summaries = append(summaries, VolunteerSummary{
			ID:     volunteers[i].ID.Hex(),
			Name:   volunteers[i].Name,
			Email:  volunteers[i].Email,
			Skills: volunteers[i].Skills,
		})
	}
	return summaries, nil
}
