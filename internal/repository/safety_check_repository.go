package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// SafetyCheckRepository defines persistence access for check-in history.
// Records are append-only.
type SafetyCheckRepository interface {
	Create(ctx context.Context, check *domain.SafetyCheck) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SafetyCheck, error)
}

type safetyCheckRepository struct {
	collection *mongo.Collection
}

// NewSafetyCheckRepository returns a Mongo-backed implementation.
func NewSafetyCheckRepository(collection *mongo.Collection) SafetyCheckRepository {
	return &safetyCheckRepository{collection: collection}
}

func (r *safetyCheckRepository) Create(ctx context.Context, check *domain.SafetyCheck) error {
	now := time.Now()
	check.CreatedAt = now
	check.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, check)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		check.ID = oid
	}
	return nil
}

func (r *safetyCheckRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SafetyCheck, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var checks []domain.SafetyCheck
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}
