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

// BroadcastRepository defines persistence access for announcements.
// Broadcasts are immutable; there is no update path.
type BroadcastRepository interface {
	Create(ctx context.Context, broadcast *domain.Broadcast) error
	ListByAudience(ctx context.Context, audiences []domain.Audience) ([]domain.Broadcast, error)
}

type broadcastRepository struct {
	collection *mongo.Collection
}

// NewBroadcastRepository returns a Mongo-backed implementation.
func NewBroadcastRepository(collection *mongo.Collection) BroadcastRepository {
	return &broadcastRepository{collection: collection}
}

func (r *broadcastRepository) Create(ctx context.Context, broadcast *domain.Broadcast) error {
	now := time.Now()
	broadcast.CreatedAt = now
	broadcast.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, broadcast)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		broadcast.ID = oid
	}
	return nil
}

// ListByAudience returns broadcasts newest-first. A nil or empty audience
// slice means no filtering (admin view).
func (r *broadcastRepository) ListByAudience(ctx context.Context, audiences []domain.Audience) ([]domain.Broadcast, error) {
	filter := bson.M{}
	if len(audiences) > 0 {
		filter["targetAudience"] = bson.M{"$in": audiences}
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var broadcasts []domain.Broadcast
	if err := cursor.All(ctx, &broadcasts); err != nil {
		return nil, err
	}
	return broadcasts, nil
}
