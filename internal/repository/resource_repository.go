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

// ResourceRepository defines persistence access for relief supplies.
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	Update(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]domain.Resource, error)
}

type resourceRepository struct {
	collection *mongo.Collection
}

// NewResourceRepository returns a Mongo-backed implementation.
func NewResourceRepository(collection *mongo.Collection) ResourceRepository {
	return &resourceRepository{collection: collection}
}

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	now := time.Now()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, resource)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		resource.ID = oid
	}
	return nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	resource.UpdatedAt = time.Now()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": resource.ID}, resource)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var resource domain.Resource
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var resources []domain.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}
