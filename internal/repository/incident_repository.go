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

// IncidentRepository defines persistence access for incidents.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id string) (*domain.Incident, error)
	List(ctx context.Context) ([]domain.Incident, error)
	ListByAssignee(ctx context.Context, assigneeID primitive.ObjectID) ([]domain.Incident, error)
}

type incidentRepository struct {
	collection *mongo.Collection
}

// NewIncidentRepository returns a Mongo-backed implementation.
func NewIncidentRepository(collection *mongo.Collection) IncidentRepository {
	return &incidentRepository{collection: collection}
}

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	now := time.Now()
	incident.CreatedAt = now
	incident.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, incident)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		incident.ID = oid
	}
	return nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	incident.UpdatedAt = time.Now()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": incident.ID}, incident)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var incident domain.Incident
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) List(ctx context.Context) ([]domain.Incident, error) {
	return r.find(ctx, bson.M{})
}

func (r *incidentRepository) ListByAssignee(ctx context.Context, assigneeID primitive.ObjectID) ([]domain.Incident, error) {
	return r.find(ctx, bson.M{"assignedTo": assigneeID})
}

func (r *incidentRepository) find(ctx context.Context, filter bson.M) ([]domain.Incident, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var incidents []domain.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}
