package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

const availableVolunteersKey = "volunteers:available"

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateSafetySnapshot(ctx context.Context, id primitive.ObjectID, snapshot domain.SafetySnapshot) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	ListAvailableVolunteers(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	collection *mongo.Collection
	cache      *redis.Client
	cacheTTL   time.Duration
}

// NewUserRepository returns a Mongo-backed implementation. The Redis client
// is optional; when present the available-volunteer roster is served
// read-through from cache and invalidated on any account write.
func NewUserRepository(collection *mongo.Collection, cache *redis.Client, cacheTTL time.Duration) UserRepository {
	return &userRepository{collection: collection, cache: cache, cacheTTL: cacheTTL}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Skills == nil {
		user.Skills = []string{}
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	r.invalidateRoster(ctx)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	r.invalidateRoster(ctx)
	return nil
}

func (r *userRepository) UpdateSafetySnapshot(ctx context.Context, id primitive.ObjectID, snapshot domain.SafetySnapshot) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"safetyStatus": snapshot,
		"updatedAt":    time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListAvailableVolunteers(ctx context.Context) ([]domain.User, error) {
	if cached := r.rosterFromCache(ctx); cached != nil {
		return cached, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{
		"role":        domain.RoleVolunteer,
		"isAvailable": true,
	})
	if err != nil {
		return nil, err
	}
	var volunteers []domain.User
	if err := cursor.All(ctx, &volunteers); err != nil {
		return nil, err
	}

	r.rosterToCache(ctx, volunteers)
	return volunteers, nil
}

func (r *userRepository) rosterFromCache(ctx context.Context) []domain.User {
	if r.cache == nil {
		return nil
	}
	payload, err := r.cache.Get(ctx, availableVolunteersKey).Bytes()
	if err != nil {
		return nil
	}
	var volunteers []domain.User
	if err := json.Unmarshal(payload, &volunteers); err != nil {
		return nil
	}
	return volunteers
}

func (r *userRepository) rosterToCache(ctx context.Context, volunteers []domain.User) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(volunteers)
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, availableVolunteersKey, payload, r.cacheTTL).Err()
}

func (r *userRepository) invalidateRoster(ctx context.Context) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Del(ctx, availableVolunteersKey).Err()
}
