package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the query paths rely on. Safe to run on
// every startup; existing indexes are left untouched.
func EnsureIndexes(ctx context.Context, m *Mongo, logger *zap.Logger) error {
	if m == nil || m.Database == nil {
		logger.Warn("no mongo database available; skipping index setup")
		return nil
	}

	specs := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "isAvailable", Value: 1}}},
		},
		"incidents": {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		},
		"resources": {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"broadcasts": {
			{Keys: bson.D{{Key: "targetAudience", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"safety_checks": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	total := 0
	for collection, models := range specs {
		if _, err := m.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", collection, err)
		}
		logger.Info("ensured indexes", zap.String("collection", collection), zap.Int("count", len(models)))
		total += len(models)
	}

	logger.Info("indexes ensured", zap.Int("count", total))
	return nil
}
