package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SafetyCheck is an append-only check-in record. The user's embedded
// SafetySnapshot mirrors the latest check; this collection keeps the full
// history.
type SafetyCheck struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Status    SafetyStatus       `bson:"status"`
	Location  GeoPoint           `bson:"location"`
	Message   string             `bson:"message,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
