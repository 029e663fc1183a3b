package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audience enumerates broadcast target tiers.
type Audience string

const (
	AudienceAllUsers      Audience = "ALL_USERS"
	AudienceAllVolunteers Audience = "ALL_VOLUNTEERS"
	AudienceAdminsOnly    Audience = "ADMINS_ONLY"
)

// ValidAudience reports enum membership.
func ValidAudience(a Audience) bool {
	switch a {
	case AudienceAllUsers, AudienceAllVolunteers, AudienceAdminsOnly:
		return true
	}
	return false
}

// AudiencesForRole returns the audience tiers visible to a reader with the
// given role. Nil means unrestricted (admins see everything).
func AudiencesForRole(role Role) []Audience {
	switch role {
	case RoleAdmin:
		return nil
	case RoleVolunteer:
		return []Audience{AudienceAllUsers, AudienceAllVolunteers}
	default:
		return []Audience{AudienceAllUsers}
	}
}

// Broadcast is an admin-authored announcement. Immutable once created.
type Broadcast struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Message        string             `bson:"message"`
	TargetAudience Audience           `bson:"targetAudience"`
	SentBy         primitive.ObjectID `bson:"sentBy"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}
