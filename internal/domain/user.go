package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role enumerates account roles. Roles are fixed at registration.
type Role string

const (
	RoleUser      Role = "USER"
	RoleVolunteer Role = "VOLUNTEER"
	RoleAdmin     Role = "ADMIN"
)

// ValidRole reports whether r is a member of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// SafetyStatus enumerates self-reported safety states.
type SafetyStatus string

const (
	SafetyStatusSafe      SafetyStatus = "SAFE"
	SafetyStatusNeedsHelp SafetyStatus = "NEEDS_HELP"
	SafetyStatusUnknown   SafetyStatus = "UNKNOWN"
)

// SafetySnapshot is the user's embedded current safety status. It is
// overwritten on every check-in; history lives in the safety_checks
// collection.
type SafetySnapshot struct {
	Status    SafetyStatus `bson:"status"`
	Timestamp *time.Time   `bson:"timestamp,omitempty"`
}

// User is the single principal type: reporters, volunteers and admins
// differ only by role.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password"`
	Role             Role               `bson:"role"`
	IsAvailable      bool               `bson:"isAvailable"`
	Skills           []string           `bson:"skills"`
	IsSuspended      bool               `bson:"isSuspended"`
	SafetyStatus     SafetySnapshot     `bson:"safetyStatus"`
	Contact          string             `bson:"contact,omitempty"`
	EmergencyContact string             `bson:"emergencyContact,omitempty"`
	Bio              string             `bson:"bio,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}
