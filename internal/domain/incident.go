package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IncidentType enumerates kinds of reported emergencies.
type IncidentType string

const (
	IncidentTypeMedical IncidentType = "Medical"
	IncidentTypeFire    IncidentType = "Fire"
	IncidentTypeFlood   IncidentType = "Flood"
	IncidentTypeRescue  IncidentType = "Rescue"
	IncidentTypeOther   IncidentType = "Other"
)

// ValidIncidentType reports enum membership.
func ValidIncidentType(t IncidentType) bool {
	switch t {
	case IncidentTypeMedical, IncidentTypeFire, IncidentTypeFlood, IncidentTypeRescue, IncidentTypeOther:
		return true
	}
	return false
}

// Urgency enumerates incident urgency levels.
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// ValidUrgency reports enum membership.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// IncidentStatus enumerates lifecycle states. Status values exist but no
// transition order is enforced.
type IncidentStatus string

const (
	IncidentStatusReported   IncidentStatus = "Reported"
	IncidentStatusInProgress IncidentStatus = "In Progress"
	IncidentStatusResolved   IncidentStatus = "Resolved"
)

// ValidIncidentStatus reports enum membership.
func ValidIncidentStatus(s IncidentStatus) bool {
	switch s {
	case IncidentStatusReported, IncidentStatusInProgress, IncidentStatusResolved:
		return true
	}
	return false
}

// GeoPoint is a GeoJSON point with an optional human-readable address.
// Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
}

// Incident is a reported emergency or help request.
type Incident struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Type        IncidentType        `bson:"type"`
	Description string              `bson:"description"`
	Location    GeoPoint            `bson:"location"`
	Urgency     Urgency             `bson:"urgency"`
	Status      IncidentStatus      `bson:"status"`
	ReportedBy  primitive.ObjectID  `bson:"reportedBy"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo,omitempty"`
	Image       string              `bson:"image,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}
