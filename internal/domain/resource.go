package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceCategory enumerates relief-supply categories.
type ResourceCategory string

const (
	ResourceCategoryFood     ResourceCategory = "Food"
	ResourceCategoryMedical  ResourceCategory = "Medical"
	ResourceCategoryShelter  ResourceCategory = "Shelter"
	ResourceCategoryClothing ResourceCategory = "Clothing"
	ResourceCategoryTools    ResourceCategory = "Tools"
	ResourceCategoryOther    ResourceCategory = "Other"
)

// ValidResourceCategory reports enum membership.
func ValidResourceCategory(c ResourceCategory) bool {
	switch c {
	case ResourceCategoryFood, ResourceCategoryMedical, ResourceCategoryShelter,
		ResourceCategoryClothing, ResourceCategoryTools, ResourceCategoryOther:
		return true
	}
	return false
}

// ResourceStatus is derived from quantity, never set directly.
type ResourceStatus string

const (
	ResourceStatusInStock    ResourceStatus = "In Stock"
	ResourceStatusLow        ResourceStatus = "Low"
	ResourceStatusOutOfStock ResourceStatus = "Out of Stock"
)

// lowStockThreshold is the quantity below which a resource counts as Low.
const lowStockThreshold = 20

// DeriveResourceStatus computes stock status from quantity. Negative
// quantities are clamped to zero before evaluation.
func DeriveResourceStatus(quantity int) (int, ResourceStatus) {
	if quantity <= 0 {
		return 0, ResourceStatusOutOfStock
	}
	if quantity < lowStockThreshold {
		return quantity, ResourceStatusLow
	}
	return quantity, ResourceStatusInStock
}

// Resource is a trackable relief-supply line item.
type Resource struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  ResourceCategory   `bson:"category"`
	Quantity  int                `bson:"quantity"`
	Status    ResourceStatus     `bson:"status"`
	Location  string             `bson:"location"`
	ManagedBy primitive.ObjectID `bson:"managedBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
