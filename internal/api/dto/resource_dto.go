package dto

import (
	"time"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// CreateResourceRequest payload for new resources.
type CreateResourceRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

// UpdateResourceRequest payload for quantity updates.
type UpdateResourceRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// ResourceResponse is the wire shape for resources.
type ResourceResponse struct {
	ID        string                  `json:"_id"`
	Name      string                  `json:"name"`
	Category  domain.ResourceCategory `json:"category"`
	Quantity  int                     `json:"quantity"`
	Status    domain.ResourceStatus   `json:"status"`
	Location  string                  `json:"location"`
	ManagedBy *UserRef                `json:"managedBy"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// NewResourceResponse projects a resource. The manager ref keeps name only
// when populated.
func NewResourceResponse(resource *domain.Resource, manager *UserRef) ResourceResponse {
	if manager == nil {
		manager = &UserRef{ID: resource.ManagedBy.Hex()}
	}
	return ResourceResponse{
		ID:        resource.ID.Hex(),
		Name:      resource.Name,
		Category:  resource.Category,
		Quantity:  resource.Quantity,
		Status:    resource.Status,
		Location:  resource.Location,
		ManagedBy: manager,
		CreatedAt: resource.CreatedAt,
		UpdatedAt: resource.UpdatedAt,
	}
}
