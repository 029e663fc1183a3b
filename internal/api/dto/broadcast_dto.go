package dto

import (
	"time"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// CreateBroadcastRequest payload for announcements.
type CreateBroadcastRequest struct {
	Message        string `json:"message" validate:"required"`
	TargetAudience string `json:"targetAudience" validate:"required"`
}

// BroadcastResponse is the wire shape for broadcasts.
type BroadcastResponse struct {
	ID             string          `json:"_id"`
	Message        string          `json:"message"`
	TargetAudience domain.Audience `json:"targetAudience"`
	SentBy         *UserRef        `json:"sentBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewBroadcastResponse projects a broadcast.
func NewBroadcastResponse(broadcast *domain.Broadcast, sender *UserRef) BroadcastResponse {
	if sender == nil {
		sender = &UserRef{ID: broadcast.SentBy.Hex()}
	}
	return BroadcastResponse{
		ID:             broadcast.ID.Hex(),
		Message:        broadcast.Message,
		TargetAudience: broadcast.TargetAudience,
		SentBy:         sender,
		CreatedAt:      broadcast.CreatedAt,
	}
}
