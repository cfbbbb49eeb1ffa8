package dto

import (
	"time"

	"github.com/google/uuid"

	"workspace-board-api/internal/domain"
)

// ActivityResponse represents a single activity log entry
type ActivityResponse struct {
	ID        uuid.UUID             `json:"id"`
	ActorID   uuid.UUID             `json:"actorId"`
	ActorName string                `json:"actorName"`
	Action    domain.ActivityAction `json:"action"`
	CardTitle string                `json:"cardTitle,omitempty"`
	Detail    string                `json:"detail,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// ToActivityResponse converts an activity entity to its response form
func ToActivityResponse(entry *domain.ActivityLog) *ActivityResponse {
	return &ActivityResponse{
		ID:        entry.ID,
		ActorID:   entry.ActorID,
		ActorName: entry.ActorName,
		Action:    entry.Action,
		CardTitle: entry.CardTitle,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt,
	}
}
