package domain

import (
	"github.com/google/uuid"
)

// ActivityAction classifies an activity log entry
type ActivityAction string

const (
	ActivityWorkspaceCreated ActivityAction = "WORKSPACE_CREATED"
	ActivityCardAdded        ActivityAction = "CARD_ADDED"
	ActivityCardMoved        ActivityAction = "CARD_MOVED"
	ActivityCardDeleted      ActivityAction = "CARD_DELETED"
)

// ActivityLog records a single board mutation for the activity feed. Entries
// are best-effort: a failed write never fails the mutation that produced it.
type ActivityLog struct {
	BaseModel
	WorkspaceID uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_logs_workspace_id" json:"workspace_id"`
	ActorID     uuid.UUID      `gorm:"type:uuid;not null" json:"actor_id"`
	ActorName   string         `gorm:"type:varchar(255)" json:"actor_name"`
	Action      ActivityAction `gorm:"type:varchar(50);not null" json:"action"`
	CardTitle   string         `gorm:"type:varchar(512)" json:"card_title,omitempty"`
	Detail      string         `gorm:"type:text" json:"detail,omitempty"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}
