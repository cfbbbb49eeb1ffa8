package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResearchNote is a reading note attached to a catalog book. A note may be
// scoped to a workspace, in which case its lifecycle events are delivered to
// that room in real time.
type ResearchNote struct {
	BaseModel
	GoogleBooksID string         `gorm:"type:varchar(64);not null;index:idx_research_notes_google_books_id" json:"google_books_id"`
	WorkspaceID   *uuid.UUID     `gorm:"type:uuid;index:idx_research_notes_workspace_id" json:"workspace_id,omitempty"`
	AuthorID      uuid.UUID      `gorm:"type:uuid;not null" json:"author_id"`
	AuthorName    string         `gorm:"type:varchar(255)" json:"author_name"`
	ChapterID     string         `gorm:"type:varchar(64)" json:"chapter_id,omitempty"`
	PageNumber    int            `json:"page_number,omitempty"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
	Pinned        bool           `gorm:"not null;default:false" json:"pinned"`
}

// TableName specifies the table name for ResearchNote
func (ResearchNote) TableName() string {
	return "research_notes"
}
