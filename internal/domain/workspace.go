package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Workspace represents a shared board of book cards owned by a single user.
// The entire column/card arrangement is stored as one JSONB document so a
// single row update always commits a complete, consistent board state.
type Workspace struct {
	BaseModel
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_workspaces_owner_id" json:"owner_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Columns     datatypes.JSON `gorm:"type:jsonb;not null" json:"columns"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}

// Column is a fixed-identity ordered bucket within a workspace. The column
// set is stamped at creation time from configuration; users never add or
// remove columns.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Card is a single book entry positioned within one column.
type Card struct {
	ID      string `json:"id"`
	BookID  string `json:"bookId"`
	Title   string `json:"title"`
	Author  string `json:"author,omitempty"`
	Cover   string `json:"cover,omitempty"`
	Preview string `json:"preview,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// NewCardID generates a card identifier unique within the board
func NewCardID() string {
	return "card-" + uuid.NewString()
}

// ColumnSet decodes the persisted column document
func (w *Workspace) ColumnSet() ([]Column, error) {
	var columns []Column
	if len(w.Columns) == 0 {
		return columns, nil
	}
	if err := json.Unmarshal(w.Columns, &columns); err != nil {
		return nil, fmt.Errorf("failed to decode workspace columns: %w", err)
	}
	return columns, nil
}

// SetColumnSet encodes the column document back onto the workspace
func (w *Workspace) SetColumnSet(columns []Column) error {
	data, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to encode workspace columns: %w", err)
	}
	w.Columns = data
	return nil
}

// FindCardByBookID scans every column for a card with the given resolved
// book reference. Book references are unique across the whole board.
func FindCardByBookID(columns []Column, bookID string) (*Card, bool) {
	for i := range columns {
		for j := range columns[i].Cards {
			if columns[i].Cards[j].BookID == bookID {
				return &columns[i].Cards[j], true
			}
		}
	}
	return nil, false
}
