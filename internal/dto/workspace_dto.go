package dto

import (
	"time"

	"github.com/google/uuid"

	"workspace-board-api/internal/domain"
)

// CreateWorkspaceRequest represents the request to create a new workspace
// @Description Request body for creating a workspace with the default column set
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// AddCardRequest represents the request to add a book card to a column
// @Description bookId may be a catalog volume ID, a saved book UUID, or a manual-* ID
type AddCardRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
	BookID   string `json:"bookId" binding:"required"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Cover    string `json:"cover,omitempty"`
	Preview  string `json:"preview,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// MoveCardRequest represents the request to move a card between columns
// @Description Indices are zero based. toIndex beyond the target length is clamped.
type MoveCardRequest struct {
	FromColumnID string `json:"fromColumnId" binding:"required"`
	ToColumnID   string `json:"toColumnId" binding:"required"`
	FromIndex    *int   `json:"fromIndex" binding:"required"`
	ToIndex      *int   `json:"toIndex" binding:"required"`
}

// WorkspaceResponse represents a workspace with its full column document
type WorkspaceResponse struct {
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Columns     []domain.Column `json:"columns"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// WorkspaceSummaryResponse represents a workspace without its column document
type WorkspaceSummaryResponse struct {
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AddCardResponse represents the result of adding a card
type AddCardResponse struct {
	Workspace *WorkspaceResponse `json:"workspace"`
	Card      *domain.Card       `json:"card,omitempty"`
	Duplicate bool               `json:"duplicate"`
}

// ToWorkspaceResponse converts a workspace entity to its response form
func ToWorkspaceResponse(workspace *domain.Workspace) (*WorkspaceResponse, error) {
	columns, err := workspace.ColumnSet()
	if err != nil {
		return nil, err
	}
	return &WorkspaceResponse{
		WorkspaceID: workspace.ID,
		OwnerID:     workspace.OwnerID,
		Name:        workspace.Name,
		Description: workspace.Description,
		Columns:     columns,
		CreatedAt:   workspace.CreatedAt,
		UpdatedAt:   workspace.UpdatedAt,
	}, nil
}

// ToWorkspaceSummaryResponse converts a workspace entity to its list form
func ToWorkspaceSummaryResponse(workspace *domain.Workspace) *WorkspaceSummaryResponse {
	return &WorkspaceSummaryResponse{
		WorkspaceID: workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		CreatedAt:   workspace.CreatedAt,
	}
}
