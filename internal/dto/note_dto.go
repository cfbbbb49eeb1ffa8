package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"workspace-board-api/internal/domain"
)

// CreateNoteRequest represents the request body for creating a research note
type CreateNoteRequest struct {
	GoogleBooksID string     `json:"googleBooksId" binding:"required"`
	WorkspaceID   *uuid.UUID `json:"workspaceId,omitempty"`
	ChapterID     string     `json:"chapterId,omitempty"`
	PageNumber    int        `json:"pageNumber,omitempty"`
	Content       string     `json:"content" binding:"required"`
	Tags          []string   `json:"tags,omitempty"`
}

// UpdateNoteRequest represents the request body for updating a research note.
// Zero-valued fields leave the stored note untouched.
type UpdateNoteRequest struct {
	Content    string   `json:"content,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	ChapterID  string   `json:"chapterId,omitempty"`
	PageNumber *int     `json:"pageNumber,omitempty"`
	Pinned     *bool    `json:"pinned,omitempty"`
}

// NoteResponse represents a research note in API responses
type NoteResponse struct {
	ID            uuid.UUID  `json:"id"`
	GoogleBooksID string     `json:"googleBooksId"`
	WorkspaceID   *uuid.UUID `json:"workspaceId,omitempty"`
	AuthorID      uuid.UUID  `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	ChapterID     string     `json:"chapterId,omitempty"`
	PageNumber    int        `json:"pageNumber,omitempty"`
	Content       string     `json:"content"`
	Tags          []string   `json:"tags,omitempty"`
	Pinned        bool       `json:"pinned"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ToNoteResponse converts a research note entity to its response form
func ToNoteResponse(note *domain.ResearchNote) *NoteResponse {
	resp := &NoteResponse{
		ID:            note.ID,
		GoogleBooksID: note.GoogleBooksID,
		WorkspaceID:   note.WorkspaceID,
		AuthorID:      note.AuthorID,
		AuthorName:    note.AuthorName,
		ChapterID:     note.ChapterID,
		PageNumber:    note.PageNumber,
		Content:       note.Content,
		Pinned:        note.Pinned,
		CreatedAt:     note.CreatedAt,
		UpdatedAt:     note.UpdatedAt,
	}
	_ = json.Unmarshal(note.Tags, &resp.Tags)
	return resp
}
