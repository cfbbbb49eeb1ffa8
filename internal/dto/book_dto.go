package dto

import (
	"time"

	"github.com/google/uuid"
)

// SearchBooksRequest represents the query parameters for a catalog search
type SearchBooksRequest struct {
	Query      string `form:"q" binding:"required,min=1"`
	MaxResults int    `form:"maxResults,default=20" binding:"omitempty,min=1,max=40"`
	YearFrom   int    `form:"yearFrom" binding:"omitempty,min=0"`
	YearTo     int    `form:"yearTo" binding:"omitempty,min=0"`
	Subject    string `form:"subject"`
	Readable   *bool  `form:"readable"`
}

// BookResult represents a single book in search results or saved lists
type BookResult struct {
	ID               string    `json:"id,omitempty"`
	GoogleBooksID    string    `json:"googleBooksId"`
	Title            string    `json:"title"`
	Authors          []string  `json:"authors,omitempty"`
	Subjects         []string  `json:"subjects,omitempty"`
	FirstPublishYear *int      `json:"firstPublishYear,omitempty"`
	CoverURL         string    `json:"coverUrl,omitempty"`
	PreviewURL       string    `json:"previewUrl,omitempty"`
	Description      string    `json:"description,omitempty"`
	Readable         bool      `json:"readable"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// SearchBooksResponse represents a catalog search result page
type SearchBooksResponse struct {
	Query      string       `json:"query"`
	TotalItems int          `json:"totalItems"`
	Books      []BookResult `json:"books"`
	FromCache  bool         `json:"fromCache"`
}

// SaveBookRequest represents the request to save a book to the library
type SaveBookRequest struct {
	GoogleBooksID    string   `json:"googleBooksId" binding:"required"`
	Title            string   `json:"title" binding:"required"`
	Authors          []string `json:"authors,omitempty"`
	Subjects         []string `json:"subjects,omitempty"`
	FirstPublishYear *int     `json:"firstPublishYear,omitempty"`
	CoverURL         string   `json:"coverUrl,omitempty"`
	PreviewURL       string   `json:"previewUrl,omitempty"`
	Description      string   `json:"description,omitempty"`
	Readable         bool     `json:"readable"`
}

// SavedBookResponse represents a saved book
type SavedBookResponse struct {
	ID               uuid.UUID `json:"id"`
	GoogleBooksID    string    `json:"googleBooksId"`
	Title            string    `json:"title"`
	Authors          []string  `json:"authors,omitempty"`
	Subjects         []string  `json:"subjects,omitempty"`
	FirstPublishYear *int      `json:"firstPublishYear,omitempty"`
	CoverURL         string    `json:"coverUrl,omitempty"`
	PreviewURL       string    `json:"previewUrl,omitempty"`
	Description      string    `json:"description,omitempty"`
	Readable         bool      `json:"readable"`
	CreatedAt        time.Time `json:"createdAt"`
}
