package domain

import (
	"gorm.io/datatypes"
)

// Book is a catalog book saved by a user from search results. Saved rows are
// what storage-shaped card references point at.
type Book struct {
	BaseModel
	GoogleBooksID    string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_books_google_books_id" json:"google_books_id"`
	Title            string         `gorm:"type:varchar(512);not null" json:"title"`
	Authors          datatypes.JSON `gorm:"type:jsonb" json:"authors"`
	FirstPublishYear *int           `json:"first_publish_year,omitempty"`
	CoverURL         string         `gorm:"type:text" json:"cover_url,omitempty"`
	PreviewURL       string         `gorm:"type:text" json:"preview_url,omitempty"`
	Subjects         datatypes.JSON `gorm:"type:jsonb" json:"subjects,omitempty"`
	Description      string         `gorm:"type:text" json:"description,omitempty"`
	Pages            int            `json:"pages"`
	Readable         bool           `json:"readable"`
}

// TableName specifies the table name for Book
func (Book) TableName() string {
	return "books"
}
