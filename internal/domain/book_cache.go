package domain

import (
	"time"

	"gorm.io/datatypes"
)

// BookCache is a cached catalog lookup keyed by the canonical volume id.
// Entries expire and are swept by the cleanup job; the hit counter feeds the
// cache stats endpoint.
type BookCache struct {
	BaseModel
	GoogleBooksID    string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_book_cache_google_books_id" json:"google_books_id"`
	Title            string         `gorm:"type:varchar(512);not null" json:"title"`
	Authors          datatypes.JSON `gorm:"type:jsonb" json:"authors"`
	ISBN             datatypes.JSON `gorm:"type:jsonb" json:"isbn,omitempty"`
	FirstPublishYear *int           `json:"first_publish_year,omitempty"`
	Pages            int            `json:"pages"`
	CoverURL         string         `gorm:"type:text" json:"cover_url,omitempty"`
	Subjects         datatypes.JSON `gorm:"type:jsonb" json:"subjects,omitempty"`
	Description      string         `gorm:"type:text" json:"description,omitempty"`
	Language         string         `gorm:"type:varchar(16)" json:"language,omitempty"`
	Publisher        string         `gorm:"type:varchar(255)" json:"publisher,omitempty"`
	CacheHits        int64          `gorm:"not null;default:0" json:"cache_hits"`
	ExpiresAt        time.Time      `gorm:"index:idx_book_cache_expires_at" json:"expires_at"`
}

// TableName specifies the table name for BookCache
func (BookCache) TableName() string {
	return "book_cache"
}
