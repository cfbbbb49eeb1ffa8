package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"workspace-board-api/internal/domain"
)

// CacheStats summarizes the state of the catalog cache table
type CacheStats struct {
	Entries   int64 `json:"entries"`
	TotalHits int64 `json:"total_hits"`
	Expired   int64 `json:"expired"`
}

// BookCacheRepository defines the interface for catalog cache data access
type BookCacheRepository interface {
	Create(ctx context.Context, entry *domain.BookCache) error
	FindByGoogleID(ctx context.Context, googleID string) (*domain.BookCache, error)
	IncrementHit(ctx context.Context, googleID string) error
	DeleteExpired(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*CacheStats, error)
}

// bookCacheRepositoryImpl is the GORM implementation of BookCacheRepository
type bookCacheRepositoryImpl struct {
	db *gorm.DB
}

// NewBookCacheRepository creates a new instance of BookCacheRepository
func NewBookCacheRepository(db *gorm.DB) BookCacheRepository {
	return &bookCacheRepositoryImpl{db: db}
}

// Create creates a new cache entry
func (r *bookCacheRepositoryImpl) Create(ctx context.Context, entry *domain.BookCache) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	return nil
}

// FindByGoogleID finds an unexpired cache entry by external catalog ID.
// Returns nil without error when no live entry matches.
func (r *bookCacheRepositoryImpl) FindByGoogleID(ctx context.Context, googleID string) (*domain.BookCache, error) {
	var entry domain.BookCache
	if err := r.db.WithContext(ctx).
		Where("google_books_id = ? AND expires_at > ?", googleID, time.Now()).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// IncrementHit bumps the hit counter for a cache entry
func (r *bookCacheRepositoryImpl) IncrementHit(ctx context.Context, googleID string) error {
	if err := r.db.WithContext(ctx).
		Model(&domain.BookCache{}).
		Where("google_books_id = ?", googleID).
		UpdateColumn("cache_hits", gorm.Expr("cache_hits + 1")).Error; err != nil {
		return err
	}
	return nil
}

// DeleteExpired removes all cache entries past their expiry
func (r *bookCacheRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("expires_at <= ?", time.Now()).
		Delete(&domain.BookCache{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Stats returns cache entry counts and accumulated hits
func (r *bookCacheRepositoryImpl) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	if err := r.db.WithContext(ctx).
		Model(&domain.BookCache{}).
		Count(&stats.Entries).Error; err != nil {
		return nil, err
	}

	var totalHits *int64
	if err := r.db.WithContext(ctx).
		Model(&domain.BookCache{}).
		Select("SUM(cache_hits)").
		Scan(&totalHits).Error; err != nil {
		return nil, err
	}
	if totalHits != nil {
		stats.TotalHits = *totalHits
	}

	if err := r.db.WithContext(ctx).
		Model(&domain.BookCache{}).
		Where("expires_at <= ?", time.Now()).
		Count(&stats.Expired).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
