package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-board-api/internal/domain"
)

// BookRepository defines the interface for saved book data access
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.Book, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// bookRepositoryImpl is the GORM implementation of BookRepository
type bookRepositoryImpl struct {
	db *gorm.DB
}

// NewBookRepository creates a new instance of BookRepository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepositoryImpl{db: db}
}

// Create creates a new saved book
func (r *bookRepositoryImpl) Create(ctx context.Context, book *domain.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a saved book by ID
func (r *bookRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	var book domain.Book
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByGoogleID finds a saved book by its external catalog ID.
// Returns nil without error when no book matches.
func (r *bookRepositoryImpl) FindByGoogleID(ctx context.Context, googleID string) (*domain.Book, error) {
	var book domain.Book
	if err := r.db.WithContext(ctx).
		Where("google_books_id = ?", googleID).
		First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// FindAll lists saved books, newest first
func (r *bookRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*domain.Book, error) {
	var books []*domain.Book
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Update updates a saved book
func (r *bookRepositoryImpl) Update(ctx context.Context, book *domain.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes a saved book
func (r *bookRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Book{}, id).Error; err != nil {
		return err
	}
	return nil
}
