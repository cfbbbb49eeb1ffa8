package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-board-api/internal/domain"
)

// NoteRepository defines the interface for research note data access
type NoteRepository interface {
	Create(ctx context.Context, note *domain.ResearchNote) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ResearchNote, error)
	FindByBook(ctx context.Context, googleID string, limit, offset int) ([]*domain.ResearchNote, error)
	Update(ctx context.Context, note *domain.ResearchNote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// noteRepositoryImpl is the GORM implementation of NoteRepository
type noteRepositoryImpl struct {
	db *gorm.DB
}

// NewNoteRepository creates a new instance of NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepositoryImpl{db: db}
}

// Create creates a new research note
func (r *noteRepositoryImpl) Create(ctx context.Context, note *domain.ResearchNote) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a research note by ID
func (r *noteRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResearchNote, error) {
	var note domain.ResearchNote
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByBook finds all notes for a catalog book, newest first
func (r *noteRepositoryImpl) FindByBook(ctx context.Context, googleID string, limit, offset int) ([]*domain.ResearchNote, error) {
	var notes []*domain.ResearchNote
	if err := r.db.WithContext(ctx).
		Where("google_books_id = ?", googleID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update saves changes to a research note
func (r *noteRepositoryImpl) Update(ctx context.Context, note *domain.ResearchNote) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a research note
func (r *noteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ResearchNote{}, id).Error; err != nil {
		return err
	}
	return nil
}
