package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-board-api/internal/domain"
)

// ActivityRepository defines the interface for activity log data access
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.ActivityLog, error)
	DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create records an activity entry
func (r *activityRepositoryImpl) Create(ctx context.Context, entry *domain.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	return nil
}

// FindByWorkspace lists activity entries for a workspace, newest first
func (r *activityRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.ActivityLog, error) {
	var entries []*domain.ActivityLog
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByWorkspace removes all activity entries for a workspace
func (r *activityRepositoryImpl) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&domain.ActivityLog{}).Error; err != nil {
		return err
	}
	return nil
}
