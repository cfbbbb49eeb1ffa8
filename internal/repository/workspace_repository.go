package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workspace-board-api/internal/domain"
)

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateColumns(ctx context.Context, id uuid.UUID, mutate func(columns []domain.Column) ([]domain.Column, error)) (*domain.Workspace, error)
	Count(ctx context.Context) (int64, error)
}

// workspaceRepositoryImpl is the GORM implementation of WorkspaceRepository
type workspaceRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new instance of WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepositoryImpl{db: db}
}

// Create creates a new workspace
func (r *workspaceRepositoryImpl) Create(ctx context.Context, workspace *domain.Workspace) error {
	if err := r.db.WithContext(ctx).Create(workspace).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a workspace by ID
func (r *workspaceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	var workspace domain.Workspace
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// FindByOwner finds all workspaces owned by a user, newest first
func (r *workspaceRepositoryImpl) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Workspace, error) {
	var workspaces []*domain.Workspace
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Delete soft deletes a workspace
func (r *workspaceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Workspace{}, id).Error; err != nil {
		return err
	}
	return nil
}

// UpdateColumns applies a mutation to the column document inside a transaction.
// The row is locked for the duration so concurrent card operations serialize
// on the workspace and no intermediate state is ever visible.
func (r *workspaceRepositoryImpl) UpdateColumns(ctx context.Context, id uuid.UUID, mutate func(columns []domain.Column) ([]domain.Column, error)) (*domain.Workspace, error) {
	var updated *domain.Workspace
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", id)
		// Row locking is only available on postgres; the sqlite dialect
		// used in tests serializes writes on its own.
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var workspace domain.Workspace
		if err := query.First(&workspace).Error; err != nil {
			return err
		}

		columns, err := workspace.ColumnSet()
		if err != nil {
			return err
		}

		next, err := mutate(columns)
		if err != nil {
			return err
		}

		if err := workspace.SetColumnSet(next); err != nil {
			return err
		}

		if err := tx.Model(&domain.Workspace{}).
			Where("id = ?", id).
			Update("columns", workspace.Columns).Error; err != nil {
			return err
		}

		updated = &workspace
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Count returns the total number of workspaces
func (r *workspaceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Workspace{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsNotFound reports whether err is a missing-record error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
