package service

import (
	"context"

	"github.com/google/uuid"

	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/repository"
	"workspace-board-api/internal/response"
)

// ActivityService defines the interface for the activity feed
type ActivityService interface {
	ListActivity(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*dto.ActivityResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityServiceImpl{activityRepo: activityRepo}
}

// ListActivity lists activity entries for a workspace, newest first
func (s *activityServiceImpl) ListActivity(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*dto.ActivityResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, err := s.activityRepo.FindByWorkspace(ctx, workspaceID, limit, offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list activity", err.Error())
	}

	responses := make([]*dto.ActivityResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.ToActivityResponse(entry)
	}
	return responses, nil
}
