package job

import (
	"context"

	"go.uber.org/zap"

	"workspace-board-api/internal/repository"
)

// CacheCleanupJob sweeps expired catalog cache entries
type CacheCleanupJob struct {
	cacheRepo repository.BookCacheRepository
	logger    *zap.Logger
}

// NewCacheCleanupJob creates a new CacheCleanupJob instance
func NewCacheCleanupJob(cacheRepo repository.BookCacheRepository, logger *zap.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// Run executes the cleanup job. Implements cron.Job.
func (j *CacheCleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting catalog cache cleanup job")

	deleted, err := j.cacheRepo.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("Failed to delete expired cache entries",
			zap.Error(err),
		)
		return
	}

	j.logger.Info("Catalog cache cleanup completed",
		zap.Int64("deleted", deleted),
	)
}
