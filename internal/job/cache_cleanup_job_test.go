package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"workspace-board-api/internal/domain"
	"workspace-board-api/internal/repository"
)

type stubCacheRepo struct {
	repository.BookCacheRepository
	deleted   int64
	deleteErr error
	calls     int
}

func (s *stubCacheRepo) DeleteExpired(ctx context.Context) (int64, error) {
	s.calls++
	return s.deleted, s.deleteErr
}

func (s *stubCacheRepo) Create(ctx context.Context, entry *domain.BookCache) error {
	return nil
}

func TestCacheCleanupJob_Run(t *testing.T) {
	repo := &stubCacheRepo{deleted: 3}
	job := NewCacheCleanupJob(repo, zap.NewNop())

	job.Run()

	assert.Equal(t, 1, repo.calls)
}

func TestCacheCleanupJob_RunSurvivesRepositoryError(t *testing.T) {
	repo := &stubCacheRepo{deleteErr: errors.New("db down")}
	job := NewCacheCleanupJob(repo, zap.NewNop())

	assert.NotPanics(t, func() { job.Run() })
	assert.Equal(t, 1, repo.calls)
}
