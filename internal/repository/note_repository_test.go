package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-board-api/internal/domain"
)

func seedNote(t *testing.T, repo NoteRepository, googleID string, authorID uuid.UUID, content string, createdAt time.Time) *domain.ResearchNote {
	t.Helper()
	note := &domain.ResearchNote{
		BaseModel:     domain.BaseModel{CreatedAt: createdAt},
		GoogleBooksID: googleID,
		AuthorID:      authorID,
		AuthorName:    "dana",
		Content:       content,
	}
	require.NoError(t, repo.Create(context.Background(), note))
	return note
}

func TestNoteRepository_CreateAndFind(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	authorID := uuid.New()

	created := seedNote(t, repo, "zyTCAlFPjgYC", authorID, "Chapter notes", time.Now().UTC())
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, authorID, found.AuthorID)
	assert.Equal(t, "Chapter notes", found.Content)
}

func TestNoteRepository_FindByIDNotFound(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestNoteRepository_FindByBookNewestFirst(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	authorID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		seedNote(t, repo, "zyTCAlFPjgYC", authorID, fmt.Sprintf("note %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	seedNote(t, repo, "otherBook", authorID, "unrelated", base)

	notes, err := repo.FindByBook(context.Background(), "zyTCAlFPjgYC", 50, 0)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "note 2", notes[0].Content)
	assert.Equal(t, "note 0", notes[2].Content)
}

func TestNoteRepository_FindByBookPaginates(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	authorID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		seedNote(t, repo, "zyTCAlFPjgYC", authorID, fmt.Sprintf("note %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.FindByBook(context.Background(), "zyTCAlFPjgYC", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "note 2", page[0].Content)
}

func TestNoteRepository_UpdatePersistsChanges(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	note := seedNote(t, repo, "zyTCAlFPjgYC", uuid.New(), "draft", time.Now().UTC())

	note.Content = "revised"
	note.Pinned = true
	require.NoError(t, repo.Update(context.Background(), note))

	reloaded, err := repo.FindByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", reloaded.Content)
	assert.True(t, reloaded.Pinned)
}

func TestNoteRepository_Delete(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	note := seedNote(t, repo, "zyTCAlFPjgYC", uuid.New(), "gone soon", time.Now().UTC())

	require.NoError(t, repo.Delete(context.Background(), note.ID))

	_, err := repo.FindByID(context.Background(), note.ID)
	assert.True(t, IsNotFound(err))
}
