package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workspace-board-api/internal/client"
	"workspace-board-api/internal/config"
	"workspace-board-api/internal/domain"
	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/realtime"
	"workspace-board-api/internal/repository"
	"workspace-board-api/internal/service"
)

// stubCatalog serves a fixed volume for every lookup
type stubCatalog struct{}

func (stubCatalog) GetVolume(ctx context.Context, volumeID string) (*client.Volume, error) {
	return &client.Volume{
		ID: volumeID,
		VolumeInfo: client.VolumeInfo{
			Title:   "Stub Title",
			Authors: []string{"Stub Author"},
		},
	}, nil
}

func (stubCatalog) Search(ctx context.Context, query string, maxResults int) (*client.SearchResult, error) {
	return &client.SearchResult{}, nil
}

type testEnv struct {
	router *gin.Engine
	userID uuid.UUID
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Workspace{},
		&domain.Book{},
		&domain.BookCache{},
		&domain.ActivityLog{},
		&domain.ResearchNote{},
	))

	columns := []config.ColumnConfig{
		{ID: "to-read", Title: "To Read"},
		{ID: "reading", Title: "Reading"},
		{ID: "cited", Title: "Cited"},
	}

	log := zap.NewNop()
	workspaceRepo := repository.NewWorkspaceRepository(db)
	bookRepo := repository.NewBookRepository(db)
	cacheRepo := repository.NewBookCacheRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	noteRepo := repository.NewNoteRepository(db)

	bookService := service.NewBookService(stubCatalog{}, bookRepo, cacheRepo, nil, time.Hour, time.Minute, log, nil)
	workspaceService := service.NewWorkspaceService(workspaceRepo, bookService, activityRepo, realtime.NoOpBroadcaster{}, columns, log, nil)
	activityService := service.NewActivityService(activityRepo)
	noteService := service.NewNoteService(noteRepo, realtime.NoOpBroadcaster{}, log)

	workspaceHandler := NewWorkspaceHandler(workspaceService)
	activityHandler := NewActivityHandler(activityService)
	noteHandler := NewNoteHandler(noteService)

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_name", "dana")
		c.Next()
	})

	api := router.Group("/api/workspaces")
	{
		api.POST("", workspaceHandler.CreateWorkspace)
		api.GET("", workspaceHandler.ListWorkspaces)
		api.GET("/:workspaceId", workspaceHandler.GetWorkspace)
		api.DELETE("/:workspaceId", workspaceHandler.DeleteWorkspace)
		api.POST("/:workspaceId/cards", workspaceHandler.AddCard)
		api.PUT("/:workspaceId/cards/move", workspaceHandler.MoveCard)
		api.DELETE("/:workspaceId/columns/:columnId/cards/:cardId", workspaceHandler.DeleteCard)
		api.GET("/:workspaceId/activity", activityHandler.ListActivity)
	}

	notes := router.Group("/api/notes")
	{
		notes.GET("/book/:volumeId", noteHandler.ListNotesByBook)
		notes.POST("", noteHandler.CreateNote)
		notes.PATCH("/:noteId", noteHandler.UpdateNote)
		notes.DELETE("/:noteId", noteHandler.DeleteNote)
	}

	return &testEnv{router: router, userID: userID}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func (e *testEnv) createWorkspace(t *testing.T) dto.WorkspaceResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/workspaces", dto.CreateWorkspaceRequest{Name: "Thesis"})
	require.Equal(t, http.StatusCreated, w.Code)
	var workspace dto.WorkspaceResponse
	decodeData(t, w, &workspace)
	return workspace
}

func TestWorkspaceLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	workspace := env.createWorkspace(t)
	assert.Equal(t, env.userID, workspace.OwnerID)
	require.Len(t, workspace.Columns, 3)

	w := env.do(t, http.MethodGet, "/api/workspaces", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/workspaces/"+workspace.WorkspaceID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/workspaces/"+workspace.WorkspaceID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/workspaces/"+workspace.WorkspaceID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWorkspace_InvalidID(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/workspaces/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCard_CreatedThenDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)
	path := fmt.Sprintf("/api/workspaces/%s/cards", workspace.WorkspaceID)

	req := dto.AddCardRequest{ColumnID: "to-read", BookID: "vol-1"}

	w := env.do(t, http.MethodPost, path, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var result dto.AddCardResponse
	decodeData(t, w, &result)
	assert.False(t, result.Duplicate)
	require.NotNil(t, result.Card)
	assert.Equal(t, "Stub Title", result.Card.Title)

	// Same book into a different column is still a duplicate
	req.ColumnID = "reading"
	w = env.do(t, http.MethodPost, path, req)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &result)
	assert.True(t, result.Duplicate)
	assert.Nil(t, result.Card)
	assert.Len(t, result.Workspace.Columns[0].Cards, 1)
	assert.Empty(t, result.Workspace.Columns[1].Cards)
}

func TestAddCard_UnknownColumn(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)

	w := env.do(t, http.MethodPost,
		fmt.Sprintf("/api/workspaces/%s/cards", workspace.WorkspaceID),
		dto.AddCardRequest{ColumnID: "archive", BookID: "vol-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_COLUMN")
}

func TestMoveCard_EndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)
	cardsPath := fmt.Sprintf("/api/workspaces/%s/cards", workspace.WorkspaceID)

	for _, bookID := range []string{"vol-1", "vol-2"} {
		w := env.do(t, http.MethodPost, cardsPath, dto.AddCardRequest{ColumnID: "to-read", BookID: bookID})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	from, to := 0, 99
	w := env.do(t, http.MethodPut, cardsPath+"/move", dto.MoveCardRequest{
		FromColumnID: "to-read",
		ToColumnID:   "reading",
		FromIndex:    &from,
		ToIndex:      &to,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var moved dto.WorkspaceResponse
	decodeData(t, w, &moved)
	assert.Len(t, moved.Columns[0].Cards, 1)
	// Out-of-range destination indices append at the end
	require.Len(t, moved.Columns[1].Cards, 1)
}

func TestMoveCard_SourceIndexOutOfRange(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)

	from, to := 5, 0
	w := env.do(t, http.MethodPut,
		fmt.Sprintf("/api/workspaces/%s/cards/move", workspace.WorkspaceID),
		dto.MoveCardRequest{
			FromColumnID: "to-read",
			ToColumnID:   "reading",
			FromIndex:    &from,
			ToIndex:      &to,
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INDEX_OUT_OF_RANGE")
}

func TestMoveCard_MissingIndicesRejected(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)

	w := env.do(t, http.MethodPut,
		fmt.Sprintf("/api/workspaces/%s/cards/move", workspace.WorkspaceID),
		map[string]string{"fromColumnId": "to-read", "toColumnId": "reading"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCard_EndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)
	cardsPath := fmt.Sprintf("/api/workspaces/%s/cards", workspace.WorkspaceID)

	w := env.do(t, http.MethodPost, cardsPath, dto.AddCardRequest{ColumnID: "to-read", BookID: "vol-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var added dto.AddCardResponse
	decodeData(t, w, &added)

	w = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/workspaces/%s/columns/to-read/cards/%s", workspace.WorkspaceID, added.Card.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var afterDelete dto.WorkspaceResponse
	decodeData(t, w, &afterDelete)
	assert.Empty(t, afterDelete.Columns[0].Cards)

	w = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/workspaces/%s/columns/to-read/cards/%s", workspace.WorkspaceID, added.Card.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCard_UnknownColumnNotFound(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)

	w := env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/workspaces/%s/columns/archive/cards/card-1", workspace.WorkspaceID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestActivityFeed_RecordsCardEvents(t *testing.T) {
	env := setupTestEnv(t)
	workspace := env.createWorkspace(t)
	cardsPath := fmt.Sprintf("/api/workspaces/%s/cards", workspace.WorkspaceID)

	w := env.do(t, http.MethodPost, cardsPath, dto.AddCardRequest{ColumnID: "to-read", BookID: "vol-1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/workspaces/%s/activity", workspace.WorkspaceID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feed []dto.ActivityResponse
	decodeData(t, w, &feed)
	require.NotEmpty(t, feed)
	assert.Equal(t, "dana", feed[0].ActorName)
}
