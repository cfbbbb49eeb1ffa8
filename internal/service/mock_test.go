package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-board-api/internal/client"
	"workspace-board-api/internal/domain"
	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/realtime"
	"workspace-board-api/internal/repository"
)

// MockWorkspaceRepository is a mock implementation of WorkspaceRepository
type MockWorkspaceRepository struct {
	CreateFunc        func(ctx context.Context, workspace *domain.Workspace) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	FindByOwnerFunc   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Workspace, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	UpdateColumnsFunc func(ctx context.Context, id uuid.UUID, mutate func(columns []domain.Column) ([]domain.Column, error)) (*domain.Workspace, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, workspace)
	}
	return nil
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockWorkspaceRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Workspace, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockWorkspaceRepository) UpdateColumns(ctx context.Context, id uuid.UUID, mutate func(columns []domain.Column) ([]domain.Column, error)) (*domain.Workspace, error) {
	if m.UpdateColumnsFunc != nil {
		return m.UpdateColumnsFunc(ctx, id, mutate)
	}
	return nil, nil
}

func (m *MockWorkspaceRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockBookService is a mock implementation of BookService
type MockBookService struct {
	SearchFunc         func(ctx context.Context, req *dto.SearchBooksRequest) (*dto.SearchBooksResponse, error)
	ResolveFunc        func(ctx context.Context, googleID string) (*ResolvedBook, error)
	FindSavedFunc      func(ctx context.Context, id uuid.UUID) (*ResolvedBook, error)
	SaveBookFunc       func(ctx context.Context, req *dto.SaveBookRequest) (*dto.SavedBookResponse, error)
	ListSavedBooksFunc func(ctx context.Context, limit, offset int) ([]*dto.SavedBookResponse, error)
	CacheStatsFunc     func(ctx context.Context) (*repository.CacheStats, error)
}

func (m *MockBookService) Search(ctx context.Context, req *dto.SearchBooksRequest) (*dto.SearchBooksResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockBookService) Resolve(ctx context.Context, googleID string) (*ResolvedBook, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, googleID)
	}
	return &ResolvedBook{GoogleBooksID: googleID, Title: "Resolved"}, nil
}

func (m *MockBookService) FindSaved(ctx context.Context, id uuid.UUID) (*ResolvedBook, error) {
	if m.FindSavedFunc != nil {
		return m.FindSavedFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookService) SaveBook(ctx context.Context, req *dto.SaveBookRequest) (*dto.SavedBookResponse, error) {
	if m.SaveBookFunc != nil {
		return m.SaveBookFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockBookService) ListSavedBooks(ctx context.Context, limit, offset int) ([]*dto.SavedBookResponse, error) {
	if m.ListSavedBooksFunc != nil {
		return m.ListSavedBooksFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockBookService) CacheStats(ctx context.Context) (*repository.CacheStats, error) {
	if m.CacheStatsFunc != nil {
		return m.CacheStatsFunc(ctx)
	}
	return nil, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateFunc            func(ctx context.Context, entry *domain.ActivityLog) error
	FindByWorkspaceFunc   func(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.ActivityLog, error)
	DeleteByWorkspaceFunc func(ctx context.Context, workspaceID uuid.UUID) error
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockActivityRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.ActivityLog, error) {
	if m.FindByWorkspaceFunc != nil {
		return m.FindByWorkspaceFunc(ctx, workspaceID, limit, offset)
	}
	return nil, nil
}

func (m *MockActivityRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	if m.DeleteByWorkspaceFunc != nil {
		return m.DeleteByWorkspaceFunc(ctx, workspaceID)
	}
	return nil
}

// RecordingBroadcaster captures broadcast calls for assertions
type RecordingBroadcaster struct {
	mu          sync.Mutex
	Snapshots   []interface{}
	BookAdds    []realtime.BookAddedNotice
	Workspaces  []uuid.UUID
	NoteEvents  []string
	NoteNotices []realtime.NoteNotice
}

func (b *RecordingBroadcaster) BroadcastWorkspace(workspaceID uuid.UUID, snapshot interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Workspaces = append(b.Workspaces, workspaceID)
	b.Snapshots = append(b.Snapshots, snapshot)
}

func (b *RecordingBroadcaster) BroadcastBookAdded(workspaceID uuid.UUID, notice realtime.BookAddedNotice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.BookAdds = append(b.BookAdds, notice)
}

func (b *RecordingBroadcaster) BroadcastNote(workspaceID uuid.UUID, event string, notice realtime.NoteNotice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.NoteEvents = append(b.NoteEvents, event)
	b.NoteNotices = append(b.NoteNotices, notice)
	b.Workspaces = append(b.Workspaces, workspaceID)
}

func (b *RecordingBroadcaster) SnapshotCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Snapshots)
}

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	CreateFunc     func(ctx context.Context, note *domain.ResearchNote) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.ResearchNote, error)
	FindByBookFunc func(ctx context.Context, googleID string, limit, offset int) ([]*domain.ResearchNote, error)
	UpdateFunc     func(ctx context.Context, note *domain.ResearchNote) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockNoteRepository) Create(ctx context.Context, note *domain.ResearchNote) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, note)
	}
	return nil
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResearchNote, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockNoteRepository) FindByBook(ctx context.Context, googleID string, limit, offset int) ([]*domain.ResearchNote, error) {
	if m.FindByBookFunc != nil {
		return m.FindByBookFunc(ctx, googleID, limit, offset)
	}
	return nil, nil
}

func (m *MockNoteRepository) Update(ctx context.Context, note *domain.ResearchNote) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, note)
	}
	return nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCatalogClient is a mock implementation of client.CatalogClient
type MockCatalogClient struct {
	GetVolumeFunc func(ctx context.Context, volumeID string) (*client.Volume, error)
	SearchFunc    func(ctx context.Context, query string, maxResults int) (*client.SearchResult, error)
}

func (m *MockCatalogClient) GetVolume(ctx context.Context, volumeID string) (*client.Volume, error) {
	if m.GetVolumeFunc != nil {
		return m.GetVolumeFunc(ctx, volumeID)
	}
	return nil, client.ErrVolumeNotFound
}

func (m *MockCatalogClient) Search(ctx context.Context, query string, maxResults int) (*client.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, maxResults)
	}
	return &client.SearchResult{}, nil
}

// MockBookRepository is a mock implementation of BookRepository
type MockBookRepository struct {
	CreateFunc         func(ctx context.Context, book *domain.Book) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	FindByGoogleIDFunc func(ctx context.Context, googleID string) (*domain.Book, error)
	FindAllFunc        func(ctx context.Context, limit, offset int) ([]*domain.Book, error)
	UpdateFunc         func(ctx context.Context, book *domain.Book) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, book)
	}
	return nil
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockBookRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.Book, error) {
	if m.FindByGoogleIDFunc != nil {
		return m.FindByGoogleIDFunc(ctx, googleID)
	}
	return nil, nil
}

func (m *MockBookRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Book, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockBookRepository) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, book)
	}
	return nil
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockBookCacheRepository is a mock implementation of BookCacheRepository
type MockBookCacheRepository struct {
	CreateFunc         func(ctx context.Context, entry *domain.BookCache) error
	FindByGoogleIDFunc func(ctx context.Context, googleID string) (*domain.BookCache, error)
	IncrementHitFunc   func(ctx context.Context, googleID string) error
	DeleteExpiredFunc  func(ctx context.Context) (int64, error)
	StatsFunc          func(ctx context.Context) (*repository.CacheStats, error)
}

func (m *MockBookCacheRepository) Create(ctx context.Context, entry *domain.BookCache) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockBookCacheRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.BookCache, error) {
	if m.FindByGoogleIDFunc != nil {
		return m.FindByGoogleIDFunc(ctx, googleID)
	}
	return nil, nil
}

func (m *MockBookCacheRepository) IncrementHit(ctx context.Context, googleID string) error {
	if m.IncrementHitFunc != nil {
		return m.IncrementHitFunc(ctx, googleID)
	}
	return nil
}

func (m *MockBookCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

func (m *MockBookCacheRepository) Stats(ctx context.Context) (*repository.CacheStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &repository.CacheStats{}, nil
}
