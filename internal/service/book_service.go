package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-board-api/internal/client"
	"workspace-board-api/internal/domain"
	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/metrics"
	"workspace-board-api/internal/repository"
	"workspace-board-api/internal/response"
)

// ResolvedBook is the service-level view of a catalog book, assembled from
// the cache table, the saved-book table, or a live catalog response
type ResolvedBook struct {
	GoogleBooksID    string
	Title            string
	Authors          []string
	Subjects         []string
	FirstPublishYear *int
	Pages            int
	CoverURL         string
	PreviewURL       string
	Description      string
	Readable         bool
}

// BookService defines the interface for catalog and saved-book logic
type BookService interface {
	Search(ctx context.Context, req *dto.SearchBooksRequest) (*dto.SearchBooksResponse, error)
	Resolve(ctx context.Context, googleID string) (*ResolvedBook, error)
	FindSaved(ctx context.Context, id uuid.UUID) (*ResolvedBook, error)
	SaveBook(ctx context.Context, req *dto.SaveBookRequest) (*dto.SavedBookResponse, error)
	ListSavedBooks(ctx context.Context, limit, offset int) ([]*dto.SavedBookResponse, error)
	CacheStats(ctx context.Context) (*repository.CacheStats, error)
}

// bookServiceImpl is the implementation of BookService
type bookServiceImpl struct {
	catalog        client.CatalogClient
	bookRepo       repository.BookRepository
	cacheRepo      repository.BookCacheRepository
	redisClient    *redis.Client
	cacheTTL       time.Duration
	searchCacheTTL time.Duration
	logger         *zap.Logger
	metrics        *metrics.Metrics
}

// NewBookService creates a new instance of BookService. redisClient may be
// nil, in which case search results are never cached.
func NewBookService(
	catalog client.CatalogClient,
	bookRepo repository.BookRepository,
	cacheRepo repository.BookCacheRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	searchCacheTTL time.Duration,
	logger *zap.Logger,
	m *metrics.Metrics,
) BookService {
	return &bookServiceImpl{
		catalog:        catalog,
		bookRepo:       bookRepo,
		cacheRepo:      cacheRepo,
		redisClient:    redisClient,
		cacheTTL:       cacheTTL,
		searchCacheTTL: searchCacheTTL,
		logger:         logger,
		metrics:        m,
	}
}

// Search queries the catalog, serving repeated queries from redis
func (s *bookServiceImpl) Search(ctx context.Context, req *dto.SearchBooksRequest) (*dto.SearchBooksResponse, error) {
	cacheKey := searchCacheKey(req)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp dto.SearchBooksResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				resp.FromCache = true
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Search cache read failed", zap.Error(err))
		}
	}

	result, err := s.catalog.Search(ctx, req.Query, req.MaxResults)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Catalog search failed", err.Error())
	}

	books := make([]dto.BookResult, 0, len(result.Items))
	for _, item := range result.Items {
		book := volumeToResult(&item)
		if !matchesFilters(&book, req) {
			continue
		}
		books = append(books, book)
	}

	resp := &dto.SearchBooksResponse{
		Query:      req.Query,
		TotalItems: result.TotalItems,
		Books:      books,
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(resp)
		if err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, s.searchCacheTTL).Err(); err != nil {
				s.logger.Warn("Search cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// Resolve returns a catalog book by volume id, cache table first
func (s *bookServiceImpl) Resolve(ctx context.Context, googleID string) (*ResolvedBook, error) {
	entry, err := s.cacheRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		s.logger.Warn("Catalog cache lookup failed", zap.Error(err))
	}
	if entry != nil {
		if s.metrics != nil {
			s.metrics.IncrementCatalogCacheHit()
		}
		if err := s.cacheRepo.IncrementHit(ctx, googleID); err != nil {
			s.logger.Warn("Failed to bump cache hit counter", zap.Error(err))
		}
		return cacheEntryToResolved(entry), nil
	}

	if s.metrics != nil {
		s.metrics.IncrementCatalogCacheMiss()
	}

	volume, err := s.catalog.GetVolume(ctx, googleID)
	if err != nil {
		if errors.Is(err, client.ErrVolumeNotFound) {
			return nil, response.NewNotFoundError("Book not found in catalog", googleID)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Catalog lookup failed", err.Error())
	}

	resolved := volumeToResolved(volume)
	s.storeCacheEntry(ctx, resolved)
	return resolved, nil
}

// FindSaved returns a saved book by its row id
func (s *bookServiceImpl) FindSaved(ctx context.Context, id uuid.UUID) (*ResolvedBook, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Saved book not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch saved book", err.Error())
	}
	return savedToResolved(book), nil
}

// SaveBook stores a book in the library. Saving the same catalog book twice
// returns the existing row.
func (s *bookServiceImpl) SaveBook(ctx context.Context, req *dto.SaveBookRequest) (*dto.SavedBookResponse, error) {
	existing, err := s.bookRepo.FindByGoogleID(ctx, req.GoogleBooksID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for saved book", err.Error())
	}
	if existing != nil {
		return savedToResponse(existing), nil
	}

	book := &domain.Book{
		GoogleBooksID:    req.GoogleBooksID,
		Title:            req.Title,
		FirstPublishYear: req.FirstPublishYear,
		CoverURL:         req.CoverURL,
		PreviewURL:       req.PreviewURL,
		Description:      req.Description,
		Readable:         req.Readable,
	}
	if book.Authors, err = json.Marshal(req.Authors); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode authors", err.Error())
	}
	if book.Subjects, err = json.Marshal(req.Subjects); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode subjects", err.Error())
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save book", err.Error())
	}

	s.logger.Info("Book saved",
		zap.String("bookId", book.ID.String()),
		zap.String("googleBooksId", book.GoogleBooksID),
	)
	return savedToResponse(book), nil
}

// ListSavedBooks lists the saved library, newest first
func (s *bookServiceImpl) ListSavedBooks(ctx context.Context, limit, offset int) ([]*dto.SavedBookResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	books, err := s.bookRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list saved books", err.Error())
	}

	responses := make([]*dto.SavedBookResponse, len(books))
	for i, book := range books {
		responses[i] = savedToResponse(book)
	}
	return responses, nil
}

// CacheStats reports the state of the catalog cache table
func (s *bookServiceImpl) CacheStats(ctx context.Context) (*repository.CacheStats, error) {
	stats, err := s.cacheRepo.Stats(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to read cache stats", err.Error())
	}
	return stats, nil
}

// storeCacheEntry writes a resolved volume into the cache table.
// Failures are logged and ignored.
func (s *bookServiceImpl) storeCacheEntry(ctx context.Context, resolved *ResolvedBook) {
	entry := &domain.BookCache{
		GoogleBooksID:    resolved.GoogleBooksID,
		Title:            resolved.Title,
		FirstPublishYear: resolved.FirstPublishYear,
		Pages:            resolved.Pages,
		CoverURL:         resolved.CoverURL,
		Description:      resolved.Description,
		ExpiresAt:        time.Now().Add(s.cacheTTL),
	}
	entry.Authors, _ = json.Marshal(resolved.Authors)
	entry.Subjects, _ = json.Marshal(resolved.Subjects)

	if err := s.cacheRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to store catalog cache entry",
			zap.String("googleBooksId", resolved.GoogleBooksID),
			zap.Error(err),
		)
	}
}

func searchCacheKey(req *dto.SearchBooksRequest) string {
	readable := ""
	if req.Readable != nil {
		readable = strconv.FormatBool(*req.Readable)
	}
	raw := fmt.Sprintf("%s|%d|%d|%d|%s|%s",
		req.Query, req.MaxResults, req.YearFrom, req.YearTo, req.Subject, readable)
	sum := sha256.Sum256([]byte(raw))
	return "booksearch:" + hex.EncodeToString(sum[:16])
}

func matchesFilters(book *dto.BookResult, req *dto.SearchBooksRequest) bool {
	if req.YearFrom > 0 && (book.FirstPublishYear == nil || *book.FirstPublishYear < req.YearFrom) {
		return false
	}
	if req.YearTo > 0 && (book.FirstPublishYear == nil || *book.FirstPublishYear > req.YearTo) {
		return false
	}
	if req.Subject != "" {
		found := false
		for _, subject := range book.Subjects {
			if strings.EqualFold(subject, req.Subject) ||
				strings.Contains(strings.ToLower(subject), strings.ToLower(req.Subject)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if req.Readable != nil && book.Readable != *req.Readable {
		return false
	}
	return true
}

func volumeToResult(volume *client.Volume) dto.BookResult {
	result := dto.BookResult{
		GoogleBooksID: volume.ID,
		Title:         volume.VolumeInfo.Title,
		Authors:       volume.VolumeInfo.Authors,
		Subjects:      volume.VolumeInfo.Categories,
		PreviewURL:    volume.VolumeInfo.PreviewLink,
		Description:   volume.VolumeInfo.Description,
		Readable:      volume.VolumeInfo.PreviewLink != "",
	}
	if volume.VolumeInfo.ImageLinks != nil {
		result.CoverURL = volume.VolumeInfo.ImageLinks.Thumbnail
	}
	if year := parseYear(volume.VolumeInfo.PublishedDate); year > 0 {
		result.FirstPublishYear = &year
	}
	return result
}

func volumeToResolved(volume *client.Volume) *ResolvedBook {
	resolved := &ResolvedBook{
		GoogleBooksID: volume.ID,
		Title:         volume.VolumeInfo.Title,
		Authors:       volume.VolumeInfo.Authors,
		Subjects:      volume.VolumeInfo.Categories,
		PreviewURL:    volume.VolumeInfo.PreviewLink,
		Description:   volume.VolumeInfo.Description,
		Readable:      volume.VolumeInfo.PreviewLink != "",
	}
	if volume.VolumeInfo.ImageLinks != nil {
		resolved.CoverURL = volume.VolumeInfo.ImageLinks.Thumbnail
	}
	if year := parseYear(volume.VolumeInfo.PublishedDate); year > 0 {
		resolved.FirstPublishYear = &year
	}
	return resolved
}

func cacheEntryToResolved(entry *domain.BookCache) *ResolvedBook {
	resolved := &ResolvedBook{
		GoogleBooksID:    entry.GoogleBooksID,
		Title:            entry.Title,
		FirstPublishYear: entry.FirstPublishYear,
		Pages:            entry.Pages,
		CoverURL:         entry.CoverURL,
		Description:      entry.Description,
	}
	_ = json.Unmarshal(entry.Authors, &resolved.Authors)
	_ = json.Unmarshal(entry.Subjects, &resolved.Subjects)
	return resolved
}

func savedToResolved(book *domain.Book) *ResolvedBook {
	resolved := &ResolvedBook{
		GoogleBooksID:    book.GoogleBooksID,
		Title:            book.Title,
		FirstPublishYear: book.FirstPublishYear,
		Pages:            book.Pages,
		CoverURL:         book.CoverURL,
		PreviewURL:       book.PreviewURL,
		Description:      book.Description,
		Readable:         book.Readable,
	}
	_ = json.Unmarshal(book.Authors, &resolved.Authors)
	_ = json.Unmarshal(book.Subjects, &resolved.Subjects)
	return resolved
}

func savedToResponse(book *domain.Book) *dto.SavedBookResponse {
	resp := &dto.SavedBookResponse{
		ID:               book.ID,
		GoogleBooksID:    book.GoogleBooksID,
		Title:            book.Title,
		FirstPublishYear: book.FirstPublishYear,
		CoverURL:         book.CoverURL,
		PreviewURL:       book.PreviewURL,
		Description:      book.Description,
		Readable:         book.Readable,
		CreatedAt:        book.CreatedAt,
	}
	_ = json.Unmarshal(book.Authors, &resp.Authors)
	_ = json.Unmarshal(book.Subjects, &resp.Subjects)
	return resp
}

// parseYear extracts the year from a catalog publishedDate, which may be
// "2006", "2006-01", or "2006-01-02"
func parseYear(publishedDate string) int {
	if len(publishedDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(publishedDate[:4])
	if err != nil {
		return 0
	}
	return year
}
