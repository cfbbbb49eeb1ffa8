package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"workspace-board-api/internal/metrics"
)

// ErrVolumeNotFound is returned when the catalog has no volume for the requested ID
var ErrVolumeNotFound = errors.New("catalog volume not found")

// Volume is a single catalog entry
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo carries the descriptive fields of a catalog entry
type VolumeInfo struct {
	Title               string   `json:"title"`
	Authors             []string `json:"authors,omitempty"`
	PublishedDate       string   `json:"publishedDate,omitempty"`
	Description         string   `json:"description,omitempty"`
	Categories          []string `json:"categories,omitempty"`
	ImageLinks          *Images  `json:"imageLinks,omitempty"`
	PreviewLink         string   `json:"previewLink,omitempty"`
	TextSnippet         string   `json:"textSnippet,omitempty"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers,omitempty"`
}

// Images holds cover image URLs
type Images struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// SearchResult is the catalog response for a volume search
type SearchResult struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// CatalogClient defines the interface for external catalog communication
type CatalogClient interface {
	// GetVolume fetches a single volume by catalog ID
	GetVolume(ctx context.Context, volumeID string) (*Volume, error)
	// Search queries the catalog with a free-text query
	Search(ctx context.Context, query string, maxResults int) (*SearchResult, error)
}

// catalogClient implements CatalogClient against the Google Books API
type catalogClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewCatalogClient creates a new catalog API client
func NewCatalogClient(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger, m *metrics.Metrics) CatalogClient {
	return &catalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		logger:     logger,
		metrics:    m,
	}
}

// GetVolume fetches a single volume by catalog ID
func (c *catalogClient) GetVolume(ctx context.Context, volumeID string) (*Volume, error) {
	endpoint := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(volumeID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var volume Volume
	if err := json.Unmarshal(body, &volume); err != nil {
		return nil, fmt.Errorf("failed to decode catalog volume: %w", err)
	}
	return &volume, nil
}

// Search queries the catalog with a free-text query
func (c *catalogClient) Search(ctx context.Context, query string, maxResults int) (*SearchResult, error) {
	if maxResults <= 0 || maxResults > 40 {
		maxResults = 20
	}
	endpoint := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d",
		c.baseURL, url.QueryEscape(query), maxResults)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog search result: %w", err)
	}
	return &result, nil
}

// get performs a GET with retries. Only 429 responses are retried, with
// exponential backoff. All other failures are returned immediately.
func (c *catalogClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 500 * time.Millisecond
			c.logger.Warn("Catalog rate limited, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog request: %w", err)
		}

		startTime := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(startTime)

		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}
		if c.metrics != nil {
			c.metrics.RecordExternalAPICall(endpoint, http.MethodGet, statusCode, duration, err)
		}

		if err != nil {
			c.logger.Error("Catalog request failed",
				zap.Error(err),
				zap.Duration("duration", duration),
			)
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return nil, fmt.Errorf("failed to read catalog response: %w", readErr)
			}
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrVolumeNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("catalog rate limited (status %d)", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("catalog retries exhausted: %w", lastErr)
}
