package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) CatalogClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCatalogClient(server.URL, 5*time.Second, maxRetries, zap.NewNop(), nil)
}

func TestGetVolume_DecodesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/zyTCAlFPjgYC", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "zyTCAlFPjgYC",
			"volumeInfo": {
				"title": "The Go Programming Language",
				"authors": ["Alan Donovan", "Brian Kernighan"],
				"publishedDate": "2015-11-16",
				"previewLink": "https://books.example/preview"
			}
		}`))
	}, 0)

	volume, err := c.GetVolume(context.Background(), "zyTCAlFPjgYC")
	require.NoError(t, err)

	assert.Equal(t, "zyTCAlFPjgYC", volume.ID)
	assert.Equal(t, "The Go Programming Language", volume.VolumeInfo.Title)
	assert.Len(t, volume.VolumeInfo.Authors, 2)
}

func TestGetVolume_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 3)

	_, err := c.GetVolume(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVolumeNotFound)
}

func TestGetVolume_RetriesOnRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id": "vol-1", "volumeInfo": {"title": "T"}}`))
	}, 2)

	volume, err := c.GetVolume(context.Background(), "vol-1")
	require.NoError(t, err)
	assert.Equal(t, "vol-1", volume.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetVolume_ServerErrorDoesNotRetry(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, 3)

	_, err := c.GetVolume(context.Background(), "vol-1")
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_BuildsQueryAndClampsMaxResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "golang concurrency", r.URL.Query().Get("q"))
		assert.Equal(t, "20", r.URL.Query().Get("maxResults"))
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"id": "vol-1", "volumeInfo": {"title": "Concurrency in Go"}}]
		}`))
	}, 0)

	result, err := c.Search(context.Background(), "golang concurrency", 500)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalItems)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Concurrency in Go", result.Items[0].VolumeInfo.Title)
}

func TestSearch_ContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, "anything", 10)
	assert.Error(t, err)
}
