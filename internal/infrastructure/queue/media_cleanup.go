// Package queue runs background media cleanup. Replaced avatars, discarded
// thumbnails, and images orphaned by failed writes are deleted from Cloudinary
// off the request path.
package queue

import (
	"context"
	"hash/fnv"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// MediaCleaner decorates a ports.ImageStorage: uploads pass through
// synchronously, deletions are enqueued to a fixed set of workers sharded by
// URL. Sharding keeps repeated deletions of the same asset ordered.
type MediaCleaner struct {
	storage ports.ImageStorage
	workers []chan string
	log     zerolog.Logger
}

// NewMediaCleaner wraps storage with numWorkers deletion workers. If
// numWorkers <= 0, defaultWorkers is used.
func NewMediaCleaner(storage ports.ImageStorage, numWorkers int, log zerolog.Logger) *MediaCleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	m := &MediaCleaner{
		storage: storage,
		workers: make([]chan string, numWorkers),
		log:     log,
	}
	for i := range m.workers {
		m.workers[i] = make(chan string, channelBuffer)
	}
	return m
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// deletions still queued at that point are lost, which is acceptable for
// best-effort cleanup.
func (m *MediaCleaner) Start(ctx context.Context) {
	for i, ch := range m.workers {
		go m.runWorker(ctx, i, ch)
	}
}

// Upload delegates to the wrapped storage unchanged.
func (m *MediaCleaner) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	return m.storage.Upload(ctx, file, folder)
}

// Delete enqueues the URL for background removal and returns immediately.
// When the responsible worker's buffer is full the deletion is dropped and
// logged rather than blocking the caller.
func (m *MediaCleaner) Delete(_ context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}
	select {
	case m.workers[m.shardIndex(fileURL)] <- fileURL:
	default:
		m.log.Warn().Str("url", fileURL).Msg("media cleanup queue full, dropping deletion")
	}
	return nil
}

// shardIndex maps a URL deterministically to a worker index.
func (m *MediaCleaner) shardIndex(fileURL string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fileURL))
	return int(h.Sum32()) % len(m.workers)
}

func (m *MediaCleaner) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case fileURL, ok := <-ch:
			if !ok {
				return
			}
			if err := m.storage.Delete(ctx, fileURL); err != nil {
				m.log.Error().Err(err).
					Str("url", fileURL).
					Int("worker_id", id).
					Msg("media deletion failed")
			}
		}
	}
}
