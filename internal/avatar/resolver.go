package avatar

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/userpeek/userpeek/internal/platform"
)

// HeadshotFetcher is the slice of the platform client the resolver
// needs. Satisfied by *platform.Client.
type HeadshotFetcher interface {
	AvatarHeadshots(ctx context.Context, ids []int64, size, format string) ([]platform.Headshot, error)
}

// Config configures a Resolver.
type Config struct {
	// Size is the requested headshot size, e.g. "150x150".
	Size string
	// Format is the requested image format, e.g. "Png".
	Format string
	// PlaceholderURL is returned for ids with no cached thumbnail.
	PlaceholderURL string
}

// Resolver fetches avatar thumbnails in batches and merges them into
// the session cache. Fetch failures are logged and swallowed: callers
// always get a usable URL from URL(), degrading to the placeholder.
type Resolver struct {
	fetcher HeadshotFetcher
	cache   *Cache
	cfg     Config
	logger  *slog.Logger
	group   singleflight.Group
}

// NewResolver creates a resolver around the given fetcher and cache.
// A nil logger falls back to slog.Default().
func NewResolver(fetcher HeadshotFetcher, cache *Cache, cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		fetcher: fetcher,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

// Resolve fetches thumbnails for the given ids in one batch request
// and merges completed entries into the cache. Only headshots in the
// Completed state carry a usable URL; pending or blocked entries stay
// absent so the placeholder shows until a later fetch fills them in.
//
// Errors are logged, never returned: a failed batch leaves the cache
// untouched and rendering degrades to placeholder imagery. Concurrent
// calls for the same id set collapse into one request.
func (r *Resolver) Resolve(ctx context.Context, ids []int64) {
	if len(ids) == 0 {
		return
	}

	key := batchKey(ids)
	_, _, _ = r.group.Do(key, func() (any, error) {
		shots, err := r.fetcher.AvatarHeadshots(ctx, ids, r.cfg.Size, r.cfg.Format)
		if err != nil {
			r.logger.Warn("avatar_fetch_failed",
				slog.Int("ids", len(ids)),
				slog.String("error", err.Error()),
			)
			return nil, nil
		}

		merged := make(map[int64]string, len(shots))
		for _, shot := range shots {
			if shot.State != platform.HeadshotStateCompleted || shot.ImageURL == "" {
				continue
			}
			merged[shot.TargetID] = shot.ImageURL
		}
		r.cache.Merge(merged)

		r.logger.Debug("avatar_fetch_complete",
			slog.Int("requested", len(ids)),
			slog.Int("resolved", len(merged)),
		)
		return nil, nil
	})
}

// URL returns the cached thumbnail URL for id, or the placeholder if
// the id has not resolved yet.
func (r *Resolver) URL(id int64) string {
	if url, ok := r.cache.Get(id); ok {
		return url
	}
	return r.cfg.PlaceholderURL
}

// Resolved reports whether id has a cached thumbnail.
func (r *Resolver) Resolved(id int64) bool {
	_, ok := r.cache.Get(id)
	return ok
}

// Cache exposes the underlying session cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// batchKey builds a stable singleflight key from an id set.
func batchKey(ids []int64) string {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
