package storage

import (
	"context"
	"fmt"

	"github.com/bluele/gcache"

	"bikeshare-stats/models"
	"bikeshare-stats/utils"
)

// CachedSource keeps the most recently loaded cities in memory so that
// re-running an analysis does not reload the file. Record sets are never
// modified after loading, so cached sets are shared between runs.
type CachedSource struct {
	inner  TripSource
	cache  gcache.Cache
	logger *utils.Logger
}

// NewCachedSource wraps inner with an LRU cache holding up to size cities.
func NewCachedSource(inner TripSource, size int, logger *utils.Logger) *CachedSource {
	if size < 1 {
		size = 1
	}
	return &CachedSource{
		inner:  inner,
		cache:  gcache.New(size).LRU().Build(),
		logger: logger,
	}
}

// Load returns the cached record set for city, loading it on a miss.
func (c *CachedSource) Load(ctx context.Context, city string) (*models.RecordSet, error) {
	if cached, err := c.cache.Get(city); err == nil {
		c.logger.Debug("[cache] hit for %s", city)
		return cached.(*models.RecordSet), nil
	}

	set, err := c.inner.Load(ctx, city)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(city, set); err != nil {
		return nil, fmt.Errorf("cache: store %s: %w", city, err)
	}
	return set, nil
}

// Close drops cached sets and closes the wrapped source.
func (c *CachedSource) Close() error {
	c.cache.Purge()
	return c.inner.Close()
}
