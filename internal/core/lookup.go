package core

import (
	"context"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"go.uber.org/zap"
)

// RegistryCache stores registry metadata from earlier lookups.
type RegistryCache interface {
	SaveRegistryMods(mods []domain.RegistryMod) error
	GetRegistryMods(ids []string) ([]domain.RegistryMod, error)
}

// CachedLookup remembers successful registry answers and serves them when
// the registry cannot be reached.
type CachedLookup struct {
	remote RegistryLookup
	cache  RegistryCache
	log    *zap.SugaredLogger
}

// NewCachedLookup wraps remote with cache.
func NewCachedLookup(remote RegistryLookup, cache RegistryCache, log *zap.SugaredLogger) *CachedLookup {
	return &CachedLookup{remote: remote, cache: cache, log: logging.OrNop(log)}
}

// Lookup asks the remote registry first. On failure it returns whatever the
// cache holds together with the remote error.
func (c *CachedLookup) Lookup(ctx context.Context, ids []string) ([]domain.RegistryMod, error) {
	mods, err := c.remote.Lookup(ctx, ids)
	if err == nil {
		if cerr := c.cache.SaveRegistryMods(mods); cerr != nil {
			c.log.Warnw("caching registry metadata", "error", cerr)
		}
		return mods, nil
	}

	cached, cerr := c.cache.GetRegistryMods(ids)
	if cerr != nil {
		c.log.Warnw("reading registry cache", "error", cerr)
		return nil, err
	}
	c.log.Infow("registry unreachable, using cached metadata", "cached", len(cached), "requested", len(ids), "error", err)
	return cached, err
}
