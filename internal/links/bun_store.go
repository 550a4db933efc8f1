package links

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-skillmd/internal/identity"
)

// BunStore persists probe records through go-repository-bun, optionally
// wrapped with a read-through repository cache.
type BunStore struct {
	repo repository.Repository[*LinkProbe]
}

func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache constructs a BunStore with optional caching. Both
// cacheService and keySerializer must be set for the cache layer to engage.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	base := NewLinkProbeRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunStore{repo: wrapped}
}

// Get retrieves the probe recorded for canonicalURL.
func (s *BunStore) Get(ctx context.Context, canonicalURL string) (*LinkProbe, error) {
	record, err := s.repo.GetByIdentifier(ctx, canonicalURL)
	if err != nil {
		return nil, mapRepositoryError(err, canonicalURL)
	}
	return record, nil
}

// Put stores a probe outcome, updating the existing row for the same
// canonical URL when one exists.
func (s *BunStore) Put(ctx context.Context, probe *LinkProbe) (*LinkProbe, error) {
	if probe.ID == uuid.Nil {
		probe.ID = identity.LinkProbeUUID(probe.CanonicalURL)
	}
	existing, err := s.repo.GetByIdentifier(ctx, probe.CanonicalURL)
	if err == nil && existing != nil {
		probe.ID = existing.ID
		record, err := s.repo.Update(ctx, probe)
		if err != nil {
			return nil, fmt.Errorf("link probe update: %w", err)
		}
		return record, nil
	}
	record, err := s.repo.Create(ctx, probe)
	if err != nil {
		return nil, fmt.Errorf("link probe create: %w", err)
	}
	return record, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("link probe repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
