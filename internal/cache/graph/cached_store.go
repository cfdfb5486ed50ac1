// Package graph adds a read-through LRU in front of a snapshot store, so
// repeated reads of the same snapshot (e.g. comparing stages after a run)
// skip the origin.
package graph

import (
	"context"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	graphrepo "codeatlas/internal/repository/graph"
	"codeatlas/internal/types"
)

type Store = graphrepo.Store

const defaultMaxEntries = 256

type MetricsSnapshot struct {
	Hits           uint64
	Misses         uint64
	OriginReads    uint64
	OriginWrites   uint64
	OriginReadErr  uint64
	OriginWriteErr uint64
}

type metrics struct {
	hits           atomic.Uint64
	misses         atomic.Uint64
	originReads    atomic.Uint64
	originWrites   atomic.Uint64
	originReadErr  atomic.Uint64
	originWriteErr atomic.Uint64
}

type CachedStore struct {
	origin  Store
	cache   *lru.Cache[string, types.ComponentGraph]
	metrics metrics
}

func NewCachedStore(origin Store, maxEntries int) (*CachedStore, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	cache, err := lru.New[string, types.ComponentGraph](maxEntries)
	if err != nil {
		return nil, err
	}
	return &CachedStore{origin: origin, cache: cache}, nil
}

func (s *CachedStore) Put(ctx context.Context, projectID, stage string, g types.ComponentGraph) error {
	s.metrics.originWrites.Add(1)
	if err := s.origin.Put(ctx, projectID, stage, g); err != nil {
		s.metrics.originWriteErr.Add(1)
		return err
	}
	s.cache.Add(snapshotCacheKey(projectID, stage), g)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, projectID, stage string) (types.ComponentGraph, error) {
	key := snapshotCacheKey(projectID, stage)
	if g, ok := s.cache.Get(key); ok {
		s.metrics.hits.Add(1)
		return g, nil
	}
	s.metrics.misses.Add(1)
	s.metrics.originReads.Add(1)

	g, err := s.origin.Get(ctx, projectID, stage)
	if err != nil {
		s.metrics.originReadErr.Add(1)
		return types.ComponentGraph{}, err
	}
	s.cache.Add(key, g)
	return g, nil
}

// List always hits the origin; stage listings are cheap and mutate often.
func (s *CachedStore) List(ctx context.Context, projectID string) ([]string, error) {
	s.metrics.originReads.Add(1)
	return s.origin.List(ctx, projectID)
}

func (s *CachedStore) Metrics() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		Hits:           s.metrics.hits.Load(),
		Misses:         s.metrics.misses.Load(),
		OriginReads:    s.metrics.originReads.Load(),
		OriginWrites:   s.metrics.originWrites.Load(),
		OriginReadErr:  s.metrics.originReadErr.Load(),
		OriginWriteErr: s.metrics.originWriteErr.Load(),
	}
}

func snapshotCacheKey(projectID, stage string) string {
	return strings.TrimSpace(projectID) + "/" + strings.TrimSpace(stage)
}
