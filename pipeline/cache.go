package pipeline

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
)

// Cache caches compiled model pipelines per feature combination and target
// configuration.
//
// Pipeline creation is expensive because it involves shader composition and
// validation, and the feature space multiplies variants. The cache stores
// pipelines indexed by a hash of (features, configuration) so each variant
// is built once.
//
// Cache is safe for concurrent use. It uses RWMutex with double-check
// locking for efficient reads and safe writes, and tracks hit/miss
// statistics for performance monitoring.
type Cache struct {
	// mu protects the pipeline map.
	mu sync.RWMutex

	// pipelines stores model pipelines indexed by variant hash.
	pipelines map[uint64]*ModelPipeline

	// hits counts cache hits (atomic for lock-free reads).
	hits uint64

	// misses counts cache misses (atomic for lock-free reads).
	misses uint64
}

// NewCache creates an empty pipeline cache.
func NewCache() *Cache {
	return &Cache{
		pipelines: make(map[uint64]*ModelPipeline),
	}
}

// GetOrCreate returns the cached pipeline for the variant or creates it.
//
//  1. Fast path: RLock, check cache, return if found
//  2. Slow path: Lock, double-check, create if needed
func (c *Cache) GetOrCreate(device hal.Device, queue hal.Queue, features phong.FeatureSet, opts ...Option) (*ModelPipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	key := hashVariant(features, &cfg)

	// Fast path: read lock
	c.mu.RLock()
	if p, ok := c.pipelines[key]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.hits, 1)
		return p, nil
	}
	c.mu.RUnlock()

	// Slow path: write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pipelines[key]; ok {
		atomic.AddUint64(&c.hits, 1)
		return p, nil
	}

	p, err := NewModelPipeline(device, queue, features, opts...)
	if err != nil {
		return nil, err
	}

	c.pipelines[key] = p
	atomic.AddUint64(&c.misses, 1)

	return p, nil
}

// Stats returns the number of cache hits and misses.
// These values are read atomically and may not be perfectly synchronized.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// HitRate returns the cache hit rate as a fraction (0.0 to 1.0).
// Returns 0.0 if no requests have been made.
func (c *Cache) HitRate() float64 {
	hits := atomic.LoadUint64(&c.hits)
	misses := atomic.LoadUint64(&c.misses)
	total := hits + misses
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// Size returns the number of cached pipelines.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pipelines)
}

// DestroyAll destroys all cached pipelines and resets the cache.
func (c *Cache) DestroyAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.pipelines {
		if p != nil {
			p.Destroy()
		}
	}
	c.pipelines = make(map[uint64]*ModelPipeline)
	atomic.StoreUint64(&c.hits, 0)
	atomic.StoreUint64(&c.misses, 0)
}

// hashVariant computes an FNV-1a hash of everything that distinguishes one
// compiled pipeline variant from another.
func hashVariant(features phong.FeatureSet, cfg *config) uint64 {
	h := fnv.New64a()
	hashWriteUint32(h, uint32(features))
	hashWriteUint32(h, uint32(cfg.colorFormat))
	hashWriteUint32(h, uint32(cfg.depthFormat))
	hashWriteUint32(h, cfg.sampleCount)
	hashWriteUint32(h, uint32(cfg.cullMode))
	if cfg.useSPIRV {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// hashWriteUint32 writes a uint32 to the hash.
func hashWriteUint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}
