package eval

import (
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Rough cost in bytes of a single map entry, including bucket overhead.
const entrySize = 48

const (
	minCacheEntries = 1 << 12
	maxCacheEntries = 1 << 24
)

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

// Cache memoizes static evaluations by board digest. Entries are keyed on
// board contents only. Once the cache holds maxEntries positions, new
// positions are evaluated but not stored.
type Cache struct {
	TableLock
	table      map[uint64]float64
	maxEntries int

	lookups  atomic.Uint64
	hits     atomic.Uint64
	created  atomic.Uint64
	rejected atomic.Uint64
}

// CacheStats is a snapshot of the cache counters since the last Clear.
type CacheStats struct {
	Entries  int    `yaml:"entries"`
	Lookups  uint64 `yaml:"lookups"`
	Hits     uint64 `yaml:"hits"`
	Created  uint64 `yaml:"created"`
	Rejected uint64 `yaml:"rejected"`
}

func (s CacheStats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}

// NewCache returns a single-threaded cache holding at most maxEntries
// positions. A non-positive maxEntries is replaced by the minimum size.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = minCacheEntries
	}
	return &Cache{
		TableLock:  &FakeLock{},
		table:      make(map[uint64]float64, min(maxEntries, minCacheEntries)),
		maxEntries: maxEntries,
	}
}

// MaxEntriesForMemory sizes a cache to use roughly fractionOfMemory of the
// machine's physical memory.
func MaxEntriesForMemory(fractionOfMemory float64) int {
	totalMem := memory.TotalMemory()
	desired := fractionOfMemory * float64(totalMem) / entrySize
	n := int(desired)
	if n < minCacheEntries {
		n = minCacheEntries
	}
	if n > maxCacheEntries {
		n = maxCacheEntries
	}
	log.Debug().Int("max-entries", n).
		Float64("desired-num-elems", desired).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("eval-cache-size")
	return n
}

// NewCacheForMemory is NewCache(MaxEntriesForMemory(fractionOfMemory)).
func NewCacheForMemory(fractionOfMemory float64) *Cache {
	return NewCache(MaxEntriesForMemory(fractionOfMemory))
}

func (c *Cache) SetSingleThreadedMode() {
	c.TableLock = &FakeLock{}
}

func (c *Cache) SetMultiThreadedMode() {
	c.TableLock = new(sync.RWMutex)
}

func (c *Cache) MaxEntries() int {
	return c.maxEntries
}

func (c *Cache) Lookup(key uint64) (float64, bool) {
	c.RLock()
	defer c.RUnlock()
	c.lookups.Add(1)
	v, ok := c.table[key]
	if ok {
		c.hits.Add(1)
	}
	return v, ok
}

// Store records a score. It reports false if the cache is full.
func (c *Cache) Store(key uint64, score float64) bool {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.table[key]; !ok && len(c.table) >= c.maxEntries {
		c.rejected.Add(1)
		return false
	}
	c.table[key] = score
	c.created.Add(1)
	return true
}

func (c *Cache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.table)
}

// Clear drops every entry and zeroes the counters.
func (c *Cache) Clear() {
	c.Lock()
	defer c.Unlock()
	clear(c.table)
	c.lookups.Store(0)
	c.hits.Store(0)
	c.created.Store(0)
	c.rejected.Store(0)
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries:  c.Len(),
		Lookups:  c.lookups.Load(),
		Hits:     c.hits.Load(),
		Created:  c.created.Load(),
		Rejected: c.rejected.Load(),
	}
}
