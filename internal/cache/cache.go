package cache

// #region imports
import (
	"fmt"
	"sync"
	"time"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region entry

// Entry is a cached decision with its insertion time.
type Entry struct {
	Mode       decision.Mode
	InsertedAt time.Time
}

// #endregion

// #region cache

// Cache is a bounded, thread-safe key→decision memo. The capacity policy
// is first-N-wins: once full, new entries are rejected rather than an old
// one evicted. This matches the long-run hit distribution the thresholds
// were tuned against; LRU eviction would change it.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]Entry
	capacity int
}

// New creates a cache with the given capacity. Capacity must be positive.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	return &Cache{
		entries:  make(map[string]Entry, capacity),
		capacity: capacity,
	}, nil
}

// #endregion

// #region operations

// Get returns the entry for key, if present.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put stores mode under key. At capacity the write is silently dropped
// unless the key is already present, in which case it is refreshed.
func (c *Cache) Put(key string, mode decision.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		return
	}
	c.entries[key] = Entry{Mode: mode, InsertedAt: time.Now()}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cache. Operational reset only, never part of the
// decision flow.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry, c.capacity)
}

// #endregion
