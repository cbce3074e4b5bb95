package httpapi

import (
	"sync"

	"github.com/rhyrak/coursecsp/internal/csp"
)

// runCache holds the most recently solved instances, keyed by run ID,
// purely so the debug CSV export endpoint can look one up after the
// fact. It is not consulted by the solver and carries no timetabling
// state of its own — an instance is either in cache or it isn't; there
// is nothing here another request's search could observe or mutate.
//
// Bounded to capacity entries, evicting the oldest by insertion order,
// so a long-running server can't grow this unboundedly.
type runCache struct {
	mu       sync.Mutex
	order    []string
	entries  map[string]*csp.Instance
	capacity int
}

func newRunCache(capacity int) *runCache {
	return &runCache{
		entries:  make(map[string]*csp.Instance),
		capacity: capacity,
	}
}

func (c *runCache) put(runID string, inst *csp.Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[runID]; !exists {
		c.order = append(c.order, runID)
	}
	c.entries[runID] = inst

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *runCache) get(runID string) (*csp.Instance, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inst, ok := c.entries[runID]
	return inst, ok
}
