package tracker

import (
	"sync"
	"time"
)

// InMemoryAccessTracker implements AccessTracker using an in-memory map.
// State does not survive a restart; files unknown to the tracker fall back
// to modification-time checks during the sweep.
type InMemoryAccessTracker struct {
	mu          sync.RWMutex
	accessTimes map[string]time.Time
}

// NewInMemoryAccessTracker creates a new InMemoryAccessTracker.
func NewInMemoryAccessTracker() *InMemoryAccessTracker {
	return &InMemoryAccessTracker{accessTimes: make(map[string]time.Time)}
}

// Update sets the last access time for the given name to now.
func (t *InMemoryAccessTracker) Update(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.accessTimes[name] = time.Now()
}

// GetLastAccessed retrieves the last access time for the given name.
func (t *InMemoryAccessTracker) GetLastAccessed(name string) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ts, found := t.accessTimes[name]
	return ts, found
}

// Remove deletes the tracking information for the given name.
func (t *InMemoryAccessTracker) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.accessTimes, name)
}
