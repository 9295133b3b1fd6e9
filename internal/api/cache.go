package api

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/table"
)

// TableSession is one client's comparison table: the ranked rows it was
// created with and the controller holding its sort and expansion state.
type TableSession struct {
	ID          string
	Location    crop.LocationData
	Environment crop.EnvironmentalData
	CreatedAt   time.Time

	mu      sync.Mutex
	ctrl    *table.Controller
	rows    []table.Row
	skipped []ranking.Skipped
}

// NewTableSession wraps ranked rows in a fresh controller.
func NewTableSession(id string, loc crop.LocationData, env crop.EnvironmentalData, r *ranking.Result, now time.Time) *TableSession {
	return &TableSession{
		ID:          id,
		Location:    loc,
		Environment: env,
		CreatedAt:   now.UTC(),
		ctrl:        table.NewController(),
		rows:        table.RowsFromScored(r.Crops),
		skipped:     r.Skipped,
	}
}

// tableView is the JSON shape of a session.
type tableView struct {
	ID          string                 `json:"id"`
	Location    crop.LocationData      `json:"location"`
	Environment crop.EnvironmentalData `json:"environment"`
	Sort        table.SortState        `json:"sort"`
	Expanded    []string               `json:"expanded"`
	Rows        []table.Row            `json:"rows"`
	Skipped     []ranking.Skipped      `json:"skipped,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// View renders the session under its lock.
func (s *TableSession) View() tableView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *TableSession) viewLocked() tableView {
	return tableView{
		ID:          s.ID,
		Location:    s.Location,
		Environment: s.Environment,
		Sort:        s.ctrl.Sort(),
		Expanded:    s.ctrl.Expanded(),
		Rows:        s.ctrl.View(s.rows),
		Skipped:     s.skipped,
		CreatedAt:   s.CreatedAt,
	}
}

// ToggleSort applies a sort toggle and returns the new view.
func (s *TableSession) ToggleSort(f table.Field) (tableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.ToggleSort(f); err != nil {
		return tableView{}, err
	}
	return s.viewLocked(), nil
}

// ToggleExpansion opens or closes a row. It reports false when the crop is
// not in the table.
func (s *TableSession) ToggleExpansion(cropID string) (tableView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, row := range s.rows {
		if row.Profile.ID == cropID {
			found = true
			break
		}
	}
	if !found {
		return tableView{}, false
	}
	s.ctrl.ToggleExpansion(cropID)
	return s.viewLocked(), true
}

// SessionCache is a thread-safe LRU cache of table sessions.
type SessionCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*TableSession
	order   []string // oldest first
}

// NewSessionCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 256.
func NewSessionCache(maxSize int) *SessionCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &SessionCache{
		maxSize: maxSize,
		entries: make(map[string]*TableSession),
	}
}

// NewSessionCacheFromEnv creates a cache with size from SESSION_CACHE_SIZE env var.
func NewSessionCacheFromEnv() *SessionCache {
	size := 256
	if v := os.Getenv("SESSION_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewSessionCache(size)
}

// Get retrieves a session from the cache, or nil if not found.
func (c *SessionCache) Get(id string) *TableSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[id]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(id)
	return s
}

// Put adds a session to the cache, evicting the oldest if full.
func (c *SessionCache) Put(s *TableSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[s.ID]; ok {
		c.entries[s.ID] = s
		c.moveToEnd(s.ID)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[s.ID] = s
	c.order = append(c.order, s.ID)
}

// Delete removes a session, reporting whether it existed.
func (c *SessionCache) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of cached sessions.
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *SessionCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
