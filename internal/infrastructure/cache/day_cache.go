package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

// DayCache is a read-through cache of parsed day ledgers in front of a
// LedgerStore. Only days before today are cached; today's ledger is still
// being appended to and is always read from the store.
type DayCache struct {
	store      ports.LedgerStore
	today      domain.Day
	maxEntries int
	logger     ports.Logger

	mu      sync.Mutex
	entries map[domain.Day]cacheEntry
}

type cacheEntry struct {
	events   []domain.RollEvent
	storedAt time.Time
}

// NewDayCache wraps store. maxEntries <= 0 uses DefaultDayCacheEntries.
func NewDayCache(store ports.LedgerStore, today domain.Day, maxEntries int, logger ports.Logger) *DayCache {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultDayCacheEntries
	}
	return &DayCache{
		store:      store,
		today:      today,
		maxEntries: maxEntries,
		logger:     logger,
		entries:    make(map[domain.Day]cacheEntry),
	}
}

// EnsureDay implements ports.LedgerStore.
func (c *DayCache) EnsureDay(ctx context.Context, day domain.Day) error {
	return c.store.EnsureDay(ctx, day)
}

// Append implements ports.LedgerStore and drops any cached copy of day.
func (c *DayCache) Append(ctx context.Context, day domain.Day, event domain.RollEvent) error {
	c.mu.Lock()
	delete(c.entries, day)
	c.mu.Unlock()
	return c.store.Append(ctx, day, event)
}

// ReadDay implements ports.LedgerStore.
func (c *DayCache) ReadDay(ctx context.Context, day domain.Day) ([]domain.RollEvent, error) {
	if !day.Before(c.today) {
		return c.store.ReadDay(ctx, day)
	}

	c.mu.Lock()
	entry, ok := c.entries[day]
	c.mu.Unlock()
	if ok {
		return clone(entry.events), nil
	}

	events, err := c.store.ReadDay(ctx, day)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[day] = cacheEntry{events: clone(events), storedAt: time.Now()}
	c.evictIfNeeded()
	c.mu.Unlock()
	return clone(events), nil
}

// Days implements ports.LedgerStore.
func (c *DayCache) Days(ctx context.Context) ([]domain.Day, error) {
	return c.store.Days(ctx)
}

// Location implements ports.LedgerStore.
func (c *DayCache) Location() string {
	return c.store.Location()
}

// Len reports the number of cached days.
func (c *DayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictIfNeeded drops the oldest entries; c.mu must be held.
func (c *DayCache) evictIfNeeded() {
	if len(c.entries) <= c.maxEntries {
		return
	}
	type aged struct {
		day domain.Day
		at  time.Time
	}
	infos := make([]aged, 0, len(c.entries))
	for day, e := range c.entries {
		infos = append(infos, aged{day: day, at: e.storedAt})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].at.Before(infos[j].at) })
	evicted := 0
	for len(infos) > c.maxEntries {
		delete(c.entries, infos[0].day)
		infos = infos[1:]
		evicted++
	}
	c.logger.Debug("day cache evicted", map[string]interface{}{"evicted": evicted, "kept": len(c.entries)})
}

// clone deep-copies events so neither the cache nor its callers share Rolls.
func clone(events []domain.RollEvent) []domain.RollEvent {
	if events == nil {
		return nil
	}
	out := make([]domain.RollEvent, len(events))
	for i, e := range events {
		e.Rolls = append([]int(nil), e.Rolls...)
		out[i] = e
	}
	return out
}

var _ ports.LedgerStore = (*DayCache)(nil)
