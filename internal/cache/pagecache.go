package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/kj4c/airtable/internal/query"
)

// ErrStaleFetch marks a page fetch whose result arrived after the cache
// moved on (a newer edit or invalidation happened while it was in flight).
// The result must be dropped, not applied over newer state.
var ErrStaleFetch = errors.New("stale fetch discarded")

// State tracks the optimistic-mutation lifecycle of the cache.
type State int

const (
	Idle State = iota
	Pending
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	default:
		return "idle"
	}
}

// Fetcher loads one page for a cursor offset, typically by calling
// getTableData over the wire.
type Fetcher func(ctx context.Context, cursor int) (*query.PageResult, error)

// PageCache holds the pages a client has loaded for one view and applies
// cell edits to them speculatively, before the server has confirmed the
// write. On failure the pre-edit snapshot is restored. A generation counter
// fences in-flight fetches: any fetch started before the latest edit or
// invalidation is discarded when it lands.
type PageCache struct {
	mu       sync.Mutex
	fetch    Fetcher
	pages    map[int]*query.PageResult
	snapshot map[int]*query.PageResult
	state    State
	gen      uint64
	cancel   context.CancelFunc
}

func New(fetch Fetcher) *PageCache {
	return &PageCache{
		fetch: fetch,
		pages: make(map[int]*query.PageResult),
	}
}

func (c *PageCache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Page returns the cached page at a cursor, if loaded.
func (c *PageCache) Page(cursor int) (*query.PageResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	page, ok := c.pages[cursor]
	return page, ok
}

// Fetch loads one page and caches it. Starting a fetch cancels the previous
// in-flight one; a fetch that is out of date by the time it returns yields
// ErrStaleFetch and leaves the cache untouched.
func (c *PageCache) Fetch(ctx context.Context, cursor int) (*query.PageResult, error) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	startGen := c.gen
	c.mu.Unlock()

	page, err := c.fetch(fetchCtx, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if c.gen != startGen {
		return nil, ErrStaleFetch
	}
	c.pages[cursor] = page
	return page, nil
}

// ApplyOptimistic speculatively writes a cell edit into every cached page
// holding the row, keeping a snapshot of the pre-edit pages for rollback.
// The edit supersedes any fetch still in flight.
func (c *PageCache) ApplyOptimistic(rowID, columnID, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = clonePages(c.pages)
	c.state = Pending
	c.gen++

	for _, page := range c.pages {
		for _, row := range page.Data {
			if row["id"] == rowID {
				if _, ok := row[columnID]; ok {
					row[columnID] = value
				}
			}
		}
	}
}

// Commit confirms the pending edit. The snapshot is dropped and the cache is
// invalidated so the next fetches reconcile with server state.
func (c *PageCache) Commit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	c.state = Committed
	c.invalidateLocked()
}

// Rollback restores the pre-edit snapshot, returning the UI to the state
// before the failed mutation.
func (c *PageCache) Rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		c.pages = c.snapshot
		c.snapshot = nil
	}
	c.state = RolledBack
	c.gen++
}

// Invalidate drops all cached pages and supersedes in-flight fetches.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

func (c *PageCache) invalidateLocked() {
	c.pages = make(map[int]*query.PageResult)
	c.gen++
}

func clonePages(pages map[int]*query.PageResult) map[int]*query.PageResult {
	cloned := make(map[int]*query.PageResult, len(pages))
	for cursor, page := range pages {
		cloned[cursor] = clonePage(page)
	}
	return cloned
}

func clonePage(page *query.PageResult) *query.PageResult {
	copied := &query.PageResult{
		Data:    make([]query.RowData, len(page.Data)),
		Columns: append([]query.ColumnMeta(nil), page.Columns...),
		Meta:    page.Meta,
	}
	if page.NextCursor != nil {
		next := *page.NextCursor
		copied.NextCursor = &next
	}
	for i, row := range page.Data {
		cloned := make(query.RowData, len(row))
		for k, v := range row {
			cloned[k] = v
		}
		copied.Data[i] = cloned
	}
	return copied
}
