// Package search provides the storefront search store: a snapshot of the
// product catalog loaded once per session and queried in memory.
package search

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/storefront-search/internal/cache"
	"github.com/usestring/storefront-search/internal/indexer"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/types"
)

// Lister is the listing service the store loads its snapshot from.
// *client.Client implements it.
type Lister interface {
	ListProducts(ctx context.Context) ([]client.Product, error)
	ListCategories(ctx context.Context) ([]client.Category, error)
}

// Listener observes store changes. It is called synchronously after the
// change, outside the store's lock, so it may read the store but should not
// block.
type Listener func(types.SearchState)

// Store holds the search session state: the current query, its results, and
// the catalog snapshot they are derived from.
//
// The snapshot is fetched at most once. Concurrent Initialize calls share a
// single fetch; a failed fetch leaves the store empty and can be retried by
// calling Initialize again.
type Store struct {
	lister      Lister
	cache       *cache.ResultCache
	initTimeout time.Duration

	// initGroup deduplicates concurrent snapshot loads.
	initGroup singleflight.Group

	mu      sync.RWMutex
	query   string
	results []types.SearchResult
	snap    *snapshot // nil until initialized
	lastErr string

	subMu     sync.Mutex
	listeners []listenerEntry
	nextSubID int
}

type listenerEntry struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithResultCache memoizes results per normalized query.
func WithResultCache(c *cache.ResultCache) Option {
	return func(s *Store) {
		s.cache = c
	}
}

// WithInitTimeout bounds the snapshot fetch. Zero means no bound beyond the
// HTTP client's own timeout.
func WithInitTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.initTimeout = d
	}
}

// NewStore creates an empty, uninitialized store backed by l.
func NewStore(l Lister, opts ...Option) *Store {
	s := &Store{
		lister:  l,
		results: []types.SearchResult{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the catalog snapshot if it has not been loaded yet.
//
// Calls made while a load is in flight wait for that load instead of starting
// another. Failures are logged and recorded in Status, never returned: a
// store that failed to load behaves as an empty catalog. The load does not
// inherit ctx's cancellation, only its values.
func (s *Store) Initialize(ctx context.Context) {
	if s.Initialized() {
		return
	}

	_, _, _ = s.initGroup.Do("snapshot", func() (any, error) {
		// A load that finished between the check above and Do.
		if s.Initialized() {
			return nil, nil
		}
		s.load(context.WithoutCancel(ctx))
		return nil, nil
	})
}

// load fetches products and categories concurrently and installs the snapshot.
func (s *Store) load(ctx context.Context) {
	start := time.Now()

	if s.initTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.initTimeout)
		defer cancel()
	}

	var (
		products   []client.Product
		categories []client.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.lister.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.lister.ListCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Warn("search snapshot load failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return
	}

	snap := newSnapshot(products, categories)

	s.mu.Lock()
	s.snap = snap
	s.lastErr = ""
	if s.cache != nil {
		s.cache.Purge()
	}
	// Results typed before the snapshot arrived are recomputed against it.
	s.results = s.resultsForLocked(s.query)
	state := s.stateLocked()
	s.mu.Unlock()

	slog.Info("search snapshot loaded",
		slog.Int("product_count", len(products)),
		slog.Int("category_count", len(categories)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	s.notify(state)
}

// SetQuery replaces the query, recomputes the results and returns them.
func (s *Store) SetQuery(text string) []types.SearchResult {
	s.mu.Lock()
	s.query = text
	s.results = s.resultsForLocked(text)
	state := s.stateLocked()
	s.mu.Unlock()

	s.notify(state)
	return slices.Clone(state.Results)
}

// Clear resets the query and results.
func (s *Store) Clear() {
	s.mu.Lock()
	s.query = ""
	s.results = []types.SearchResult{}
	state := s.stateLocked()
	s.mu.Unlock()

	s.notify(state)
}

// Query returns the current query.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results returns a copy of the current results.
func (s *Store) Results() []types.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

// Initialized reports whether the snapshot has been loaded.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// State returns the current observable state.
func (s *Store) State() types.SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Status describes the loaded snapshot and the last load failure, if any.
func (s *Store) Status() types.StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := types.StoreStatus{
		Initialized: s.snap != nil,
		LastError:   s.lastErr,
		Query:       s.query,
		ResultCount: len(s.results),
	}
	if s.snap != nil {
		st.ProductCount = len(s.snap.products)
		st.CategoryCount = len(s.snap.categories)
		st.LoadedAtMs = s.snap.loadedAt.UnixMilli()
	}
	return st
}

// Product looks up a snapshot product by ID.
func (s *Store) Product(id string) (client.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return client.Product{}, false
	}
	i, ok := s.snap.productByID[id]
	if !ok {
		return client.Product{}, false
	}
	return s.snap.products[i], true
}

// Category looks up a snapshot category by ID.
func (s *Store) Category(id string) (client.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return client.Category{}, false
	}
	i, ok := s.snap.categoryByID[id]
	if !ok {
		return client.Category{}, false
	}
	return s.snap.categories[i], true
}

// Subscribe registers fn to be called after every change to the query,
// results or snapshot. The returned func unregisters it.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool {
			return e.id == id
		})
	}
}

func (s *Store) notify(state types.SearchState) {
	s.subMu.Lock()
	listeners := slices.Clone(s.listeners)
	s.subMu.Unlock()

	for _, l := range listeners {
		l.fn(state)
	}
}

// resultsForLocked computes the results for text against the current
// snapshot. Must be called with mu held.
func (s *Store) resultsForLocked(text string) []types.SearchResult {
	if s.snap == nil {
		return []types.SearchResult{}
	}

	q := indexer.Normalize(text)
	if q == "" {
		return []types.SearchResult{}
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(q); ok {
			return cached
		}
	}

	results := s.snap.search(q)
	if s.cache != nil {
		s.cache.Put(q, results)
	}
	return results
}

// stateLocked returns a copy of the observable state. Must be called with mu held.
func (s *Store) stateLocked() types.SearchState {
	return types.SearchState{
		Query:       s.query,
		Results:     slices.Clone(s.results),
		Initialized: s.snap != nil,
	}
}
