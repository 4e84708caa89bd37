package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Observer is told about catalog load failures.
type Observer interface {
	CatalogLoadFailed(ctx context.Context, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, err error)

// CatalogLoadFailed implements Observer.
func (f ObserverFunc) CatalogLoadFailed(ctx context.Context, err error) { f(ctx, err) }

// Store lazily loads the catalog once and memoizes it for the lifetime of the process.
// Failed loads are not memoized; the next caller retries.
type Store struct {
	source   Source
	observer Observer
	group    singleflight.Group

	mu       sync.RWMutex
	products []Product
	loaded   bool
	lastErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithObserver registers the failure observer.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore builds a store over src.
func NewStore(src Source, opts ...Option) *Store {
	s := &Store{source: src}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the catalog, fetching it on first use. Concurrent callers share
// one fetch. On failure the observer is notified and an empty list is returned.
func (s *Store) Load(ctx context.Context) []Product {
	if products, ok := s.cached(); ok {
		return products
	}
	v, err, _ := s.group.Do("catalog", func() (any, error) {
		if products, ok := s.cached(); ok {
			return products, nil
		}
		// the fetch outlives the request that happened to start it
		products, err := s.source.Fetch(context.WithoutCancel(ctx))
		if err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			if s.observer != nil {
				s.observer.CatalogLoadFailed(ctx, err)
			}
			return nil, err
		}
		s.mu.Lock()
		s.products = products
		s.loaded = true
		s.lastErr = nil
		s.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return []Product{}
	}
	return v.([]Product)
}

// Get returns the product with the given id after loading the catalog.
func (s *Store) Get(ctx context.Context, id string) (Product, bool) {
	return Find(s.Load(ctx), id)
}

// Err reports the error of the most recent failed load, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reset drops the memoized catalog. Intended for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.loaded = false
	s.lastErr = nil
}

func (s *Store) cached() ([]Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products, s.loaded
}
