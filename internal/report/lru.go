package report

import (
	"container/list"
	"sync"
)

// LRUStore is a bounded in-memory cache over a backing Store. Saves
// write through; loads check the cache first and promote misses.
type LRUStore struct {
	mu    sync.Mutex
	cap   int
	back  Store
	order *list.List // *Summary values, most recent at front
	items map[string]*list.Element
}

// NewLRUStore creates an LRU cache with the given capacity delegating
// to back. Capacity must be >= 1.
func NewLRUStore(cap int, back Store) *LRUStore {
	if cap < 1 {
		cap = 1
	}
	return &LRUStore{
		cap:   cap,
		back:  back,
		order: list.New(),
		items: make(map[string]*list.Element, cap),
	}
}

// Save caches the summary and writes it through to the backing store.
func (s *LRUStore) Save(summary *Summary) error {
	s.mu.Lock()
	s.put(summary)
	s.mu.Unlock()

	return s.back.Save(summary)
}

// Load returns the cached summary if present, otherwise loads it from
// the backing store and promotes it into the cache.
func (s *LRUStore) Load(runID string) (*Summary, error) {
	s.mu.Lock()
	if e, ok := s.items[runID]; ok {
		s.order.MoveToFront(e)
		summary := e.Value.(*Summary)
		s.mu.Unlock()
		return summary, nil
	}
	s.mu.Unlock()

	summary, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.put(summary)
	s.mu.Unlock()

	return summary, nil
}

// put inserts or refreshes an entry, evicting the oldest when over
// capacity. Callers hold s.mu.
func (s *LRUStore) put(summary *Summary) {
	if e, ok := s.items[summary.ID]; ok {
		e.Value = summary
		s.order.MoveToFront(e)
		return
	}
	s.items[summary.ID] = s.order.PushFront(summary)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*Summary).ID)
	}
}
