package cache

import (
	"container/list"
	"sync"
	"time"
)

// Store is a TTL cache with LRU eviction. Summary endpoints use it to avoid
// recounting records on every dashboard poll; invalidation happens on write.
type Store[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	order   *list.List

	hits   int64
	misses int64
}

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

func New[T any](maxSize int, ttl time.Duration) *Store[T] {
	return &Store[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	elem, ok := s.items[key]
	if !ok {
		s.misses++
		return zero, false
	}

	e := elem.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		s.remove(elem)
		s.misses++
		return zero, false
	}

	s.order.MoveToFront(elem)
	s.hits++
	return e.value, true
}

func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &entry[T]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}

	if elem, ok := s.items[key]; ok {
		elem.Value = e
		s.order.MoveToFront(elem)
		return
	}

	s.items[key] = s.order.PushFront(e)

	if s.order.Len() > s.maxSize {
		if oldest := s.order.Back(); oldest != nil {
			s.remove(oldest)
		}
	}
}

func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.remove(elem)
	}
}

// Clear drops every entry. Called after any write that changes what a
// cached summary would report.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*list.Element)
	s.order.Init()
}

func (s *Store[T]) remove(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(s.items, e.key)
	s.order.Remove(elem)
}

// CleanExpired removes stale entries and reports how many were dropped.
func (s *Store[T]) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var stale []*list.Element
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			stale = append(stale, elem)
		}
	}
	for _, elem := range stale {
		s.remove(elem)
	}
	return len(stale)
}

func (s *Store[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Stats returns cumulative hit and miss counts.
func (s *Store[T]) Stats() (hits, misses int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}
