// Package handoff keeps lookup results just long enough for the results
// page to pick them up once.
package handoff

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caknak/email_check_api/pkg/breach"
)

const (
	DefaultTTL        = 10 * time.Minute
	DefaultMaxEntries = 10000
)

type entry struct {
	token   string
	result  breach.LookupResult
	expires time.Time
}

// Store is an in-memory, read-once result store. Entries are removed when
// taken, when their TTL passes, or when the store is full and they are the
// oldest. It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	// order holds *entry in insertion order; with a fixed TTL that is also
	// expiry order.
	order   *list.List
	entries map[string]*list.Element
}

// NewStore creates a store holding up to DefaultMaxEntries results.
func NewStore(ttl time.Duration) *Store {
	return NewStoreWithLimit(ttl, DefaultMaxEntries)
}

// NewStoreWithLimit creates a store that evicts its oldest entry once it
// holds maxEntries results.
func NewStoreWithLimit(ttl time.Duration, maxEntries int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

// Put stores result and returns the token to take it with.
func (s *Store) Put(result breach.LookupResult) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("creating handoff token: %w", err)
	}
	token := id.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	for s.order.Len() >= s.maxEntries {
		s.remove(s.order.Front())
	}
	s.entries[token] = s.order.PushBack(&entry{token: token, result: result, expires: now.Add(s.ttl)})
	return token, nil
}

// Take returns the result stored under token and forgets it. The second
// value is false for unknown, expired or already taken tokens.
func (s *Store) Take(token string) (breach.LookupResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[token]
	if !ok {
		return breach.LookupResult{}, false
	}
	e := s.remove(el)
	if !s.now().Before(e.expires) {
		return breach.LookupResult{}, false
	}
	return e.result, true
}

// Len reports the number of entries currently held, expired ones included
// until the next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// sweep pops expired entries off the front. Callers hold s.mu.
func (s *Store) sweep(now time.Time) {
	for el := s.order.Front(); el != nil; el = s.order.Front() {
		if now.Before(el.Value.(*entry).expires) {
			return
		}
		s.remove(el)
	}
}

// remove unlinks el from both indexes. Callers hold s.mu.
func (s *Store) remove(el *list.Element) *entry {
	e := s.order.Remove(el).(*entry)
	delete(s.entries, e.token)
	return e
}
