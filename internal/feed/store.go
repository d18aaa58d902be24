package feed

import (
	"sync"

	"notifeed/internal/model"
)

// Store is the in-memory notification list and the single source of
// truth for the UI layer. Rendered output is always derived from it;
// nothing presentation-side is ever authoritative.
//
// The list is only ever updated by a wholesale replacement or by
// flipping a record's read flag, so a render between mutations never
// observes a half-updated list. The mutex exists because reloads run on
// command goroutines while the UI loop reads.
type Store struct {
	mu      sync.RWMutex
	records []model.Notification
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps the entire list atomically. The slice is copied so
// the caller cannot alias store internals.
func (s *Store) ReplaceAll(records []model.Notification) {
	copied := make([]model.Notification, len(records))
	copy(copied, records)

	s.mu.Lock()
	s.records = copied
	s.mu.Unlock()
}

// Records returns a copy of the current list in load order. Load order
// is whatever the backend returned; the store performs no sorting.
func (s *Store) Records() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]model.Notification, len(s.records))
	copy(copied, s.records)
	return copied
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// MarkRead flips the read flag of the record with the given ID and
// reports whether it was found. Marking an already-read record again is
// a successful no-op, and an absent ID is not an error.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Read = true
			return true
		}
	}
	return false
}

// ManagerOptions returns the unique (UserID, UserName) pairs observed in
// the current list, in stable first-seen order. These feed the manager
// filter select.
func (s *Store) ManagerOptions() []model.ManagerOption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.records))
	options := make([]model.ManagerOption, 0, len(s.records))
	for _, n := range s.records {
		if n.UserID == "" || seen[n.UserID] {
			continue
		}
		seen[n.UserID] = true
		options = append(options, model.ManagerOption{
			UserID:   n.UserID,
			UserName: n.UserName,
		})
	}
	return options
}
