package businessflow

import (
	"sync"

	"github.com/ssoogun/outlier.property/models"
)

// FavouritesStore is the in-memory set of bookmarked rows for one session.
// It is empty at session start, mutated only by Toggle, and discarded with
// the session; nothing is ever persisted. Each session owns its own store,
// so favourites cannot leak between users.
type FavouritesStore struct {
	mu    sync.RWMutex
	marks map[string]models.FavouriteMark
}

// NewFavouritesStore creates an empty store.
func NewFavouritesStore() *FavouritesStore {
	return &FavouritesStore{marks: make(map[string]models.FavouriteMark)}
}

// Toggle inserts the mark if absent and removes it if present, returning the
// resulting membership state. Two identical toggles in sequence are a no-op.
func (s *FavouritesStore) Toggle(mark models.FavouriteMark) bool {
	key := mark.Key()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.marks[key]; ok {
		delete(s.marks, key)
		return false
	}
	s.marks[key] = mark
	return true
}

// Contains reports membership of the exact composite key.
func (s *FavouritesStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.marks[key]
	return ok
}

// Len returns the number of stored marks.
func (s *FavouritesStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.marks)
}

// IsFavourited reports whether any stored mark refers to the record. Unlike
// Contains, this ignores the ordinal and view-tag fragments of the keys: a
// street favourited at one position is favourited at every position.
func (s *FavouritesStore) IsFavourited(rec models.StreetRecord) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, mark := range s.marks {
		if mark.Matches(rec) {
			return true
		}
	}
	return false
}

// MatchingRecords returns the subsequence of records some stored mark refers
// to, in the order of the input. A stale mark that resolves to no current
// record is simply skipped, not an error.
func (s *FavouritesStore) MatchingRecords(records []models.StreetRecord) []models.StreetRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StreetRecord, 0, len(s.marks))
	for _, rec := range records {
		for _, mark := range s.marks {
			if mark.Matches(rec) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
