package memory

import (
	"sync"

	"github.com/PabloGalante/neurolink/internal/domain"
)

// JournalStore is a simple in-memory implementation of domain.JournalStore.
// It is NOT persistent; entries are gone when the process exits.
type JournalStore struct {
	mu       sync.RWMutex
	entries  map[domain.JournalEntryID]*domain.MoodEntry
	byUserID map[domain.UserID][]domain.JournalEntryID
}

// NewJournalStore creates a new in-memory JournalStore.
func NewJournalStore() *JournalStore {
	return &JournalStore{
		entries:  make(map[domain.JournalEntryID]*domain.MoodEntry),
		byUserID: make(map[domain.UserID][]domain.JournalEntryID),
	}
}

// AppendJournalEntry saves a new mood entry.
func (s *JournalStore) AppendJournalEntry(entry *domain.MoodEntry) error {
	if entry == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = domain.NewJournalEntryID()
	}

	s.entries[entry.ID] = entry
	s.byUserID[entry.UserID] = append(s.byUserID[entry.UserID], entry.ID)

	return nil
}

// ListJournalEntriesByUser returns the last `limit` entries for a user,
// oldest first. If limit <= 0, returns all.
func (s *JournalStore) ListJournalEntriesByUser(userID domain.UserID, limit int) ([]*domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	if len(ids) == 0 {
		return []*domain.MoodEntry{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}

	selected := ids[len(ids)-limit:]

	out := make([]*domain.MoodEntry, 0, len(selected))
	for _, id := range selected {
		if e, ok := s.entries[id]; ok {
			out = append(out, e)
		}
	}

	return out, nil
}
