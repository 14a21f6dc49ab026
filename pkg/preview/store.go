package preview

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/labelkit/pkg/export"
)

// Entry is one stored label.
type Entry struct {
	ID       string          `json:"id"`
	Created  time.Time       `json:"created"`
	Elements int             `json:"elements"`
	Document export.Document `json:"-"`
}

// store keeps documents in memory for the lifetime of the server.
type store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
	limit   int
}

func newStore(limit int) *store {
	return &store{entries: make(map[string]*Entry), limit: limit}
}

func (s *store) put(doc export.Document) *Entry {
	e := &Entry{
		ID:       uuid.NewString(),
		Created:  time.Now().UTC(),
		Elements: len(doc.Elements),
		Document: doc,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
	if s.limit > 0 && len(s.order) > s.limit {
		delete(s.entries, s.order[0])
		s.order = slices.Delete(s.order, 0, 1)
	}
	return e
}

func (s *store) get(id string) (*Entry, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// list returns entries newest first.
func (s *store) list() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.entries[s.order[i]])
	}
	return out
}
