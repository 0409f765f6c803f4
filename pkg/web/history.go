package web

import (
	"encoding/json"
	"os"
	"sync"
)

// History tracks the largest document the service has processed so far
type History struct {
	MaxFileSizeMB float64 `json:"max_file_size_mb"`
	MaxPages      int     `json:"max_pages"`
}

// historyStore persists History as a small JSON file. Reads and writes fail
// soft: a missing or corrupt file just resets the record.
type historyStore struct {
	mu   sync.Mutex
	path string
}

func newHistoryStore(path string) *historyStore {
	return &historyStore{path: path}
}

// Load returns the stored history, or a zero history when unavailable
func (s *historyStore) Load() History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *historyStore) load() History {
	var h History
	data, err := os.ReadFile(s.path)
	if err != nil {
		return h
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return History{}
	}
	return h
}

// Update records new maxima and returns the resulting history
func (s *historyStore) Update(fileSizeMB float64, pageCount int) History {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.load()
	updated := false

	if fileSizeMB > h.MaxFileSizeMB {
		h.MaxFileSizeMB = fileSizeMB
		updated = true
	}
	if pageCount > h.MaxPages {
		h.MaxPages = pageCount
		updated = true
	}

	if updated {
		if data, err := json.Marshal(h); err == nil {
			_ = os.WriteFile(s.path, data, 0o644)
		}
	}
	return h
}
