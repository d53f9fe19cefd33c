// Package memory provides an in-process backup target, used in tests and
// when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"github.com/davidsnrn/fincontrol/internal/backup"
	"github.com/davidsnrn/fincontrol/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records map[string]core.Transaction
}

var _ backup.Target = (*Store)(nil)

func New() *Store {
	return &Store{records: make(map[string]core.Transaction)}
}

func (s *Store) AppendTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[t.ID] = t
	return nil
}

func (s *Store) RemoveTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Get returns a mirrored record, for test assertions.
func (s *Store) Get(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.records[id]
	return t, ok
}

// Len reports how many records are currently mirrored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
