package store

import (
	"errors"
	"sync"

	"github.com/tablegames/blackjack-table-be/internal/game"
)

// ErrTableNotFound is returned when a table ID is unknown.
var ErrTableNotFound = errors.New("table not found")

// MemoryStore is an in-memory implementation of table storage
type MemoryStore struct {
	tables map[string]*game.Table
	mu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string]*game.Table),
	}
}

// SaveTable saves a table to the store
func (s *MemoryStore) SaveTable(t *game.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[t.ID] = t
	return nil
}

// GetTable retrieves a table by ID
func (s *MemoryStore) GetTable(id string) (*game.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tables[id]
	if !exists {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// DeleteTable removes a table from the store
func (s *MemoryStore) DeleteTable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[id]; !exists {
		return ErrTableNotFound
	}
	delete(s.tables, id)
	return nil
}

// GetAllTables returns all tables in the store
func (s *MemoryStore) GetAllTables() ([]*game.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]*game.Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t)
	}
	return tables, nil
}
