package store

import "github.com/tablegames/blackjack-table-be/internal/game"

// Store defines the interface for live table storage. Tables hold the round
// in flight; nothing here survives a restart except what the database layer
// persists separately (the bankroll number).
type Store interface {
	// SaveTable saves a table to the store
	SaveTable(t *game.Table) error

	// GetTable retrieves a table by ID
	GetTable(id string) (*game.Table, error)

	// DeleteTable removes a table from the store
	DeleteTable(id string) error

	// GetAllTables returns all tables in the store
	GetAllTables() ([]*game.Table, error)
}
