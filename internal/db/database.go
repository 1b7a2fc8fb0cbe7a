package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tablegames/blackjack-table-be/internal/game"
)

// Database persists the one piece of durable state this server has, the
// bankroll per table, plus a result row per settled round for the stats
// endpoint. Shoes, hands, and counts are ephemeral and never stored.
type Database struct {
	db *sql.DB
}

// TableStats aggregates the persisted round results for a table.
type TableStats struct {
	TableID      string    `json:"tableId"`
	RoundsPlayed int       `json:"roundsPlayed"`
	RoundsWon    int       `json:"roundsWon"`
	TotalStaked  int       `json:"totalStaked"`
	NetDelta     int       `json:"netDelta"`
	LastPlayed   time.Time `json:"lastPlayed"`
}

// NewDatabase opens (or creates) the sqlite database at path.
func NewDatabase(path string) (*Database, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err := initTables(conn); err != nil {
		return nil, err
	}

	return &Database{db: conn}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS bankrolls (
			table_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			balance INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating bankrolls table: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS round_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_id TEXT NOT NULL,
			bet INTEGER NOT NULL,
			side_bet INTEGER NOT NULL DEFAULT 0,
			delta INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating round_results table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// GetBankroll returns the persisted balance for a table, with found=false
// when the table has never been saved.
func (d *Database) GetBankroll(tableID string) (int, bool, error) {
	var balance int
	err := d.db.QueryRow("SELECT balance FROM bankrolls WHERE table_id = ?", tableID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

// SaveBankroll upserts a table's balance.
func (d *Database) SaveBankroll(tableID, name string, balance int) error {
	_, err := d.db.Exec(`
		INSERT INTO bankrolls (table_id, name, balance, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (table_id) DO UPDATE
		SET name = excluded.name, balance = excluded.balance, updated_at = excluded.updated_at
	`, tableID, name, balance, time.Now())
	return err
}

// SaveRoundResult records one settled round.
func (d *Database) SaveRoundResult(tableID string, result *game.RoundResult) error {
	outcome := "push"
	switch {
	case result.Delta > 0:
		outcome = "win"
	case result.Delta < 0:
		outcome = "lose"
	}

	bet := 0
	for _, h := range result.Hands {
		bet += h.Bet
	}

	_, err := d.db.Exec(`
		INSERT INTO round_results (table_id, bet, side_bet, delta, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tableID, bet, result.SideBetAmount, result.Delta, outcome, time.Now())
	return err
}

// GetTableStats aggregates the persisted rounds of a table.
func (d *Database) GetTableStats(tableID string) (*TableStats, error) {
	stats := &TableStats{TableID: tableID}

	err := d.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(bet + side_bet), 0),
		       COALESCE(SUM(delta), 0)
		FROM round_results WHERE table_id = ?
	`, tableID).Scan(&stats.RoundsPlayed, &stats.RoundsWon, &stats.TotalStaked, &stats.NetDelta)
	if err != nil {
		return nil, err
	}

	var last sql.NullTime
	if err := d.db.QueryRow(
		"SELECT MAX(created_at) FROM round_results WHERE table_id = ?", tableID,
	).Scan(&last); err == nil && last.Valid {
		stats.LastPlayed = last.Time
	}

	return stats, nil
}
