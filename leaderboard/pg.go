package leaderboard

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/neon-pong/backend/game"
)

// PGStore persists entries in PostgreSQL for deployments that want the
// leaderboard to outlive the process.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(dsn string) (*PGStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &PGStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PGStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS leaderboard (
			id          VARCHAR PRIMARY KEY,
			player_name TEXT NOT NULL,
			score       INTEGER NOT NULL,
			mode        TEXT NOT NULL,
			date        TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard table: %w", err)
	}
	return nil
}

func (s *PGStore) List(mode game.Mode, limit int) ([]Entry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if mode != "" {
		rows, err = s.db.Query(`
			SELECT id, player_name, score, mode, date
			FROM leaderboard WHERE mode = $1
			ORDER BY score DESC LIMIT $2
		`, string(mode), limit)
	} else {
		rows, err = s.db.Query(`
			SELECT id, player_name, score, mode, date
			FROM leaderboard
			ORDER BY score DESC LIMIT $1
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.Score, &e.Mode, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PGStore) Add(entry NewEntry) (Entry, error) {
	e := Entry{
		ID:         uuid.NewString(),
		PlayerName: entry.PlayerName,
		Score:      entry.Score,
		Mode:       entry.Mode,
		Date:       time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.db.Exec(`
		INSERT INTO leaderboard (id, player_name, score, mode, date)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.PlayerName, e.Score, string(e.Mode), e.Date)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}
	return e, nil
}

func (s *PGStore) Close() error {
	return s.db.Close()
}
