// Package leaderboard stores ranked match results and serves the
// /api/leaderboard HTTP surface.
package leaderboard

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neon-pong/backend/game"
)

const (
	MaxScore      = 1000
	MaxNameLength = 20
	DefaultLimit  = 50
)

var (
	ErrInvalidName  = errors.New("player name must be 1-20 characters")
	ErrInvalidScore = errors.New("score must be between 0 and 1000")
	ErrInvalidMode  = errors.New("unknown game mode")
)

type Entry struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Mode       game.Mode `json:"mode"`
	Date       string    `json:"date"`
}

// NewEntry is the submitted form of an entry, before the server assigns
// its id and date.
type NewEntry struct {
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Mode       game.Mode `json:"mode"`
}

func (e NewEntry) Validate() error {
	if len(e.PlayerName) < 1 || len(e.PlayerName) > MaxNameLength {
		return ErrInvalidName
	}
	if e.Score < 0 || e.Score > MaxScore {
		return ErrInvalidScore
	}
	if !e.Mode.Valid() {
		return ErrInvalidMode
	}
	return nil
}

// Store is the persistence surface. Entries are append-only; ranking
// happens at query time, never at insert.
type Store interface {
	// List returns up to limit entries ranked by score descending,
	// filtered to one mode when mode is non-empty.
	List(mode game.Mode, limit int) ([]Entry, error)
	Add(entry NewEntry) (Entry, error)
}

// MemStore keeps entries in memory. It is the default backend when no
// database is configured; entries do not survive a restart.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]Entry)}
}

func (s *MemStore) List(mode game.Mode, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if mode != "" && e.Mode != mode {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) Add(entry NewEntry) (Entry, error) {
	e := Entry{
		ID:         uuid.NewString(),
		PlayerName: entry.PlayerName,
		Score:      entry.Score,
		Mode:       entry.Mode,
		Date:       time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	return e, nil
}
