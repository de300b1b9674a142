package leaderboard

import (
	"testing"

	"github.com/neon-pong/backend/game"
)

func mustAdd(t *testing.T, s Store, name string, score int, mode game.Mode) Entry {
	t.Helper()
	e, err := s.Add(NewEntry{PlayerName: name, Score: score, Mode: mode})
	if err != nil {
		t.Fatalf("Add(%q): %v", name, err)
	}
	return e
}

func TestMemStoreRanksDescending(t *testing.T) {
	s := NewMemStore()
	mustAdd(t, s, "carol", 300, game.Classic)
	mustAdd(t, s, "alice", 900, game.Classic)
	mustAdd(t, s, "bob", 600, game.Classic)

	entries, err := s.List("", DefaultLimit)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if entries[i].PlayerName != want {
			t.Errorf("rank %d: got %q, want %q", i, entries[i].PlayerName, want)
		}
	}
}

func TestMemStoreFiltersByMode(t *testing.T) {
	s := NewMemStore()
	mustAdd(t, s, "alice", 500, game.Classic)
	mustAdd(t, s, "bob", 700, game.Chaos)

	entries, err := s.List(game.Chaos, DefaultLimit)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerName != "bob" {
		t.Errorf("got %v, want only bob", entries)
	}
}

func TestMemStoreLimit(t *testing.T) {
	s := NewMemStore()
	for i := 0; i < 10; i++ {
		mustAdd(t, s, "p", i*10, game.Classic)
	}
	entries, err := s.List("", 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Score != 90 {
		t.Errorf("top score = %d, want 90", entries[0].Score)
	}
}

func TestMemStoreAssignsIDAndDate(t *testing.T) {
	s := NewMemStore()
	e := mustAdd(t, s, "alice", 100, game.Classic)
	if e.ID == "" {
		t.Error("entry has empty id")
	}
	if e.Date == "" {
		t.Error("entry has empty date")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry NewEntry
		want  error
	}{
		{"valid", NewEntry{"alice", 500, game.Classic}, nil},
		{"empty name", NewEntry{"", 500, game.Classic}, ErrInvalidName},
		{"long name", NewEntry{"abcdefghijklmnopqrstu", 500, game.Classic}, ErrInvalidName},
		{"negative score", NewEntry{"alice", -1, game.Classic}, ErrInvalidScore},
		{"over max score", NewEntry{"alice", 1500, game.Classic}, ErrInvalidScore},
		{"max score ok", NewEntry{"alice", 1000, game.Classic}, nil},
		{"bad mode", NewEntry{"alice", 500, "turbo"}, ErrInvalidMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Validate(); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
