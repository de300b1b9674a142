// Package settings stores the flat client configuration object.
// Settings are not persisted across restarts; an in-memory store is
// sufficient.
package settings

import (
	"fmt"
	"sync"
)

type ControlScheme string

const (
	Drag ControlScheme = "drag"
	Tap  ControlScheme = "tap"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

type Settings struct {
	SoundEnabled  bool          `json:"soundEnabled"`
	MusicEnabled  bool          `json:"musicEnabled"`
	Volume        float64       `json:"volume"`
	ControlScheme ControlScheme `json:"controlScheme"`
	Difficulty    Difficulty    `json:"difficulty"`
	ShowEffects   bool          `json:"showEffects"`
}

func Defaults() Settings {
	return Settings{
		SoundEnabled:  true,
		MusicEnabled:  true,
		Volume:        0.7,
		ControlScheme: Drag,
		Difficulty:    Medium,
		ShowEffects:   true,
	}
}

type Store struct {
	mu       sync.Mutex
	settings Settings
}

func NewStore() *Store {
	return &Store{settings: Defaults()}
}

func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Put replaces the stored settings after validating the enumerated fields
// and the volume range.
func (s *Store) Put(next Settings) error {
	if next.ControlScheme != Drag && next.ControlScheme != Tap {
		return fmt.Errorf("unknown control scheme %q", next.ControlScheme)
	}
	if next.Difficulty != Easy && next.Difficulty != Medium && next.Difficulty != Hard {
		return fmt.Errorf("unknown difficulty %q", next.Difficulty)
	}
	if next.Volume < 0 || next.Volume > 1 {
		return fmt.Errorf("volume %v out of range [0,1]", next.Volume)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = next
	return nil
}
