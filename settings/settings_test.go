package settings

import "testing"

func TestStore_PutGet(t *testing.T) {
	s := NewStore()

	next := Settings{
		SoundEnabled:  false,
		MusicEnabled:  true,
		Volume:        0.3,
		ControlScheme: Tap,
		Difficulty:    Hard,
		ShowEffects:   false,
	}
	if err := s.Put(next); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := s.Get(); got != next {
		t.Errorf("Get = %+v, want %+v", got, next)
	}
}

func TestStore_RejectsUnknownValues(t *testing.T) {
	s := NewStore()
	before := s.Get()

	bad := Defaults()
	bad.ControlScheme = "keyboard"
	if err := s.Put(bad); err == nil {
		t.Error("expected error for unknown control scheme")
	}

	bad = Defaults()
	bad.Volume = 1.5
	if err := s.Put(bad); err == nil {
		t.Error("expected error for out-of-range volume")
	}

	if got := s.Get(); got != before {
		t.Error("failed Put must not partially apply")
	}
}
