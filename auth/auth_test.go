package auth

import (
	"testing"
)

func TestCreateAndVerify(t *testing.T) {
	s := NewUserStore()

	user, err := s.Create("alice", "hunter22")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == "" {
		t.Error("user has empty id")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}

	got, err := s.Verify("alice", "hunter22")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Verify returned id %q, want %q", got.ID, user.ID)
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	s := NewUserStore()
	if _, err := s.Create("alice", "hunter22"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Verify("alice", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("Verify wrong password: err = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestVerifyUnknownUser(t *testing.T) {
	s := NewUserStore()
	if _, err := s.Verify("nobody", "whatever"); err != ErrInvalidCredentials {
		t.Errorf("Verify unknown user: err = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	s := NewUserStore()
	if _, err := s.Create("alice", "hunter22"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create("alice", "other"); err != ErrUsernameTaken {
		t.Errorf("duplicate Create: err = %v, want %v", err, ErrUsernameTaken)
	}
}

func TestGetByUsername(t *testing.T) {
	s := NewUserStore()
	created, _ := s.Create("alice", "hunter22")

	got, ok := s.GetByUsername("alice")
	if !ok || got.ID != created.ID {
		t.Errorf("GetByUsername = %+v, %v", got, ok)
	}
	if _, ok := s.GetByUsername("bob"); ok {
		t.Error("GetByUsername found nonexistent user")
	}
}
