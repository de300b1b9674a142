// Package auth holds player accounts and issues session tokens for the
// HTTP API.
package auth

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// UserStore keeps accounts in memory. Passwords are bcrypt-hashed at
// registration and never stored or returned in plain form.
type UserStore struct {
	mu        sync.Mutex
	byID      map[string]User
	dummyHash []byte
}

func NewUserStore() *UserStore {
	// Pre-computed hash compared against when the username does not
	// exist, so lookup misses take as long as password mismatches.
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic("auth: bcrypt self-test failed: " + err.Error())
	}
	return &UserStore{
		byID:      make(map[string]User),
		dummyHash: dummy,
	}
}

func (s *UserStore) Create(username, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Username == username {
			return User{}, ErrUsernameTaken
		}
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	s.byID[user.ID] = user
	return user, nil
}

func (s *UserStore) Get(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	return u, ok
}

func (s *UserStore) GetByUsername(username string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// Verify checks a username/password pair. The bcrypt comparison runs
// even when the user does not exist, against a dummy hash, so callers
// cannot distinguish unknown users from wrong passwords by timing.
func (s *UserStore) Verify(username, password string) (User, error) {
	user, ok := s.GetByUsername(username)

	hash := s.dummyHash
	if ok {
		hash = []byte(user.PasswordHash)
	}
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))

	if !ok || err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
