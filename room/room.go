package room

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/neon-pong/backend/game"
)

type Status string

const (
	Waiting  Status = "waiting"
	Playing  Status = "playing"
	Finished Status = "finished"
)

var (
	ErrNotFound = errors.New("room not found")
	ErrFull     = errors.New("room is full")
)

// codeAlphabet excludes visually ambiguous characters (I, O, 0, 1) so
// codes survive being read aloud.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// Room is a two-seat rendezvous point. The registry never inspects the
// game traffic flowing between its members.
type Room struct {
	ID      string    `json:"id"`
	Code    string    `json:"code"`
	HostID  string    `json:"hostId"`
	GuestID *string   `json:"guestId"`
	Status  Status    `json:"status"`
	Mode    game.Mode `json:"mode"`
}

// Registry holds the live rooms for one server instance. It is a
// constructed object, not package state, so independent instances and
// tests each get their own.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room // keyed by code
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Create registers a new waiting room with a code that collides with no
// currently registered room.
func (r *Registry) Create(hostID string, mode game.Mode) Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := generateCode()
	for r.rooms[code] != nil {
		code = generateCode()
	}

	rm := &Room{
		ID:     uuid.NewString(),
		Code:   code,
		HostID: hostID,
		Status: Waiting,
		Mode:   mode,
	}
	r.rooms[code] = rm
	return rm.snapshot()
}

// GetByCode looks a room up case-insensitively; codes are stored
// uppercase. The returned Room is a snapshot: later registry mutations
// never show through it.
func (r *Registry) GetByCode(code string) (Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[strings.ToUpper(code)]
	if !ok {
		return Room{}, false
	}
	return rm.snapshot(), true
}

// SetGuest seats a guest. A room holds at most two members; a second
// guest is rejected.
func (r *Registry) SetGuest(code, guestID string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[strings.ToUpper(code)]
	if !ok {
		return Room{}, ErrNotFound
	}
	if rm.GuestID != nil {
		return Room{}, ErrFull
	}
	rm.GuestID = &guestID
	return rm.snapshot(), nil
}

// snapshot copies the record, including the guest pointer's target, so
// the caller can read or marshal it outside the registry lock.
func (rm *Room) snapshot() Room {
	out := *rm
	if rm.GuestID != nil {
		g := *rm.GuestID
		out.GuestID = &g
	}
	return out
}

func (r *Registry) SetStatus(code string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rm, ok := r.rooms[strings.ToUpper(code)]; ok {
		rm.Status = status
	}
}

// Delete removes a room. Called when the last connected member leaves;
// rooms have no expiry timer of their own.
func (r *Registry) Delete(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, strings.ToUpper(code))
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func generateCode() string {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}
