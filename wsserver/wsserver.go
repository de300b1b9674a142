// Package wsserver relays session traffic between two matched peers. The
// relay registers rooms and forwards messages verbatim; it never validates
// or resimulates game state.
package wsserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/neon-pong/backend/ball"
	"github.com/neon-pong/backend/game"
	"github.com/neon-pong/backend/paddle"
	"github.com/neon-pong/backend/powerup"
	"github.com/neon-pong/backend/room"
	"github.com/neon-pong/backend/scores"
)

const sendQueueSize = 64

type client struct {
	id        string
	conn      *websocket.Conn
	sendQueue chan []byte
	roomCode  string
}

// Handler owns the connection and room-membership registries for one
// server instance. Both maps are guarded by mu; every mutation happens in
// the read loop or close path of the owning connection.
type Handler struct {
	upgrader websocket.Upgrader
	rooms    *room.Registry

	mu      sync.Mutex
	clients map[string]*client
	members map[string]map[string]struct{} // room code -> client ids
}

func NewHandler(rooms *room.Registry) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		rooms:    rooms,
		clients:  make(map[string]*client),
		members:  make(map[string]map[string]struct{}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[relay] upgrade failed: %v", err)
		return
	}

	c := &client{
		id:        uuid.NewString(),
		conn:      conn,
		sendQueue: make(chan []byte, sendQueueSize),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	// Writer goroutine: drains the send queue until disconnect.
	go func() {
		for msg := range c.sendQueue {
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[relay] write to %s failed: %v", c.id, err)
				c.conn.Close()
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.disconnect(c)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendTo(c, Message{Type: TypeError, Message: errInvalidMessage})
			continue
		}
		h.dispatch(c, msg)
	}
}

func (h *Handler) dispatch(c *client, msg Message) {
	switch msg.Type {
	case TypeCreateRoom:
		h.handleCreateRoom(c, msg)
	case TypeJoinRoom:
		h.handleJoinRoom(c, msg)
	case TypeStartGame:
		h.handleStartGame(c)
	case TypePlayerInput, TypeGameUpdate, TypeGameEnd:
		h.forward(c, msg)
	default:
		h.sendTo(c, Message{Type: TypeError, Message: errInvalidMessage})
	}
}

func (h *Handler) handleCreateRoom(c *client, msg Message) {
	mode := msg.Mode
	if !mode.Valid() {
		mode = game.Classic
	}

	rm := h.rooms.Create(c.id, mode)

	h.mu.Lock()
	c.roomCode = rm.Code
	h.members[rm.Code] = map[string]struct{}{c.id: {}}
	h.mu.Unlock()

	log.Printf("[relay] room %s created by %s (mode=%s)", rm.Code, c.id, mode)
	h.sendTo(c, Message{Type: TypeRoomCreated, Room: &rm})
}

func (h *Handler) handleJoinRoom(c *client, msg Message) {
	rm, err := h.rooms.SetGuest(msg.Code, c.id)
	switch err {
	case nil:
	case room.ErrNotFound:
		h.sendTo(c, Message{Type: TypeError, Message: errRoomNotFound})
		return
	case room.ErrFull:
		h.sendTo(c, Message{Type: TypeError, Message: errRoomFull})
		return
	default:
		h.sendTo(c, Message{Type: TypeError, Message: errInvalidMessage})
		return
	}

	h.mu.Lock()
	c.roomCode = rm.Code
	if h.members[rm.Code] == nil {
		h.members[rm.Code] = make(map[string]struct{})
	}
	h.members[rm.Code][c.id] = struct{}{}
	h.mu.Unlock()

	log.Printf("[relay] %s joined room %s", c.id, rm.Code)
	h.broadcastToRoom(rm.Code, Message{Type: TypePlayerJoined, Room: &rm}, "")
}

func (h *Handler) handleStartGame(c *client) {
	if c.roomCode == "" {
		h.sendTo(c, Message{Type: TypeError, Message: errNotInRoom})
		return
	}
	rm, ok := h.rooms.GetByCode(c.roomCode)
	if !ok || rm.HostID != c.id {
		h.sendTo(c, Message{Type: TypeError, Message: errNotHost})
		return
	}
	if rm.GuestID == nil {
		h.sendTo(c, Message{Type: TypeError, Message: errNoOpponent})
		return
	}

	h.rooms.SetStatus(rm.Code, room.Playing)

	// The server authors the initial snapshot; neither peer does.
	state := initialState(rm.Mode)
	log.Printf("[relay] room %s started (mode=%s)", rm.Code, rm.Mode)
	h.broadcastToRoom(rm.Code, Message{Type: TypeGameStart, State: &state}, "")
}

// forward relays a message to the other room member only, never echoing
// the sender. Delivery is best-effort; a full queue drops the message.
func (h *Handler) forward(c *client, msg Message) {
	if c.roomCode == "" {
		return
	}
	if msg.Type == TypeGameEnd {
		h.rooms.SetStatus(c.roomCode, room.Finished)
	}
	h.broadcastToRoom(c.roomCode, msg, c.id)
}

func (h *Handler) disconnect(c *client) {
	h.mu.Lock()

	code := c.roomCode
	if code != "" {
		if ids := h.members[code]; ids != nil {
			delete(ids, c.id)
			if len(ids) == 0 {
				delete(h.members, code)
				h.rooms.Delete(code)
				log.Printf("[relay] room %s closed, last member left", code)
			}
		}
	}
	delete(h.clients, c.id)
	close(c.sendQueue)
	h.mu.Unlock()

	c.conn.Close()

	if code != "" {
		h.broadcastToRoom(code, Message{Type: TypePlayerDisconnected}, c.id)
	}
}

func (h *Handler) sendTo(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[relay] marshal failed: %v", err)
		return
	}
	select {
	case c.sendQueue <- data:
	default:
		log.Printf("[relay] dropping message, send queue full for %s", c.id)
	}
}

func (h *Handler) broadcastToRoom(code string, msg Message, excludeID string) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[relay] marshal failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id := range h.members[code] {
		if id == excludeID {
			continue
		}
		c, ok := h.clients[id]
		if !ok {
			continue
		}
		select {
		case c.sendQueue <- data:
		default:
			log.Printf("[relay] dropping message, send queue full for %s", id)
		}
	}
}

// initialState is the canonical networked opening snapshot: a fixed,
// known launch so both peers start from identical state.
func initialState(mode game.Mode) game.State {
	b := ball.NewAt(400, 300, 5, 3)
	s := game.State{
		Ball:                 b,
		Balls:                []ball.Ball{b},
		LeftPaddle:           paddle.NewLeft(),
		RightPaddle:          paddle.NewRight(),
		Scores:               scores.Scores{},
		GameMode:             mode,
		PowerUps:             []powerup.PowerUp{},
		ActivePowerUps:       []powerup.Active{},
		DifficultyMultiplier: 1,
	}
	if mode == game.TimeAttack {
		t := game.TimeAttackSeconds
		s.TimeRemaining = &t
	}
	return s
}
