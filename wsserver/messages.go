package wsserver

import (
	"github.com/neon-pong/backend/game"
	"github.com/neon-pong/backend/room"
)

// Message is the JSON tagged union spoken on /ws. Type selects the
// variant; the other fields are populated per variant and omitted
// otherwise.
type Message struct {
	Type string `json:"type"`

	// createRoom
	Mode game.Mode `json:"mode,omitempty"`

	// joinRoom
	Code string `json:"code,omitempty"`

	// roomCreated, playerJoined
	Room *room.Room `json:"room,omitempty"`

	// gameStart, gameUpdate
	State *game.State `json:"state,omitempty"`

	// playerInput
	Input *game.PlayerInput `json:"input,omitempty"`

	// gameEnd
	Winner string `json:"winner,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

// message type tags
const (
	TypeCreateRoom         = "createRoom"
	TypeJoinRoom           = "joinRoom"
	TypeRoomCreated        = "roomCreated"
	TypePlayerJoined       = "playerJoined"
	TypeStartGame          = "startGame"
	TypeGameStart          = "gameStart"
	TypePlayerInput        = "playerInput"
	TypeGameUpdate         = "gameUpdate"
	TypeGameEnd            = "gameEnd"
	TypeError              = "error"
	TypePlayerDisconnected = "playerDisconnected"
)

// relay error strings surfaced to the requesting connection
const (
	errInvalidMessage = "Invalid message format"
	errRoomNotFound   = "Room not found"
	errRoomFull       = "Room is full"
	errNotInRoom      = "Not in a room"
	errNotHost        = "Only host can start game"
	errNoOpponent     = "Waiting for opponent"
)
