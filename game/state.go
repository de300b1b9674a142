package game

import (
	"github.com/neon-pong/backend/ball"
	"github.com/neon-pong/backend/paddle"
	"github.com/neon-pong/backend/powerup"
	"github.com/neon-pong/backend/scores"
)

type Mode string

const (
	Classic    Mode = "classic"
	Arcade     Mode = "arcade"
	TimeAttack Mode = "timeAttack"
	Chaos      Mode = "chaos"
	Zen        Mode = "zen"
)

var Modes = []Mode{Classic, Arcade, TimeAttack, Chaos, Zen}

func (m Mode) Valid() bool {
	for _, mode := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// PowerUpsEnabled reports whether the spawn policy runs in this mode.
func (m Mode) PowerUpsEnabled() bool {
	return m != Classic && m != Zen
}

const (
	// WinScore ends a match in every mode except timeAttack and zen.
	WinScore = 11

	// TimeAttackSeconds is the countdown for timeAttack matches.
	TimeAttackSeconds = 60.0

	// MaxChaosBalls caps the chaos-mode extra-ball drift.
	MaxChaosBalls = 5
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	None Direction = "none"
)

// Inputs is the per-step paddle intent for both seats.
type Inputs struct {
	Left  Direction
	Right Direction
}

// PlayerInput is the networked form of one seat's intent.
type PlayerInput struct {
	PlayerID  string    `json:"playerId"`
	Direction Direction `json:"direction"`
	Timestamp int64     `json:"timestamp"`
}

// State is the aggregate root for one match. It is owned by the engine
// between steps; everything handed outside is a snapshot copy.
type State struct {
	Ball  ball.Ball   `json:"ball"`
	Balls []ball.Ball `json:"balls"`

	LeftPaddle  paddle.Paddle `json:"leftPaddle"`
	RightPaddle paddle.Paddle `json:"rightPaddle"`

	scores.Scores

	GameMode   Mode    `json:"gameMode"`
	IsPaused   bool    `json:"isPaused"`
	IsGameOver bool    `json:"isGameOver"`
	Winner     *string `json:"winner"`

	PowerUps       []powerup.PowerUp `json:"powerUps"`
	ActivePowerUps []powerup.Active  `json:"activePowerUps"`

	TimeRemaining        *float64 `json:"timeRemaining"`
	DifficultyMultiplier float64  `json:"difficultyMultiplier"`
}

// NewState builds the canonical initial state for a mode: one fresh ball,
// centered paddles, zero scores, multiplier 1.
func NewState(mode Mode) *State {
	b := ball.New()
	s := &State{
		Ball:                 b,
		Balls:                []ball.Ball{b},
		LeftPaddle:           paddle.NewLeft(),
		RightPaddle:          paddle.NewRight(),
		GameMode:             mode,
		PowerUps:             []powerup.PowerUp{},
		ActivePowerUps:       []powerup.Active{},
		DifficultyMultiplier: 1,
	}
	if mode == TimeAttack {
		t := TimeAttackSeconds
		s.TimeRemaining = &t
	}
	return s
}

// Snapshot returns a copy safe to hand to the renderer or the wire; the
// slices are duplicated so a later step cannot mutate what the caller
// holds.
func (s *State) Snapshot() State {
	out := *s
	out.Balls = append([]ball.Ball(nil), s.Balls...)
	for i := range out.Balls {
		out.Balls[i].Trail = append([]ball.Point(nil), s.Balls[i].Trail...)
	}
	out.PowerUps = append([]powerup.PowerUp(nil), s.PowerUps...)
	out.ActivePowerUps = append([]powerup.Active(nil), s.ActivePowerUps...)
	if s.TimeRemaining != nil {
		t := *s.TimeRemaining
		out.TimeRemaining = &t
	}
	if s.Winner != nil {
		w := *s.Winner
		out.Winner = &w
	}
	out.Ball.Trail = append([]ball.Point(nil), s.Ball.Trail...)
	return out
}
