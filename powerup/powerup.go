// Package powerup implements the power-up subsystem: spawn policy, pickup
// detection, effect application and timed expiry.
package powerup

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/neon-pong/backend/ball"
	"github.com/neon-pong/backend/canvas"
)

type Type string

const (
	PaddleGrow   Type = "paddleGrow"
	PaddleShrink Type = "paddleShrink"
	MultiBall    Type = "multiBall"
	SlowMo       Type = "slowMo"
	SpeedBoost   Type = "speedBoost"
	Shield       Type = "shield"
	CurveShot    Type = "curveShot"
)

var Types = []Type{PaddleGrow, PaddleShrink, MultiBall, SlowMo, SpeedBoost, Shield, CurveShot}

type Rarity string

const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Legendary Rarity = "legendary"
)

var rarityOf = map[Type]Rarity{
	PaddleGrow:   Common,
	PaddleShrink: Common,
	SpeedBoost:   Common,
	SlowMo:       Rare,
	MultiBall:    Rare,
	CurveShot:    Rare,
	Shield:       Legendary,
}

// Acceptance probability after the uniform type draw. This is what makes
// the effective spawn distribution rarity-weighted.
var rarityChance = map[Rarity]float64{
	Common:    1.0,
	Rare:      0.3,
	Legendary: 0.1,
}

const (
	// SpawnInterval is simulated milliseconds between spawn rolls.
	SpawnInterval = 5000.0

	// MaxOnField caps how many unpicked power-ups sit in the arena.
	MaxOnField = 2

	// PickupRadius is added to the ball radius for pickup detection.
	PickupRadius = 20.0

	shieldDuration  = 10000
	defaultDuration = 5000
)

func (t Type) Rarity() Rarity {
	return rarityOf[t]
}

// DurationMillis is how long the effect stays active after pickup.
func (t Type) DurationMillis() int64 {
	if t == Shield {
		return shieldDuration
	}
	return defaultDuration
}

// PowerUp is an unpicked pickup sitting on the field. It never times out;
// only active effects expire.
type PowerUp struct {
	ID       string  `json:"id"`
	Type     Type    `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Duration int64   `json:"duration"`
	Rarity   Rarity  `json:"rarity"`
}

// Active is a timed effect currently applied to the match. PlayerID 0 is
// the left player, 1 the right.
type Active struct {
	Type      Type  `json:"type"`
	PlayerID  int   `json:"playerId"`
	ExpiresAt int64 `json:"expiresAt"`
	Duration  int64 `json:"duration"`
}

func (a Active) Expired(nowMillis int64) bool {
	return a.ExpiresAt <= nowMillis
}

// Spawner accumulates simulated time and rolls for a new power-up on a
// fixed interval.
type Spawner struct {
	elapsedMillis float64
}

// Tick advances the spawn timer by deltaMillis of simulated time. When the
// interval elapses it rolls once: a uniform draw over all seven types,
// then a rarity-dependent acceptance check. Returns nil when the roll is
// rejected, spawning is disabled for the mode, or the field is saturated.
func (s *Spawner) Tick(deltaMillis float64, enabled bool, onField int) *PowerUp {
	s.elapsedMillis += deltaMillis
	if s.elapsedMillis <= SpawnInterval {
		return nil
	}
	s.elapsedMillis = 0
	if !enabled || onField >= MaxOnField {
		return nil
	}

	typ := Types[rand.Intn(len(Types))]
	if rand.Float64() > rarityChance[typ.Rarity()] {
		return nil
	}

	// Central half of the arena horizontally, clear of the score zones.
	return &PowerUp{
		ID:       uuid.NewString(),
		Type:     typ,
		X:        canvas.Width/4 + rand.Float64()*canvas.Width/2,
		Y:        50 + rand.Float64()*(canvas.Height-100),
		Duration: typ.DurationMillis(),
		Rarity:   typ.Rarity(),
	}
}

// Reset clears the spawn timer. Called when a match restarts.
func (s *Spawner) Reset() {
	s.elapsedMillis = 0
}

// Hits reports whether the ball's center is close enough to consume the
// power-up.
func Hits(b *ball.Ball, p *PowerUp) bool {
	dx := b.X - p.X
	dy := b.Y - p.Y
	return math.Sqrt(dx*dx+dy*dy) < b.Radius+PickupRadius
}

// OwnerOf attributes a pickup to a player by the ball's travel direction:
// a ball moving right was last hit by the left player, and vice versa.
func OwnerOf(b *ball.Ball) int {
	if b.Vx > 0 {
		return 0
	}
	return 1
}
