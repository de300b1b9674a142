package ball

import (
	"math"
	"math/rand"

	"github.com/neon-pong/backend/canvas"
)

// ball constants
const (
	Radius       = 10.0
	InitialSpeed = 5.0
	TrailLength  = 7
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Vx     float64 `json:"vx"`
	Vy     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Trail  []Point `json:"trail"`
}

// New spawns a ball at the center of the canvas with a randomized launch:
// up to 45 degrees off horizontal, going left or right with equal chance.
func New() Ball {
	angle := rand.Float64()*math.Pi/2 - math.Pi/4
	direction := 1.0
	if rand.Float64() > 0.5 {
		direction = -1.0
	}
	return Ball{
		X:      canvas.Width / 2,
		Y:      canvas.Height / 2,
		Vx:     math.Cos(angle) * InitialSpeed * direction,
		Vy:     math.Sin(angle) * InitialSpeed,
		Radius: Radius,
		Trail:  []Point{},
	}
}

// NewAt spawns a ball with an explicit position and velocity. Used by the
// multi-ball power-up to mirror extra balls off the primary one.
func NewAt(x, y, vx, vy float64) Ball {
	return Ball{
		X:      x,
		Y:      y,
		Vx:     vx,
		Vy:     vy,
		Radius: Radius,
		Trail:  []Point{},
	}
}

// PushTrail appends the ball's current position to its trail, keeping only
// the last TrailLength points. The trail is render-only state.
func (b *Ball) PushTrail() {
	b.Trail = append(b.Trail, Point{X: b.X, Y: b.Y})
	if len(b.Trail) > TrailLength {
		b.Trail = b.Trail[len(b.Trail)-TrailLength:]
	}
}
