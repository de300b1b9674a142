// Package physics is the collision kernel: pure functions that resolve
// ball-wall and ball-paddle contacts. Scoring (a ball leaving the arena
// left or right) is not a collision and is handled by the game step.
package physics

import (
	"math"

	"github.com/neon-pong/backend/ball"
	"github.com/neon-pong/backend/canvas"
	"github.com/neon-pong/backend/paddle"
)

const (
	// MaxBounceAngle caps the deflection off a paddle face at ±54 degrees.
	MaxBounceAngle = math.Pi * 0.6

	// PaddleAcceleration is the per-bounce speed ramp that keeps rallies
	// escalating.
	PaddleAcceleration = 1.02
)

// CollideWalls bounces the ball off the top and bottom bounds, inverting
// its vertical velocity and clamping the position back inside so the next
// step cannot re-trigger the same contact. Reports whether a wall was hit.
func CollideWalls(b *ball.Ball) bool {
	if b.Y-b.Radius <= 0 {
		b.Vy = -b.Vy
		b.Y = b.Radius
		return true
	}
	if b.Y+b.Radius >= canvas.Height {
		b.Vy = -b.Vy
		b.Y = canvas.Height - b.Radius
		return true
	}
	return false
}

// CollidePaddle resolves a ball-paddle contact. A collision requires the
// ball's bounding circle to overlap the paddle rectangle while the ball is
// still moving toward it; a departing ball never re-bounces. The bounce
// angle depends on where the ball struck the face: dead center goes out
// flat, the edges deflect up to MaxBounceAngle/2. Speed is preserved and
// scaled by PaddleAcceleration, the horizontal direction is forced away
// from the paddle, and the ball is repositioned flush against the face.
func CollidePaddle(b *ball.Ball, p *paddle.Paddle, left bool) bool {
	if left {
		if !(b.X-b.Radius <= p.X+p.Width && b.X+b.Radius >= p.X) {
			return false
		}
		if b.Vx >= 0 {
			return false
		}
	} else {
		if !(b.X+b.Radius >= p.X && b.X-b.Radius <= p.X+p.Width) {
			return false
		}
		if b.Vx <= 0 {
			return false
		}
	}
	if b.Y < p.Y || b.Y > p.Y+p.Height {
		return false
	}

	hitPos := (b.Y - p.Y) / p.Height
	angle := (hitPos - 0.5) * MaxBounceAngle
	speed := math.Hypot(b.Vx, b.Vy) * PaddleAcceleration

	b.Vx = math.Abs(math.Cos(angle) * speed)
	if !left {
		b.Vx = -b.Vx
	}
	b.Vy = math.Sin(angle) * speed

	if left {
		b.X = p.X + p.Width + b.Radius
	} else {
		b.X = p.X - b.Radius
	}
	return true
}

// OutLeft and OutRight report a scoring exit past the arena edge.
func OutLeft(b *ball.Ball) bool {
	return b.X < -canvas.ScoreMargin
}

func OutRight(b *ball.Ball) bool {
	return b.X > canvas.Width+canvas.ScoreMargin
}
