package game

import (
	"math/rand"

	"github.com/neon-pong/backend/ball"
	"github.com/neon-pong/backend/paddle"
	"github.com/neon-pong/backend/physics"
	"github.com/neon-pong/backend/powerup"
)

// Events receives discrete game notifications, fired exactly once per
// qualifying event. The audio collaborator implements this.
type Events interface {
	WallHit()
	PaddleHit()
	Score()
	PowerUp()
	GameOver()
}

// NopEvents discards every notification.
type NopEvents struct{}

func (NopEvents) WallHit()   {}
func (NopEvents) PaddleHit() {}
func (NopEvents) Score()     {}
func (NopEvents) PowerUp()   {}
func (NopEvents) GameOver()  {}

// MaxStepDelta clamps the elapsed time fed into one step, so a stalled
// host cannot produce a runaway catch-up step.
const MaxStepDelta = 0.1

// aiFactor is the exponential smoothing the AI paddle tracks the primary
// ball with. Zen uses a fixed, softer factor.
const (
	aiFactor    = 0.04
	aiFactorZen = 0.02
)

// Step advances the match by delta seconds. While paused or over it is a
// no-op, which makes pause exact and resumable. rightIsHuman selects local
// multiplayer (input-driven right paddle) over the AI. nowMillis anchors
// power-up expiry.
func (s *State) Step(delta float64, in Inputs, rightIsHuman bool, sp *powerup.Spawner, nowMillis int64, ev Events) {
	if s.IsPaused || s.IsGameOver {
		return
	}
	if delta > MaxStepDelta {
		delta = MaxStepDelta
	}

	s.stepPaddles(delta, in, rightIsHuman)
	s.stepBalls(delta, ev)
	s.stepPowerUps(delta, sp, nowMillis, ev)

	if s.TimeRemaining != nil {
		t := *s.TimeRemaining - delta
		if t < 0 {
			t = 0
		}
		*s.TimeRemaining = t
	}

	s.checkWin(ev)

	if s.GameMode == Chaos {
		s.DifficultyMultiplier = 1 + float64(s.Total())*0.05
		if rand.Float64() < 0.001*delta*60 && len(s.Balls) < MaxChaosBalls {
			s.Balls = append(s.Balls, ball.New())
		}
	}
}

func (s *State) stepPaddles(delta float64, in Inputs, rightIsHuman bool) {
	move := func(p *paddle.Paddle, dir Direction) {
		amount := p.Speed * delta * 60
		switch dir {
		case Up:
			p.Y -= amount
		case Down:
			p.Y += amount
		}
		p.Clamp()
	}

	move(&s.LeftPaddle, in.Left)

	if rightIsHuman {
		move(&s.RightPaddle, in.Right)
		return
	}

	// AI: track the primary ball with exponential smoothing.
	factor := aiFactor * s.DifficultyMultiplier
	if s.GameMode == Zen {
		factor = aiFactorZen
	}
	target := s.Balls[0].Y - s.RightPaddle.Height/2
	s.RightPaddle.Y += (target - s.RightPaddle.Y) * factor
	s.RightPaddle.Clamp()
}

func (s *State) stepBalls(delta float64, ev Events) {
	speed := delta * 60 * s.DifficultyMultiplier

	for i := range s.Balls {
		b := &s.Balls[i]
		b.PushTrail()
		b.X += b.Vx * speed
		b.Y += b.Vy * speed

		if physics.CollideWalls(b) {
			ev.WallHit()
		}
		if physics.CollidePaddle(b, &s.LeftPaddle, true) {
			ev.PaddleHit()
		}
		if physics.CollidePaddle(b, &s.RightPaddle, false) {
			ev.PaddleHit()
		}
	}

	// Scoring: only the primary ball, or the last ball standing, scores.
	// Stray multi-ball exits are cleared silently.
	n := len(s.Balls)
	primaryExited := false
	kept := s.Balls[:0]
	for i := range s.Balls {
		b := &s.Balls[i]
		switch {
		case physics.OutLeft(b):
			if i == 0 || n == 1 {
				s.RightScore++
				ev.Score()
			}
			if i == 0 {
				primaryExited = true
			}
		case physics.OutRight(b):
			if i == 0 || n == 1 {
				s.LeftScore++
				ev.Score()
			}
			if i == 0 {
				primaryExited = true
			}
		default:
			kept = append(kept, *b)
		}
	}
	s.Balls = kept

	// A primary exit ends the rally outright: any surviving multi-balls
	// are discarded and play restarts from a single fresh ball.
	if primaryExited || len(s.Balls) == 0 {
		s.Balls = []ball.Ball{ball.New()}
	}
	s.Ball = s.Balls[0]
}

func (s *State) stepPowerUps(delta float64, sp *powerup.Spawner, nowMillis int64, ev Events) {
	// Purge expired effects; restorations fire exactly once, on purge.
	active := s.ActivePowerUps[:0]
	for _, a := range s.ActivePowerUps {
		if !a.Expired(nowMillis) {
			active = append(active, a)
			continue
		}
		switch a.Type {
		case powerup.PaddleGrow, powerup.PaddleShrink:
			s.LeftPaddle.Height = s.LeftPaddle.BaseHeight
			s.RightPaddle.Height = s.RightPaddle.BaseHeight
			s.LeftPaddle.Clamp()
			s.RightPaddle.Clamp()
		case powerup.SlowMo:
			s.DifficultyMultiplier = 1
		}
	}
	s.ActivePowerUps = active

	// Pickup detection: any ball close enough consumes the power-up.
	// Indexed access throughout: multiBall reallocates s.Balls mid-loop.
	// Balls spawned this step do not collect until the next one.
	n := len(s.Balls)
	for i := 0; i < n; i++ {
		remaining := s.PowerUps[:0]
		for _, p := range s.PowerUps {
			if !powerup.Hits(&s.Balls[i], &p) {
				remaining = append(remaining, p)
				continue
			}
			s.applyPowerUp(p, powerup.OwnerOf(&s.Balls[i]), nowMillis)
			ev.PowerUp()
		}
		s.PowerUps = remaining
	}

	if p := sp.Tick(delta*1000, s.GameMode.PowerUpsEnabled(), len(s.PowerUps)); p != nil {
		s.PowerUps = append(s.PowerUps, *p)
	}
}

func (s *State) applyPowerUp(p powerup.PowerUp, playerID int, nowMillis int64) {
	owner, opponent := &s.LeftPaddle, &s.RightPaddle
	if playerID == 1 {
		owner, opponent = &s.RightPaddle, &s.LeftPaddle
	}

	switch p.Type {
	case powerup.PaddleGrow:
		owner.Height = owner.BaseHeight * 1.5
		owner.Clamp()
	case powerup.PaddleShrink:
		opponent.Height = opponent.BaseHeight * 0.6
		opponent.Clamp()
	case powerup.MultiBall:
		if len(s.Balls) < 3 {
			primary := s.Balls[0]
			s.Balls = append(s.Balls,
				ball.NewAt(primary.X, primary.Y, -primary.Vx, primary.Vy*1.2),
				ball.NewAt(primary.X, primary.Y, primary.Vx, -primary.Vy*1.2),
			)
		}
	case powerup.SlowMo:
		s.DifficultyMultiplier *= 0.5
	case powerup.SpeedBoost:
		for i := range s.Balls {
			s.Balls[i].Vx *= 1.3
			s.Balls[i].Vy *= 1.3
		}
	case powerup.Shield, powerup.CurveShot:
		// Recorded as active only; the renderer reads these off the state.
	}

	s.ActivePowerUps = append(s.ActivePowerUps, powerup.Active{
		Type:      p.Type,
		PlayerID:  playerID,
		ExpiresAt: nowMillis + p.Duration,
		Duration:  p.Duration,
	})
}

func (s *State) checkWin(ev Events) {
	if s.IsGameOver {
		return
	}

	if s.GameMode == TimeAttack {
		if s.TimeRemaining != nil && *s.TimeRemaining <= 0 {
			s.IsGameOver = true
			switch {
			case s.LeftScore > s.RightScore:
				s.Winner = winner("left")
			case s.RightScore > s.LeftScore:
				s.Winner = winner("right")
			}
			ev.GameOver()
		}
		return
	}
	if s.GameMode == Zen {
		return
	}

	if s.LeftScore >= WinScore {
		s.IsGameOver = true
		s.Winner = winner("left")
		ev.GameOver()
	} else if s.RightScore >= WinScore {
		s.IsGameOver = true
		s.Winner = winner("right")
		ev.GameOver()
	}
}

func winner(side string) *string {
	return &side
}
