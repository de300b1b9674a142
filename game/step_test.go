package game

import (
	"testing"

	"github.com/neon-pong/backend/ball"
	"github.com/neon-pong/backend/canvas"
	"github.com/neon-pong/backend/powerup"
)

type countingEvents struct {
	wallHits   int
	paddleHits int
	scores     int
	powerUps   int
	gameOvers  int
}

func (c *countingEvents) WallHit()   { c.wallHits++ }
func (c *countingEvents) PaddleHit() { c.paddleHits++ }
func (c *countingEvents) Score()     { c.scores++ }
func (c *countingEvents) PowerUp()   { c.powerUps++ }
func (c *countingEvents) GameOver()  { c.gameOvers++ }

func stepOnce(s *State, delta float64, ev Events) {
	if ev == nil {
		ev = NopEvents{}
	}
	var sp powerup.Spawner
	s.Step(delta, Inputs{Left: None, Right: None}, false, &sp, 0, ev)
}

func TestStep_PausedIsNoOp(t *testing.T) {
	s := NewState(Classic)
	s.IsPaused = true
	before := s.Balls[0]

	stepOnce(s, 0.016, nil)

	if s.Balls[0].X != before.X || s.Balls[0].Y != before.Y {
		t.Error("paused step must not touch ball position")
	}
	if len(s.Balls[0].Trail) != len(before.Trail) {
		t.Error("paused step must not grow the trail")
	}
}

func TestStep_GameOverIsNoOp(t *testing.T) {
	s := NewState(Classic)
	s.IsGameOver = true
	before := s.Balls[0].X

	stepOnce(s, 0.016, nil)

	if s.Balls[0].X != before {
		t.Error("over step must not touch ball position")
	}
}

func TestStep_DeltaClamped(t *testing.T) {
	s := NewState(Classic)
	s.Balls[0] = ball.NewAt(400, 300, 1, 0)

	// A 5 second stall must apply at most MaxStepDelta of movement.
	stepOnce(s, 5.0, nil)

	moved := s.Balls[0].X - 400
	want := 1 * MaxStepDelta * 60
	if moved > want+1e-9 {
		t.Errorf("ball moved %v, want at most %v", moved, want)
	}
}

func TestStep_PaddleInputAndBounds(t *testing.T) {
	s := NewState(Classic)
	var sp powerup.Spawner

	// Drive the left paddle up well past the top bound.
	for i := 0; i < 200; i++ {
		s.Step(0.016, Inputs{Left: Up, Right: None}, false, &sp, 0, NopEvents{})
		if s.LeftPaddle.Y < 0 || s.LeftPaddle.Y > canvas.Height-s.LeftPaddle.Height {
			t.Fatalf("left paddle out of bounds at y=%v", s.LeftPaddle.Y)
		}
		if s.RightPaddle.Y < 0 || s.RightPaddle.Y > canvas.Height-s.RightPaddle.Height {
			t.Fatalf("right paddle out of bounds at y=%v", s.RightPaddle.Y)
		}
	}
	if s.LeftPaddle.Y != 0 {
		t.Errorf("left paddle y = %v, want clamped to 0", s.LeftPaddle.Y)
	}
}

func TestStep_LocalMultiplayerRightPaddle(t *testing.T) {
	s := NewState(Classic)
	var sp powerup.Spawner
	before := s.RightPaddle.Y

	s.Step(0.016, Inputs{Left: None, Right: Down}, true, &sp, 0, NopEvents{})

	if s.RightPaddle.Y <= before {
		t.Errorf("right paddle y = %v, want moved down from %v", s.RightPaddle.Y, before)
	}
}

func TestStep_AITracksPrimaryBall(t *testing.T) {
	s := NewState(Classic)
	s.Balls[0] = ball.NewAt(400, 550, 0, 0)
	before := s.RightPaddle.Y

	stepOnce(s, 0.016, nil)

	if s.RightPaddle.Y <= before {
		t.Errorf("AI paddle y = %v, want moved toward ball below (from %v)", s.RightPaddle.Y, before)
	}

	// One smoothing step: y += (target - y) * 0.04.
	target := 550 - s.RightPaddle.Height/2
	want := before + (target-before)*aiFactor
	if diff := s.RightPaddle.Y - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AI paddle y = %v, want %v", s.RightPaddle.Y, want)
	}
}

func TestStep_ScoreLeftExit(t *testing.T) {
	s := NewState(Classic)
	s.Balls[0] = ball.NewAt(-60, 300, -5, 0)
	ev := &countingEvents{}

	stepOnce(s, 0.016, ev)

	if s.RightScore != 1 {
		t.Errorf("rightScore = %d, want 1", s.RightScore)
	}
	if s.LeftScore != 0 {
		t.Errorf("leftScore = %d, want 0", s.LeftScore)
	}
	if ev.scores != 1 {
		t.Errorf("score events = %d, want 1", ev.scores)
	}
	if len(s.Balls) != 1 {
		t.Fatalf("balls = %d, want a fresh primary ball", len(s.Balls))
	}
	if s.Balls[0].X != canvas.Width/2 {
		t.Errorf("respawned ball x = %v, want center", s.Balls[0].X)
	}
	if s.Ball.X != s.Balls[0].X || s.Ball.Y != s.Balls[0].Y {
		t.Error("primary ball mirror out of sync")
	}
}

func TestStep_StrayMultiBallExitNotScored(t *testing.T) {
	s := NewState(Arcade)
	s.Balls = []ball.Ball{
		ball.NewAt(400, 300, 2, 0),
		ball.NewAt(-60, 300, -5, 0),
		ball.NewAt(400, 200, 2, 0),
	}
	ev := &countingEvents{}

	stepOnce(s, 0.016, ev)

	if ev.scores != 0 {
		t.Errorf("score events = %d, want 0 for stray exit", ev.scores)
	}
	if s.LeftScore != 0 || s.RightScore != 0 {
		t.Errorf("score = %d-%d, want 0-0", s.LeftScore, s.RightScore)
	}
	if len(s.Balls) != 2 {
		t.Errorf("balls = %d, want 2 after clearing the stray", len(s.Balls))
	}
}

func TestStep_PrimaryExitResetsMultiBalls(t *testing.T) {
	s := NewState(Arcade)
	s.Balls = []ball.Ball{
		ball.NewAt(-100, 300, -5, 0),
		ball.NewAt(400, 200, 2, 1),
		ball.NewAt(400, 400, 2, -1),
	}
	ev := &countingEvents{}

	stepOnce(s, 0.001, ev)

	if s.RightScore != 1 {
		t.Errorf("rightScore = %d, want 1", s.RightScore)
	}
	if ev.scores != 1 {
		t.Errorf("score events = %d, want 1", ev.scores)
	}
	// The rally ends with the primary ball: survivors are discarded and
	// play restarts from a single fresh center ball.
	if len(s.Balls) != 1 {
		t.Fatalf("balls = %d, want 1 after primary exit", len(s.Balls))
	}
	if s.Balls[0].X != canvas.Width/2 || s.Balls[0].Y != canvas.Height/2 {
		t.Errorf("respawned ball at (%v,%v), want center", s.Balls[0].X, s.Balls[0].Y)
	}
	if s.Ball.X != s.Balls[0].X || s.Ball.Y != s.Balls[0].Y {
		t.Error("primary ball mirror out of sync")
	}
}

func TestStep_TrailBounded(t *testing.T) {
	s := NewState(Classic)
	s.Balls[0] = ball.NewAt(400, 300, 1, 1)

	for i := 0; i < 30; i++ {
		stepOnce(s, 0.016, nil)
	}

	if got := len(s.Balls[0].Trail); got > ball.TrailLength {
		t.Errorf("trail length = %d, want at most %d", got, ball.TrailLength)
	}
}

func TestCheckWin_ScoreThreshold(t *testing.T) {
	s := NewState(Classic)
	s.LeftScore = WinScore
	ev := &countingEvents{}

	s.checkWin(ev)

	if !s.IsGameOver {
		t.Fatal("expected game over at win score")
	}
	if s.Winner == nil || *s.Winner != "left" {
		t.Errorf("winner = %v, want left", s.Winner)
	}
	if ev.gameOvers != 1 {
		t.Errorf("gameOver events = %d, want 1", ev.gameOvers)
	}

	// Re-checking a finished game must not fire again.
	s.checkWin(ev)
	if ev.gameOvers != 1 {
		t.Errorf("gameOver events = %d after recheck, want 1", ev.gameOvers)
	}
}

func TestCheckWin_ZenNeverEnds(t *testing.T) {
	s := NewState(Zen)
	s.LeftScore = 50

	s.checkWin(NopEvents{})

	if s.IsGameOver {
		t.Error("zen mode must not end on score")
	}
}

func TestCheckWin_TimeAttack(t *testing.T) {
	s := NewState(TimeAttack)
	s.LeftScore = 8
	s.RightScore = 5
	zero := 0.0
	s.TimeRemaining = &zero

	s.checkWin(NopEvents{})

	if !s.IsGameOver {
		t.Fatal("expected game over at time 0")
	}
	if s.Winner == nil || *s.Winner != "left" {
		t.Errorf("winner = %v, want left", s.Winner)
	}
}

func TestCheckWin_TimeAttackDraw(t *testing.T) {
	s := NewState(TimeAttack)
	s.LeftScore = 5
	s.RightScore = 5
	zero := 0.0
	s.TimeRemaining = &zero

	s.checkWin(NopEvents{})

	if !s.IsGameOver {
		t.Fatal("expected game over at time 0")
	}
	if s.Winner != nil {
		t.Errorf("winner = %q, want draw (nil)", *s.Winner)
	}
}

func TestCheckWin_TimeAttackIgnoresScoreThreshold(t *testing.T) {
	s := NewState(TimeAttack)
	s.LeftScore = WinScore + 3

	s.checkWin(NopEvents{})

	if s.IsGameOver {
		t.Error("timeAttack must only end on the countdown")
	}
}

func TestStep_CountdownFloorsAtZero(t *testing.T) {
	s := NewState(TimeAttack)
	small := 0.01
	s.TimeRemaining = &small

	stepOnce(s, 0.05, nil)

	if *s.TimeRemaining != 0 {
		t.Errorf("timeRemaining = %v, want 0", *s.TimeRemaining)
	}
	if !s.IsGameOver {
		t.Error("expected game over once countdown reaches 0")
	}
}

func TestStep_ChaosDifficultyDrift(t *testing.T) {
	s := NewState(Chaos)
	s.LeftScore = 3
	s.RightScore = 2

	stepOnce(s, 0.016, nil)

	want := 1 + 5*0.05
	if s.DifficultyMultiplier != want {
		t.Errorf("difficultyMultiplier = %v, want %v", s.DifficultyMultiplier, want)
	}
}

func TestNewState_TimeAttackCountdown(t *testing.T) {
	s := NewState(TimeAttack)
	if s.TimeRemaining == nil || *s.TimeRemaining != TimeAttackSeconds {
		t.Errorf("timeRemaining = %v, want %v", s.TimeRemaining, TimeAttackSeconds)
	}
	if NewState(Classic).TimeRemaining != nil {
		t.Error("classic mode must not carry a countdown")
	}
}

func TestSnapshot_Isolated(t *testing.T) {
	s := NewState(Classic)
	snap := s.Snapshot()

	s.Balls[0].X = 999
	s.LeftScore = 7

	if snap.Balls[0].X == 999 {
		t.Error("snapshot shares ball storage with live state")
	}
	if snap.LeftScore == 7 {
		t.Error("snapshot shares scores with live state")
	}
}
