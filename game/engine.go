package game

import (
	"log"
	"sync"
	"time"

	"github.com/neon-pong/backend/powerup"
)

// TickRate is the loop cadence, matched to display refresh.
const TickRate = 16 * time.Millisecond

// Engine owns one match: it schedules steps at display cadence on a
// single goroutine, so exactly one step mutates the state at a time.
type Engine struct {
	mu      sync.Mutex
	state   *State
	spawner powerup.Spawner
	inputs  Inputs
	events  Events

	// localMultiplayer routes the right paddle to input instead of AI.
	localMultiplayer bool

	ticker   *time.Ticker
	stopChan chan struct{}
	lastTick time.Time
	now      func() time.Time
}

func NewEngine(mode Mode, localMultiplayer bool, ev Events) *Engine {
	if ev == nil {
		ev = NopEvents{}
	}
	return &Engine{
		state:            NewState(mode),
		inputs:           Inputs{Left: None, Right: None},
		events:           ev,
		localMultiplayer: localMultiplayer,
		stopChan:         make(chan struct{}),
		now:              time.Now,
	}
}

// Start begins stepping. The elapsed-time anchor is reset so a restart
// after Stop never applies a large stale delta.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.ticker != nil {
		e.mu.Unlock()
		return // already running
	}
	e.ticker = time.NewTicker(TickRate)
	e.lastTick = e.now()
	e.mu.Unlock()

	go e.loop()
}

// Stop cancels the pending tick, leaving the state exactly as of the last
// completed step.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
		close(e.stopChan)
		e.stopChan = make(chan struct{})
	}
}

func (e *Engine) loop() {
	e.mu.Lock()
	ticker, stop := e.ticker, e.stopChan
	e.mu.Unlock()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.step()
		}
	}
}

func (e *Engine) step() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	delta := now.Sub(e.lastTick).Seconds()
	e.lastTick = now

	wasOver := e.state.IsGameOver
	e.state.Step(delta, e.inputs, e.localMultiplayer, &e.spawner, now.UnixMilli(), e.events)
	if !wasOver && e.state.IsGameOver {
		log.Printf("[game] match over, mode=%s score=%d-%d", e.state.GameMode, e.state.LeftScore, e.state.RightScore)
	}
}

// TogglePause flips the pause flag. A paused engine keeps ticking but
// every step is a no-op, so resume picks up the exact state.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.IsPaused = !e.state.IsPaused
}

// Reset replaces the match with a fresh one in the same mode.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = NewState(e.state.GameMode)
	e.spawner.Reset()
	e.inputs = Inputs{Left: None, Right: None}
}

func (e *Engine) SetLeftInput(dir Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputs.Left = dir
}

func (e *Engine) SetRightInput(dir Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputs.Right = dir
}

// Snapshot returns a read-only copy for the renderer or the wire.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}
