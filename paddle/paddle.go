package paddle

import "github.com/neon-pong/backend/canvas"

// paddle constants
const (
	Width  = 12.0
	Height = 100.0
	Speed  = 8.0
	Margin = 20.0
)

type Paddle struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	BaseHeight float64 `json:"baseHeight"`
	Speed      float64 `json:"speed"`
}

// NewLeft and NewRight center a paddle vertically against its wall.
func NewLeft() Paddle {
	return newPaddle(Margin)
}

func NewRight() Paddle {
	return newPaddle(canvas.Width - Margin - Width)
}

func newPaddle(x float64) Paddle {
	return Paddle{
		X:          x,
		Y:          canvas.Height/2 - Height/2,
		Width:      Width,
		Height:     Height,
		BaseHeight: Height,
		Speed:      Speed,
	}
}

// Clamp keeps the paddle fully inside the arena. Called after every move
// and after any height change, so the bounds invariant holds each step.
func (p *Paddle) Clamp() {
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > canvas.Height-p.Height {
		p.Y = canvas.Height - p.Height
	}
}
