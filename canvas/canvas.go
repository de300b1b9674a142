package canvas

// Canvas dimensions are fixed; both peers simulate the same arena.
const (
	Width  = 800.0
	Height = 600.0

	// ScoreMargin is how far past the left/right edge a ball must travel
	// before it counts as a scoring event rather than a near miss.
	ScoreMargin = 50.0
)

type Canvas struct {
	Width  float64
	Height float64
}

func Default() Canvas {
	return Canvas{Width: Width, Height: Height}
}
