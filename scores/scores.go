package scores

// Scores is embedded in the game state; the json tags keep the wire
// format flat.
type Scores struct {
	LeftScore  int `json:"leftScore"`
	RightScore int `json:"rightScore"`
}

func (s Scores) Total() int {
	return s.LeftScore + s.RightScore
}
