// Package audio is the trigger surface for the audio collaborator. Tone
// synthesis lives outside this backend; the game engine only fires named
// events, each carrying no parameters.
package audio

import "log"

// Logger logs each trigger. Useful on a headless server where no real
// audio sink is attached.
type Logger struct{}

func (Logger) WallHit()   { log.Println("[audio] wall-hit") }
func (Logger) PaddleHit() { log.Println("[audio] paddle-hit") }
func (Logger) Score()     { log.Println("[audio] score") }
func (Logger) PowerUp()   { log.Println("[audio] power-up") }
func (Logger) GameOver()  { log.Println("[audio] game-over") }

// Silent discards every trigger.
type Silent struct{}

func (Silent) WallHit()   {}
func (Silent) PaddleHit() {}
func (Silent) Score()     {}
func (Silent) PowerUp()   {}
func (Silent) GameOver()  {}
