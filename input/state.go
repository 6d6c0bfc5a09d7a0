// Package input is the per-tick input surface the player states read:
// a move vector, a held guard level and press edges that a state consumes
// so one press is never read twice.
package input

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Button is an edge-triggered action.
type Button int

const (
	Jump Button = iota
	Attack
	HeavyAttack
	Special
	Dodge
	Interact

	buttonCount
)

var buttonNames = [buttonCount]string{"jump", "attack", "heavy_attack", "special", "dodge", "interact"}

func (b Button) String() string {
	if b < 0 || b >= buttonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// State holds one tick of input.
type State struct {
	Move      cp.Vector
	GuardHeld bool

	pressed [buttonCount]bool
}

// Press raises an edge. It stays raised until consumed or the frame ends.
func (s *State) Press(b Button) {
	if s == nil || b < 0 || b >= buttonCount {
		return
	}
	s.pressed[b] = true
}

func (s *State) Pressed(b Button) bool {
	if s == nil || b < 0 || b >= buttonCount {
		return false
	}
	return s.pressed[b]
}

// Consume clears an edge and reports whether it was raised.
func (s *State) Consume(b Button) bool {
	if !s.Pressed(b) {
		return false
	}
	s.pressed[b] = false
	return true
}

// MoveMagnitude is the length of the move vector.
func (s *State) MoveMagnitude() float64 {
	if s == nil {
		return 0
	}
	return math.Hypot(s.Move.X, s.Move.Y)
}

// MoveX is the horizontal move input.
func (s *State) MoveX() float64 {
	if s == nil {
		return 0
	}
	return s.Move.X
}

// EndFrame drops edges nobody consumed this tick.
func (s *State) EndFrame() {
	if s == nil {
		return
	}
	clear(s.pressed[:])
}

// Reset clears everything, levels included.
func (s *State) Reset() {
	if s == nil {
		return
	}
	*s = State{}
}

// Source fills a State once per tick.
type Source interface {
	Poll(s *State)
}
