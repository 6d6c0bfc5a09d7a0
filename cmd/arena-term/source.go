package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/input"
)

// holdTime is how long a key counts as held after its last press or repeat.
// Terminals report no key releases, so held actions ride the auto-repeat.
const holdTime = 0.3

// keySource turns terminal key events into input. Presses queue until the
// next Poll; movement and guard stay held for holdTime after the last event.
type keySource struct {
	dt      float64
	left    float64
	right   float64
	guard   float64
	pending []input.Button
}

func newKeySource(tps int) *keySource {
	return &keySource{dt: 1 / float64(max(tps, 1))}
}

var runeButtons = map[rune]input.Button{
	' ': input.Jump,
	'w': input.Jump,
	'j': input.Attack,
	'k': input.HeavyAttack,
	'l': input.Special,
	's': input.Dodge,
	'f': input.Interact,
}

// Key records ev and reports whether it was a game key.
func (k *keySource) Key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		k.left, k.right = holdTime, 0
		return true
	case tcell.KeyRight:
		k.right, k.left = holdTime, 0
		return true
	case tcell.KeyUp:
		k.pending = append(k.pending, input.Jump)
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch r := ev.Rune(); r {
	case 'a', 'A':
		k.left, k.right = holdTime, 0
	case 'd', 'D':
		k.right, k.left = holdTime, 0
	case 'e', 'E':
		k.guard = holdTime
	default:
		b, ok := runeButtons[r]
		if !ok {
			return false
		}
		k.pending = append(k.pending, b)
	}
	return true
}

func (k *keySource) Poll(s *input.State) {
	if s == nil {
		return
	}
	moveX := 0.0
	if k.left > 0 {
		moveX--
	}
	if k.right > 0 {
		moveX++
	}
	s.Move = cp.Vector{X: moveX}
	s.GuardHeld = k.guard > 0
	for _, b := range k.pending {
		s.Press(b)
	}
	k.pending = k.pending[:0]

	k.left = max(0, k.left-k.dt)
	k.right = max(0, k.right-k.dt)
	k.guard = max(0, k.guard-k.dt)
}
