package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
)

const stickDeadzone = 0.2

// EbitenSource reads keyboard, mouse and the first standard gamepad.
//
//	A/D or arrows  move        Space         jump
//	J or LMB       attack      K or RMB      heavy attack
//	L              special     Shift         dodge
//	E (held)       guard       F             interact / execute
type EbitenSource struct{}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (EbitenSource) Poll(s *State) {
	if s == nil {
		return
	}

	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	guard := ebiten.IsKeyPressed(ebiten.KeyE)

	press := func(b Button, just bool) {
		if just {
			s.Press(b)
		}
	}
	press(Jump, inpututil.IsKeyJustPressed(ebiten.KeySpace))
	press(Attack, inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))
	press(HeavyAttack, inpututil.IsKeyJustPressed(ebiten.KeyK) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight))
	press(Special, inpututil.IsKeyJustPressed(ebiten.KeyL))
	press(Dodge, inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight))
	press(Interact, inpututil.IsKeyJustPressed(ebiten.KeyF))

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		guard = guard || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)

		padPress := func(b Button, btn ebiten.StandardGamepadButton) {
			press(b, inpututil.IsStandardGamepadButtonJustPressed(id, btn))
		}
		padPress(Jump, ebiten.StandardGamepadButtonRightBottom)
		padPress(Attack, ebiten.StandardGamepadButtonRightLeft)
		padPress(HeavyAttack, ebiten.StandardGamepadButtonRightTop)
		padPress(Special, ebiten.StandardGamepadButtonFrontTopRight)
		padPress(Dodge, ebiten.StandardGamepadButtonRightRight)
		padPress(Interact, ebiten.StandardGamepadButtonFrontTopLeft)
	}

	s.Move = cp.Vector{X: moveX}
	s.GuardHeld = guard
}
