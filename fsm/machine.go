// Package fsm is the state machine shared by the player, enemies and bosses.
// A state is any value; it opts into lifecycle hooks by implementing the
// hook interfaces below. States should be pointers: every transition installs
// a fresh instance carrying its own timers, and identity decides whether a
// ChangeState is a no-op.
package fsm

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/groggy/component"
)

type State[A any] interface{}

type Enterer[A any] interface {
	Enter(owner A)
}

type Updater[A any] interface {
	Update(owner A, dt float64)
}

type FixedUpdater[A any] interface {
	FixedUpdate(owner A, dt float64)
}

type Exiter[A any] interface {
	Exit(owner A)
}

type TransitionChecker[A any] interface {
	CheckTransitions(owner A)
}

type HitHandler[A any] interface {
	OnHit(owner A, damage float64)
}

type Namer interface {
	Name() string
}

// Transition is the payload of Machine.Changed.
type Transition struct {
	From string
	To   string
}

type Machine[A any] struct {
	owner   A
	current State[A]
	label   string

	Changed component.Signal[Transition]
}

// New creates a machine for owner. label only tags log lines.
func New[A any](owner A, label string) *Machine[A] {
	return &Machine[A]{owner: owner, label: label}
}

// Initialize installs the first state and enters it.
func (m *Machine[A]) Initialize(s State[A]) {
	if m == nil || s == nil {
		return
	}
	m.current = s
	if e, ok := s.(Enterer[A]); ok {
		e.Enter(m.owner)
	}
}

// ChangeState exits the current state and enters s. Changing to the state
// already installed does nothing.
func (m *Machine[A]) ChangeState(s State[A]) {
	if m == nil || s == nil || m.current == s {
		return
	}
	prev := m.current
	if x, ok := prev.(Exiter[A]); ok {
		x.Exit(m.owner)
	}
	m.current = s
	t := Transition{From: Name(prev), To: Name(s)}
	slog.Debug("state changed", "machine", m.label, "from", t.From, "to", t.To)
	m.Changed.Emit(t)
	if e, ok := s.(Enterer[A]); ok {
		e.Enter(m.owner)
	}
}

// Update runs the state's update hook, then its transition checks.
func (m *Machine[A]) Update(dt float64) {
	if m == nil || m.current == nil {
		return
	}
	if u, ok := m.current.(Updater[A]); ok {
		u.Update(m.owner, dt)
	}
	if c, ok := m.current.(TransitionChecker[A]); ok {
		c.CheckTransitions(m.owner)
	}
}

func (m *Machine[A]) FixedUpdate(dt float64) {
	if m == nil || m.current == nil {
		return
	}
	if f, ok := m.current.(FixedUpdater[A]); ok {
		f.FixedUpdate(m.owner, dt)
	}
}

// OnHit forwards incoming damage to the current state.
func (m *Machine[A]) OnHit(damage float64) {
	if m == nil || m.current == nil {
		return
	}
	if h, ok := m.current.(HitHandler[A]); ok {
		h.OnHit(m.owner, damage)
	}
}

func (m *Machine[A]) Current() State[A] {
	if m == nil {
		return nil
	}
	return m.current
}

// CurrentName returns the current state's name.
func (m *Machine[A]) CurrentName() string {
	if m == nil {
		return ""
	}
	return Name(m.current)
}

// Name reports a state's name, falling back to its type.
func Name(s any) string {
	if s == nil {
		return "none"
	}
	if n, ok := s.(Namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
