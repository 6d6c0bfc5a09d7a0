package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	log []string
	m   *Machine[*recorder]
}

type stepState struct {
	name    string
	next    *stepState
	updates int
}

func (s *stepState) Name() string          { return s.name }
func (s *stepState) Enter(r *recorder)     { r.log = append(r.log, "enter "+s.name) }
func (s *stepState) Exit(r *recorder)      { r.log = append(r.log, "exit "+s.name) }
func (s *stepState) Update(r *recorder, dt float64) {
	s.updates++
	r.log = append(r.log, "update "+s.name)
}
func (s *stepState) CheckTransitions(r *recorder) {
	if s.next != nil {
		r.m.ChangeState(s.next)
	}
}
func (s *stepState) OnHit(r *recorder, damage float64) {
	r.log = append(r.log, "hit "+s.name)
}

// bare has no hooks at all.
type bare struct{}

func TestMachineLifecycle(t *testing.T) {
	r := &recorder{}
	r.m = New(r, "test")

	b := &stepState{name: "b"}
	a := &stepState{name: "a", next: b}

	var transitions []Transition
	r.m.Changed.Add(func(tr Transition) { transitions = append(transitions, tr) })

	r.m.Initialize(a)
	r.m.Update(0.016)
	r.m.OnHit(5)

	assert.Equal(t, []string{"enter a", "update a", "exit a", "enter b", "hit b"}, r.log)
	assert.Equal(t, []Transition{{From: "a", To: "b"}}, transitions)
	assert.Equal(t, "b", r.m.CurrentName())
}

func TestMachineChangeToSameStateIsNoop(t *testing.T) {
	r := &recorder{}
	r.m = New(r, "test")
	a := &stepState{name: "a"}
	r.m.Initialize(a)

	r.m.ChangeState(a)
	assert.Equal(t, []string{"enter a"}, r.log)

	// a fresh instance with the same name is a real transition
	r.m.ChangeState(&stepState{name: "a"})
	assert.Equal(t, []string{"enter a", "exit a", "enter a"}, r.log)
}

func TestMachineOptionalHooks(t *testing.T) {
	r := &recorder{}
	m := New(r, "bare")
	m.Initialize(&bare{})
	m.Update(1)
	m.FixedUpdate(1)
	m.OnHit(1)
	m.ChangeState(&stepState{name: "x"})

	assert.Equal(t, []string{"enter x"}, r.log)
	assert.Equal(t, "*fsm.bare", Name(&bare{}))
	assert.Equal(t, "none", Name(nil))
}
