package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateEdges(t *testing.T) {
	var s State
	s.Press(Attack)
	assert.True(t, s.Pressed(Attack))
	assert.True(t, s.Consume(Attack))
	assert.False(t, s.Consume(Attack), "a press is read once")

	s.Press(Jump)
	s.GuardHeld = true
	s.EndFrame()
	assert.False(t, s.Pressed(Jump))
	assert.True(t, s.GuardHeld, "levels survive the end of frame")

	s.Press(Button(99))
	assert.False(t, s.Pressed(Button(99)))

	var nilState *State
	assert.False(t, nilState.Consume(Dodge))
	assert.Zero(t, nilState.MoveMagnitude())
}

func TestParseScript(t *testing.T) {
	frames, err := ParseScript(`
# walk right then swing
2 right
1 +attack
3 guard +dodge
`)
	require.NoError(t, err)
	require.Len(t, frames, 6)
	assert.Equal(t, 1.0, frames[0].MoveX)
	assert.Equal(t, []Button{Attack}, frames[2].Press)
	assert.True(t, frames[3].Guard)
	assert.Equal(t, []Button{Dodge}, frames[3].Press)
	assert.Empty(t, frames[4].Press)

	tests := []string{"x right", "0 right", "1 sideways", "1 +fly"}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := ParseScript(src)
			assert.Error(t, err)
		})
	}
}

func TestScriptedSource(t *testing.T) {
	src := NewScriptedSource(
		Frame{MoveX: -1, Press: []Button{Jump}},
		Frame{Guard: true},
	)
	var s State

	src.Poll(&s)
	assert.Equal(t, -1.0, s.MoveX())
	assert.True(t, s.Consume(Jump))
	s.EndFrame()

	src.Poll(&s)
	assert.True(t, s.GuardHeld)
	assert.True(t, src.Done())

	src.Poll(&s)
	assert.False(t, s.GuardHeld)
	assert.Zero(t, s.MoveMagnitude())
}
