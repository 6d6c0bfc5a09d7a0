package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalOrderAndRemove(t *testing.T) {
	var s Signal[int]
	var got []string

	a := s.Add(func(v int) { got = append(got, "a") })
	s.Add(func(v int) { got = append(got, "b") })

	s.Emit(1)
	assert.Equal(t, []string{"a", "b"}, got)

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	got = nil
	s.Emit(2)
	assert.Equal(t, []string{"b"}, got)
	assert.Equal(t, 1, s.Len())
}

func TestSignalRemoveDuringEmit(t *testing.T) {
	var s Signal[int]
	calls := 0
	var second Subscription
	s.Add(func(int) {
		calls++
		s.Remove(second)
	})
	second = s.Add(func(int) { calls++ })

	s.Emit(0)
	assert.Equal(t, 2, calls)

	s.Emit(0)
	assert.Equal(t, 3, calls)
}
