package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceClampAndConsume(t *testing.T) {
	table := NewTable()
	r := NewResource(table)

	var changes []ResourceChange
	r.Changed.Add(func(c ResourceChange) { changes = append(changes, c) })

	r.Add(30)
	r.Add(30)
	assert.Equal(t, 60.0, r.Current())
	assert.True(t, r.CanAfford(SpecialAttackCost))

	assert.True(t, r.TryConsume(SpecialAttackCost))
	assert.False(t, r.TryConsume(SpecialAttackCost))
	assert.Equal(t, 10.0, r.Current())

	r.Add(500)
	assert.Equal(t, 100.0, r.Current())
	r.Add(5)
	assert.Len(t, changes, 4)
}

func TestResourceGainScalesWithPlaystyle(t *testing.T) {
	table := NewTable()
	table.SetPlaystyle(Light)
	r := NewResource(table)

	r.Add(10)
	assert.InDelta(t, 20, r.Current(), 1e-9)

	r.Reset()
	assert.Equal(t, 0.0, r.Current())
}
