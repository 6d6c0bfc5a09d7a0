package boss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
choose := func(ctx) {
	if ctx.phase == 1 {
		return 2
	}
	if ctx.distance >= 0.0 && ctx.distance < 2.0 {
		return ctx.available[0]
	}
	return ctx.available[len(ctx.available)-1]
}
`

func TestScriptSelector(t *testing.T) {
	sel, err := NewScriptSelector("test", []byte(testScript))
	require.NoError(t, err)

	assert.Equal(t, 1, sel.Select(SelectContext{Phase: 0, Available: []int{0, 1}, Distance: 3, LastAttack: -1}))
	assert.Equal(t, 0, sel.Select(SelectContext{Phase: 0, Available: []int{0, 1}, Distance: 1}))
	assert.Equal(t, 2, sel.Select(SelectContext{Phase: 1, Available: []int{0, 1, 2}, Distance: 3}))
}

func TestScriptSelectorErrors(t *testing.T) {
	_, err := NewScriptSelector("broken", []byte(`choose := func(ctx) { return missing(1) }`))
	assert.Error(t, err)

	sel, err := NewScriptSelector("stringy", []byte(`choose := func(ctx) { return "slam" }`))
	require.NoError(t, err)
	assert.Equal(t, -1, sel.Select(SelectContext{Available: []int{0}}))

	sel, err = NewScriptSelector("runtime", []byte("x := 1\nchoose := func(ctx) { return x() }"))
	require.NoError(t, err)
	assert.Equal(t, -1, sel.Select(SelectContext{Available: []int{0}}))

	var nilSel *ScriptSelector
	assert.Equal(t, -1, nilSel.Select(SelectContext{}))
}

func TestBossUsesScriptSelector(t *testing.T) {
	sel, err := NewScriptSelector("test", []byte(testScript))
	require.NoError(t, err)

	c, _, _, _ := newBoss(t, DefaultConfig(), 3)
	c.SetSelector(sel)
	assert.Equal(t, 1, c.SelectAttack())
}
