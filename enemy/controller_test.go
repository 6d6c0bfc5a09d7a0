package enemy

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/actor/actortest"
	"github.com/milk9111/groggy/combat"
	"github.com/milk9111/groggy/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type destroyCall struct {
	entity ecs.Entity
	delay  float64
}

type fakeWorld struct {
	destroyed []destroyCall
	defeated  int
}

func (w *fakeWorld) DestroyAfter(e ecs.Entity, delay float64) {
	w.destroyed = append(w.destroyed, destroyCall{entity: e, delay: delay})
}

func (w *fakeWorld) RecordEnemyDefeated() { w.defeated++ }

func newEnemy(t *testing.T, targetX float64) (*Controller, *actortest.Body, *actortest.Target, *fakeWorld, *actor.RecordingAnimator) {
	t.Helper()
	body := actortest.NewBody(0, 1)
	anim := &actor.RecordingAnimator{}
	world := &fakeWorld{}
	events := &ecs.EventQueue{}
	c := New(ecs.Entity(7), body, anim, DefaultConfig(), Deps{Events: events, Destroyer: world, Recorder: world})
	target := &actortest.Target{ID: 1, Pos: cp.Vector{X: targetX, Y: 1}}
	c.SetTarget(target)
	return c, body, target, world, anim
}

func tick(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Update(0.25)
		c.FixedUpdate(0.25)
	}
}

func TestEnemyIdleDwellsBeforeChasing(t *testing.T) {
	c, body, _, _, _ := newEnemy(t, 8)
	require.Equal(t, "idle", c.StateName())

	tick(c, 1)
	assert.Equal(t, "idle", c.StateName())

	tick(c, 1)
	assert.Equal(t, "chase", c.StateName())
	assert.Equal(t, 3.0, body.Vel.X, "walks toward a far target")
}

func TestEnemyStaysIdleWithoutTarget(t *testing.T) {
	c, _, target, _, _ := newEnemy(t, 30)
	tick(c, 10)
	assert.Equal(t, "idle", c.StateName())

	target.Dead = true
	target.Pos.X = 2
	tick(c, 4)
	assert.Equal(t, "idle", c.StateName())
}

func TestEnemyChaseKeepsPreferredDistance(t *testing.T) {
	tests := []struct {
		name    string
		targetX float64
		wantVX  float64
	}{
		{name: "too_far", targetX: 6, wantVX: 3},
		{name: "in_band", targetX: 3.5, wantVX: 0},
		{name: "too_close_behind", targetX: -2, wantVX: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, body, _, _, _ := newEnemy(t, tt.targetX)
			c.lastAttack = 1e9 // keep it from attacking
			c.machine.ChangeState(&chaseState{})
			c.FixedUpdate(0.016)
			assert.Equal(t, tt.wantVX, body.Vel.X)
		})
	}
}

func TestEnemyAttackCycle(t *testing.T) {
	c, _, target, _, anim := newEnemy(t, 3)

	tick(c, 3) // idle dwell, chase, attack
	require.Equal(t, "attack", c.StateName())
	assert.Equal(t, actor.TriggerAttack, anim.Last())
	assert.True(t, c.MovementLocked())

	tick(c, 1)
	require.Len(t, target.Received, 1)
	hit := target.Received[0]
	assert.Equal(t, 15.0, hit.Damage)
	assert.True(t, hit.CanBeGuarded)
	assert.Same(t, c.Core, hit.Source)

	tick(c, 1)
	assert.Equal(t, "idle", c.StateName())
	assert.False(t, c.MovementLocked())

	// cooldown holds the next swing back until two seconds after the hit
	tick(c, 6)
	assert.Equal(t, "chase", c.StateName())
	assert.Len(t, target.Received, 1)

	tick(c, 2)
	assert.Len(t, target.Received, 2)
}

func TestEnemyLongFrameStillLandsHit(t *testing.T) {
	c, _, target, _, _ := newEnemy(t, 3)
	tick(c, 3)
	require.Equal(t, "attack", c.StateName())

	c.Update(2)
	require.Len(t, target.Received, 1)
	assert.Equal(t, "idle", c.StateName())
}

func TestEnemyAttackWhiffsWhenTargetLeaves(t *testing.T) {
	c, _, target, _, _ := newEnemy(t, 3)
	tick(c, 3)
	require.Equal(t, "attack", c.StateName())

	target.Pos.X = 8
	tick(c, 2)
	assert.Empty(t, target.Received)
	assert.Equal(t, "chase", c.StateName())
	assert.True(t, c.CanAttack(), "a missed swing does not start the cooldown")
}

func TestEnemyGroggyCycle(t *testing.T) {
	c, _, _, _, anim := newEnemy(t, 8)

	c.ReceiveAttack(actor.Attack{Damage: 1, DurabilityDamage: 100})
	require.Equal(t, "groggy", c.StateName())
	assert.Equal(t, actor.TriggerGroggy, anim.Last())

	c.ReceiveAttack(actor.Attack{DurabilityDamage: 50})
	assert.Equal(t, 0.0, c.Durability().Current())

	tick(c, 19)
	assert.Equal(t, "groggy", c.StateName())
	tick(c, 1)
	assert.Equal(t, "idle", c.StateName())
	assert.Equal(t, 100.0, c.Durability().Current())
}

func TestEnemyExecution(t *testing.T) {
	c, _, _, world, _ := newEnemy(t, 8)
	finder := &actortest.Finder{}
	finder.Add(c.Entity(), ecs.CategoryEnemy, c, c.Position)

	exec := combat.NewExecution(combat.DefaultExecutionConfig(), finder, nil)
	executor := actor.NewCore(actor.Config{Entity: ecs.Entity(1), Animator: actor.NopAnimator{}})

	assert.False(t, exec.TryExecute(executor, cp.Vector{X: 1, Y: 1}), "not groggy yet")

	c.ReceiveAttack(actor.Attack{DurabilityDamage: 100})
	require.True(t, exec.TryExecute(executor, cp.Vector{X: 1, Y: 1}))
	assert.True(t, c.Frozen())

	state := c.StateName()
	tick(c, 2)
	assert.Equal(t, state, c.StateName(), "frozen enemies do not think")

	exec.Update(1)
	assert.True(t, c.IsDead())
	assert.True(t, c.Executed())
	assert.False(t, c.Frozen())
	assert.Equal(t, "dead", c.StateName())
	assert.Equal(t, 1, world.defeated)
	assert.Equal(t, []destroyCall{{entity: c.Entity(), delay: 1}}, world.destroyed)
}

func TestEnemyDeathPublishesEvents(t *testing.T) {
	events := &ecs.EventQueue{}
	world := &fakeWorld{}
	c := New(ecs.Entity(3), actortest.NewBody(0, 1), actor.NopAnimator{}, DefaultConfig(), Deps{Events: events, Destroyer: world, Recorder: world})

	c.ReceiveAttack(actor.Attack{Damage: 40})
	c.ReceiveAttack(actor.Attack{Damage: 80})
	require.True(t, c.IsDead())

	var kinds []ecs.EventKind
	for _, evt := range events.Drain() {
		kinds = append(kinds, evt.Kind)
	}
	assert.Contains(t, kinds, ecs.EventDamage)
	assert.Contains(t, kinds, ecs.EventDeath)
	assert.Equal(t, "dead", c.StateName())

	assert.Zero(t, c.ReceiveAttack(actor.Attack{Damage: 10}))
	assert.Equal(t, 1, world.defeated)
}
