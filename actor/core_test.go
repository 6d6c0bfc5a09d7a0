package actor_test

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/actor/actortest"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCore(x float64) (*actor.Core, *actortest.Body, *actor.RecordingAnimator) {
	body := actortest.NewBody(x, 1)
	anim := &actor.RecordingAnimator{}
	c := actor.NewCore(actor.Config{
		Entity:     ecs.Entity(1),
		Label:      "test",
		Body:       body,
		Animator:   anim,
		Health:     component.NewHealth(100),
		Durability: component.NewDurability(component.DefaultDurabilityConfig()),
	})
	return c, body, anim
}

func TestCoreTargeting(t *testing.T) {
	c, _, _ := newCore(0)

	assert.True(t, math.IsInf(c.DistanceToTarget(), 1))
	assert.Equal(t, 0.0, c.DirectionToTarget())

	target := &actortest.Target{ID: 2, Pos: cp.Vector{X: -3, Y: 1}}
	c.SetTarget(target)
	assert.InDelta(t, 3.0, c.DistanceToTarget(), 1e-9)
	assert.Equal(t, -1.0, c.DirectionToTarget())

	c.FaceTarget()
	assert.Equal(t, -1.0, c.Facing())

	// nearly above: facing is kept
	target.Pos = cp.Vector{X: 0.05, Y: 3}
	c.FaceTarget()
	assert.Equal(t, -1.0, c.Facing())

	target.Dead = true
	assert.False(t, c.HasTarget())
	assert.True(t, math.IsInf(c.DistanceToTarget(), 1))
}

func TestCoreMovementLockAndFreeze(t *testing.T) {
	c, body, _ := newCore(0)

	c.MoveHorizontal(4)
	assert.Equal(t, 4.0, body.Vel.X)

	c.LockMovement()
	assert.Equal(t, 0.0, body.Vel.X)
	c.MoveHorizontal(4)
	assert.Equal(t, 0.0, body.Vel.X)
	c.UnlockMovement()

	c.Freeze()
	assert.True(t, c.Frozen())
	assert.True(t, body.Frozen)
	c.MoveHorizontal(4)
	assert.Equal(t, 0.0, body.Vel.X)

	c.Unfreeze()
	c.MoveHorizontal(2)
	assert.Equal(t, 2.0, body.Vel.X)
}

func TestCoreReceiveAttack(t *testing.T) {
	c, _, _ := newCore(0)

	dealt := c.ReceiveAttack(actor.Attack{Damage: 30, DurabilityDamage: 40})
	assert.Equal(t, 30.0, dealt)
	assert.Equal(t, 70.0, c.Health().Current())
	assert.Equal(t, 60.0, c.Durability().Current())

	c.ReceiveAttack(actor.Attack{Damage: 100, DurabilityDamage: 40})
	require.True(t, c.IsDead())
	assert.Equal(t, 60.0, c.Durability().Current(), "no durability damage on the killing blow")

	assert.Equal(t, 0.0, c.ReceiveAttack(actor.Attack{Damage: 10}))
}

func TestCoreMissingCollaboratorsDegrade(t *testing.T) {
	c := actor.NewCore(actor.Config{Entity: ecs.Entity(9)})

	assert.NotPanics(t, func() {
		c.Trigger(actor.TriggerAttack)
		c.SetFloat(actor.ParamSpeed, 1)
		c.MoveHorizontal(3)
		c.Freeze()
		c.Unfreeze()
		c.UpdateComponents(0.1)
		_ = c.Position()
		_ = c.ReceiveAttack(actor.Attack{Damage: 5})
	})
	assert.False(t, c.Grounded())
}

func TestTargetsInCircle(t *testing.T) {
	near := &actortest.Target{ID: 2, Pos: cp.Vector{X: 1}}
	far := &actortest.Target{ID: 3, Pos: cp.Vector{X: 5}}
	dead := &actortest.Target{ID: 4, Pos: cp.Vector{X: 0.5}, Dead: true}
	self := &actortest.Target{ID: 1, Pos: cp.Vector{}}

	f := &actortest.Finder{}
	for _, tg := range []*actortest.Target{far, near, dead, self} {
		f.AddTarget(tg, ecs.CategoryEnemy)
	}

	got := actor.TargetsInCircle(f, cp.Vector{}, 2, ecs.CategoryEnemy, self.ID)
	require.Len(t, got, 1)
	assert.Equal(t, near.ID, got[0].Entity())

	assert.Empty(t, actor.TargetsInCircle(f, cp.Vector{}, 2, ecs.CategoryPlayer, 0))
	assert.Nil(t, actor.TargetsInCircle(nil, cp.Vector{}, 2, ecs.CategoryEnemy, 0))
}

func TestHitCircle(t *testing.T) {
	center, radius := actor.HitCircle(cp.Vector{X: 2, Y: 1}, -1, 1.5)
	assert.Equal(t, cp.Vector{X: 1.25, Y: 1}, center)
	assert.Equal(t, 0.75, radius)
}

func TestMultiAnimator(t *testing.T) {
	a, b := &actor.RecordingAnimator{}, &actor.RecordingAnimator{}
	m := actor.MultiAnimator{a, nil, b}
	m.SetTrigger(actor.TriggerHit)
	m.SetFloat(actor.ParamSpeed, 2)

	assert.Equal(t, actor.TriggerHit, a.Last())
	assert.Equal(t, actor.TriggerHit, b.Last())
	assert.Equal(t, 2.0, b.Floats[actor.ParamSpeed])
}

func TestRecordingAnimatorLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"unbounded", 0, []string{actor.TriggerAttack, actor.TriggerHit, actor.TriggerDeath}},
		{"last only", 1, []string{actor.TriggerDeath}},
		{"last two", 2, []string{actor.TriggerHit, actor.TriggerDeath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &actor.RecordingAnimator{Limit: tt.limit}
			for range 50 {
				r.SetTrigger(actor.TriggerAttack)
			}
			r.SetTrigger(actor.TriggerAttack)
			r.SetTrigger(actor.TriggerHit)
			r.SetTrigger(actor.TriggerDeath)

			if tt.limit > 0 {
				assert.Equal(t, tt.want, r.Triggers)
			} else {
				assert.Len(t, r.Triggers, 53)
				assert.Equal(t, tt.want, r.Triggers[50:])
			}
			assert.Equal(t, actor.TriggerDeath, r.Last())
		})
	}
}
