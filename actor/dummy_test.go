package actor_test

import (
	"testing"

	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/actor/actortest"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
	"github.com/stretchr/testify/assert"
)

func TestDummyRecordsHitsAndRevives(t *testing.T) {
	d := actor.NewDummy(ecs.Entity(5), actortest.NewBody(0, 1), 50, component.DefaultDurabilityConfig())

	var hits []actor.DummyHit
	d.Hit.Add(func(h actor.DummyHit) { hits = append(hits, h) })

	d.ReceiveAttack(actor.Attack{Damage: 20, DurabilityDamage: 30})
	assert.Equal(t, 20.0, d.LastDamage())
	assert.Equal(t, 30.0, d.LastDurabilityDamage())
	assert.Len(t, hits, 2)

	d.ReceiveAttack(actor.Attack{Damage: 500})
	assert.True(t, d.IsAlive())
	assert.Equal(t, 50.0, d.Health().Current())
	assert.Equal(t, 100.0, d.Durability().Current())

	d.ResetLastDamage()
	assert.Zero(t, d.LastDamage())
	assert.Zero(t, d.LastDurabilityDamage())
}

func TestDummyRecoversFromGroggy(t *testing.T) {
	cfg := component.DefaultDurabilityConfig()
	d := actor.NewDummy(ecs.Entity(5), actortest.NewBody(0, 1), 50, cfg)

	d.ReceiveAttack(actor.Attack{Damage: 1, DurabilityDamage: cfg.Max})
	assert.True(t, d.Durability().IsGroggy())

	for i := 0; i < 60; i++ {
		d.Update(0.1)
	}
	assert.False(t, d.Durability().IsGroggy())
	assert.Equal(t, cfg.Max, d.Durability().Current())
}
