package actor

import (
	"log/slog"

	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
)

// DummyHit is the payload of Dummy.Hit.
type DummyHit struct {
	Damage           float64
	DurabilityDamage float64
}

// Dummy is an immortal training target. It records the last hit and comes
// back at full health and durability when killed.
type Dummy struct {
	*Core

	lastDamage           float64
	lastDurabilityDamage float64

	Hit component.Signal[DummyHit]
}

func NewDummy(e ecs.Entity, body Body, maxHealth float64, durability component.DurabilityConfig) *Dummy {
	d := &Dummy{
		Core: NewCore(Config{
			Entity:     e,
			Label:      "dummy",
			Body:       body,
			Animator:   LogAnimator{Label: "dummy"},
			Health:     component.NewHealth(maxHealth),
			Durability: component.NewDurability(durability),
		}),
	}
	d.health.Damaged.Add(func(amount float64) {
		d.lastDamage = amount
		slog.Debug("dummy hit", "damage", amount)
		d.Hit.Emit(DummyHit{Damage: amount})
	})
	d.durability.Damaged.Add(func(amount float64) {
		d.lastDurabilityDamage = amount
		slog.Debug("dummy durability hit", "damage", amount)
		d.Hit.Emit(DummyHit{DurabilityDamage: amount})
	})
	d.health.Died.Add(func(*component.Health) {
		d.health.Revive(1)
		d.durability.FullRestore()
	})
	return d
}

func (d *Dummy) Update(dt float64) {
	if d.frozen {
		return
	}
	d.UpdateComponents(dt)
}

func (d *Dummy) FixedUpdate(float64) {}

func (d *Dummy) LastDamage() float64 {
	return d.lastDamage
}

func (d *Dummy) LastDurabilityDamage() float64 {
	return d.lastDurabilityDamage
}

func (d *Dummy) ResetLastDamage() {
	d.lastDamage = 0
	d.lastDurabilityDamage = 0
}
