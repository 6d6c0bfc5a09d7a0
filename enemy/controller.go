// Package enemy implements the regular melee enemy: idle, chase, attack and
// groggy behaviour driven by distance to its target and its durability.
package enemy

import (
	"log/slog"
	"math"

	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/fsm"
)

// Deps are the optional world services a controller reports to.
type Deps struct {
	Clock     ecs.Clock
	Events    *ecs.EventQueue
	Destroyer actor.Destroyer
	Recorder  actor.DefeatRecorder
}

type Controller struct {
	*actor.Core

	cfg        Config
	deps       Deps
	machine    *fsm.Machine[*Controller]
	lastAttack float64
	executed   bool
}

// New creates an enemy standing in its idle state.
func New(e ecs.Entity, body actor.Body, anim actor.Animator, cfg Config, deps Deps) *Controller {
	c := &Controller{
		Core: actor.NewCore(actor.Config{
			Entity:     e,
			Label:      "enemy",
			Body:       body,
			Animator:   anim,
			Health:     component.NewHealth(cfg.MaxHealth),
			Durability: component.NewDurability(cfg.Durability),
			Clock:      deps.Clock,
			Events:     deps.Events,
		}),
		cfg:        cfg,
		deps:       deps,
		lastAttack: math.Inf(-1),
	}
	c.machine = fsm.New(c, "enemy")
	c.machine.Changed.Add(func(t fsm.Transition) {
		c.Publish(ecs.EventStateChanged, t)
	})

	h, d := c.Health(), c.Durability()
	h.Damaged.Add(c.onDamaged)
	h.Died.Add(func(*component.Health) { c.onDeath() })
	d.GroggyStart.Add(func(*component.Durability) { c.onGroggyStart() })
	d.GroggyEnd.Add(func(*component.Durability) { c.onGroggyEnd() })
	d.Executed.Add(func(*component.Durability) { c.executed = true })

	c.machine.Initialize(&idleState{})
	return c
}

func (c *Controller) Config() Config {
	return c.cfg
}

// Configure swaps tuning; durability keeps its current fraction.
func (c *Controller) Configure(cfg Config) {
	c.cfg = cfg
	c.Durability().Configure(cfg.Durability)
}

func (c *Controller) Machine() *fsm.Machine[*Controller] {
	return c.machine
}

// StateName names the current state.
func (c *Controller) StateName() string {
	return c.machine.CurrentName()
}

func (c *Controller) Update(dt float64) {
	c.UpdateComponents(dt)
	if c.Frozen() {
		return
	}
	c.machine.Update(dt)
	c.FaceTarget()
}

func (c *Controller) FixedUpdate(dt float64) {
	if c.Frozen() {
		return
	}
	c.machine.FixedUpdate(dt)
}

func (c *Controller) InDetectionRange() bool {
	return c.DistanceToTarget() <= c.cfg.DetectionRange
}

func (c *Controller) InAttackRange() bool {
	return c.DistanceToTarget() <= c.cfg.AttackRange
}

// CanAttack reports whether the cooldown since the last landed swing elapsed.
func (c *Controller) CanAttack() bool {
	return c.Now()-c.lastAttack >= c.cfg.AttackCooldown
}

// PerformAttack hits the current target and restarts the cooldown.
func (c *Controller) PerformAttack() {
	c.lastAttack = c.Now()
	if !c.HasTarget() {
		return
	}
	dealt := c.Target().ReceiveAttack(actor.Attack{
		Damage:           c.cfg.AttackDamage,
		DurabilityDamage: c.cfg.AttackDurabilityDamage,
		CanBeGuarded:     true,
		Source:           c.Core,
	})
	slog.Debug("enemy attack", "enemy", c.Entity(), "damage", dealt)
}

// MoveTowardTarget walks toward the target at full speed.
func (c *Controller) MoveTowardTarget() {
	if dir := c.DirectionToTarget(); dir != 0 {
		c.MoveHorizontal(dir * c.cfg.MoveSpeed)
	}
}

// MoveAwayFromTarget backs off from the target at full speed.
func (c *Controller) MoveAwayFromTarget() {
	if dir := c.DirectionToTarget(); dir != 0 {
		c.MoveHorizontal(-dir * c.cfg.MoveSpeed)
	}
}

// Executed reports whether an execution consumed this enemy's groggy window.
func (c *Controller) Executed() bool {
	return c.executed
}

// ReceiveAttack applies a hit and lets the current state react to it.
func (c *Controller) ReceiveAttack(a actor.Attack) float64 {
	dealt := c.Core.ReceiveAttack(a)
	if dealt > 0 && c.IsAlive() && !c.Durability().IsGroggy() {
		c.Trigger(actor.TriggerHit)
	}
	return dealt
}

func (c *Controller) onDamaged(amount float64) {
	c.Publish(ecs.EventDamage, amount)
	c.machine.OnHit(amount)
}

func (c *Controller) onGroggyStart() {
	if c.IsDead() {
		return
	}
	c.Publish(ecs.EventGroggyStart, nil)
	c.machine.ChangeState(&groggyState{})
}

func (c *Controller) onGroggyEnd() {
	if c.IsDead() || c.executed {
		return
	}
	c.Publish(ecs.EventGroggyEnd, nil)
	c.machine.ChangeState(&idleState{})
}

func (c *Controller) onDeath() {
	slog.Info("enemy defeated", "enemy", c.Entity())
	c.Publish(ecs.EventDeath, nil)
	c.machine.ChangeState(&deadState{})
	if c.deps.Recorder != nil {
		c.deps.Recorder.RecordEnemyDefeated()
	}
	if c.deps.Destroyer != nil {
		c.deps.Destroyer.DestroyAfter(c.Entity(), c.cfg.DestroyDelay)
	}
}
