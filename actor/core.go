// Package actor holds the combat core shared by the player, enemies and
// bosses: health, durability, targeting, facing and the movement and freeze
// locks the states and the execution sequence toggle.
package actor

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
)

// facingThreshold is the horizontal offset below which facing is kept.
const facingThreshold = 0.1

// Body is an actor's physical presence. *ecs.Body satisfies it.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	Grounded() bool
	SetFrozen(frozen bool)
}

// Attack is one damage instance delivered to a Target.
type Attack struct {
	Damage           float64
	DurabilityDamage float64
	CanBeGuarded     bool
	Source           *Core
}

// Target is anything an attack can land on.
type Target interface {
	Entity() ecs.Entity
	Position() cp.Vector
	IsAlive() bool
	ReceiveAttack(a Attack) float64
}

// Config wires a Core. Only Entity is required; missing collaborators degrade
// to no-ops and are reported once.
type Config struct {
	Entity     ecs.Entity
	Label      string
	Body       Body
	Animator   Animator
	Health     *component.Health
	Durability *component.Durability
	// Clock is the world clock. Without one the core counts its own updates.
	Clock  ecs.Clock
	Events *ecs.EventQueue
}

// Core is the combat state every controller composes.
type Core struct {
	entity     ecs.Entity
	label      string
	body       Body
	animator   Animator
	health     *component.Health
	durability *component.Durability
	clock      ecs.Clock
	events     *ecs.EventQueue
	elapsed    float64

	target         Target
	facing         float64
	movementLocked bool
	frozen         bool
	warned         map[string]struct{}
}

func NewCore(cfg Config) *Core {
	c := &Core{
		entity:     cfg.Entity,
		label:      cfg.Label,
		body:       cfg.Body,
		animator:   cfg.Animator,
		health:     cfg.Health,
		durability: cfg.Durability,
		clock:      cfg.Clock,
		events:     cfg.Events,
		facing:     1,
	}
	if c.label == "" {
		c.label = cfg.Entity.String()
	}
	return c
}

func (c *Core) Entity() ecs.Entity {
	return c.entity
}

func (c *Core) Label() string {
	return c.label
}

func (c *Core) Health() *component.Health {
	return c.health
}

func (c *Core) Durability() *component.Durability {
	return c.durability
}

func (c *Core) Body() Body {
	return c.body
}

func (c *Core) SetBody(b Body) {
	c.body = b
}

func (c *Core) Animator() Animator {
	return c.animator
}

func (c *Core) SetAnimator(a Animator) {
	c.animator = a
}

func (c *Core) IsAlive() bool {
	return c.health.IsAlive()
}

func (c *Core) IsDead() bool {
	return c.health.IsDead()
}

func (c *Core) Position() cp.Vector {
	if c.body == nil {
		c.warnOnce("body")
		return cp.Vector{}
	}
	return c.body.Position()
}

func (c *Core) Velocity() cp.Vector {
	if c.body == nil {
		return cp.Vector{}
	}
	return c.body.Velocity()
}

func (c *Core) Grounded() bool {
	return c.body != nil && c.body.Grounded()
}

// SetVelocity is ignored while frozen.
func (c *Core) SetVelocity(v cp.Vector) {
	if c.frozen {
		return
	}
	if c.body == nil {
		c.warnOnce("body")
		return
	}
	c.body.SetVelocity(v)
}

// MoveHorizontal sets horizontal speed and keeps vertical speed. A locked
// actor stops instead.
func (c *Core) MoveHorizontal(vx float64) {
	if c.movementLocked {
		vx = 0
	}
	v := c.Velocity()
	c.SetVelocity(cp.Vector{X: vx, Y: v.Y})
}

// Stop zeroes horizontal speed.
func (c *Core) Stop() {
	v := c.Velocity()
	c.SetVelocity(cp.Vector{X: 0, Y: v.Y})
}

// Target returns the current target, or nil.
func (c *Core) Target() Target {
	return c.target
}

func (c *Core) SetTarget(t Target) {
	c.target = t
}

// HasTarget reports whether a live target is set.
func (c *Core) HasTarget() bool {
	return c.target != nil && c.target.IsAlive()
}

// DistanceToTarget is +Inf without a live target.
func (c *Core) DistanceToTarget() float64 {
	if !c.HasTarget() {
		return math.Inf(1)
	}
	return c.Position().Distance(c.target.Position())
}

// DirectionToTarget is the sign of the horizontal offset, or 0 without a target.
func (c *Core) DirectionToTarget() float64 {
	if !c.HasTarget() {
		return 0
	}
	dx := c.target.Position().X - c.Position().X
	switch {
	case dx > 0:
		return 1
	case dx < 0:
		return -1
	}
	return 0
}

// FaceTarget turns toward the target unless it is nearly straight above or below.
func (c *Core) FaceTarget() {
	if !c.HasTarget() {
		return
	}
	dx := c.target.Position().X - c.Position().X
	if math.Abs(dx) > facingThreshold {
		c.facing = math.Copysign(1, dx)
	}
}

// Facing is +1 (right) or -1 (left).
func (c *Core) Facing() float64 {
	return c.facing
}

func (c *Core) SetFacing(dir float64) {
	if dir > 0 {
		c.facing = 1
	} else if dir < 0 {
		c.facing = -1
	}
}

func (c *Core) LockMovement() {
	c.movementLocked = true
	c.Stop()
}

func (c *Core) UnlockMovement() {
	c.movementLocked = false
}

func (c *Core) MovementLocked() bool {
	return c.movementLocked
}

// Freeze suspends the actor's state machine and physics.
func (c *Core) Freeze() {
	if c.body != nil {
		c.body.SetVelocity(cp.Vector{})
		c.body.SetFrozen(true)
	}
	c.frozen = true
}

func (c *Core) Unfreeze() {
	c.frozen = false
	if c.body != nil {
		c.body.SetFrozen(false)
	}
}

func (c *Core) Frozen() bool {
	return c.frozen
}

// Trigger fires an animation trigger.
func (c *Core) Trigger(name string) {
	if c.animator == nil {
		c.warnOnce("animator")
		return
	}
	c.animator.SetTrigger(name)
}

func (c *Core) SetFloat(name string, v float64) {
	if c.animator == nil {
		c.warnOnce("animator")
		return
	}
	c.animator.SetFloat(name, v)
}

// ReceiveAttack applies an unguarded hit to health and durability and returns
// the health damage dealt. Controllers wrap it with their own reactions.
func (c *Core) ReceiveAttack(a Attack) float64 {
	if c.health == nil || c.health.IsDead() {
		return 0
	}
	dealt := c.health.TakeDamage(a.Damage, a.CanBeGuarded, false, false)
	if a.DurabilityDamage > 0 && c.health.IsAlive() {
		c.durability.TakeDurabilityDamage(a.DurabilityDamage)
	}
	return dealt
}

// UpdateComponents advances the local clock and durability timers.
func (c *Core) UpdateComponents(dt float64) {
	c.elapsed += dt
	c.durability.Update(dt)
}

// Now returns the world time, or the time this core has been updated for.
func (c *Core) Now() float64 {
	if c.clock != nil {
		return c.clock.Now()
	}
	return c.elapsed
}

// Publish appends a combat log entry when an event queue is attached.
func (c *Core) Publish(kind ecs.EventKind, data any) {
	if c.events == nil {
		return
	}
	c.events.Push(ecs.Event{Kind: kind, Entity: c.entity, Time: c.Now(), Data: data})
}

func (c *Core) warnOnce(cause string) {
	if _, ok := c.warned[cause]; ok {
		return
	}
	if c.warned == nil {
		c.warned = make(map[string]struct{})
	}
	c.warned[cause] = struct{}{}
	slog.Warn("actor missing collaborator", "actor", c.label, "missing", cause)
}
