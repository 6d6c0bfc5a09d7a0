package player

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/combat"
	"github.com/milk9111/groggy/input"
	"github.com/milk9111/groggy/stats"
)

type idleState struct{}

func (s *idleState) Name() string { return "idle" }

func (s *idleState) Enter(c *Controller) {
	c.moveX = 0
	c.SetFloat(actor.ParamSpeed, 0)
}

func (s *idleState) CheckTransitions(c *Controller) {
	if c.checkActions() {
		return
	}
	if c.moving() {
		c.machine.ChangeState(&moveState{})
	}
}

type moveState struct{}

func (s *moveState) Name() string { return "move" }

func (s *moveState) Update(c *Controller, dt float64) {
	c.moveX = c.input.MoveX()
	c.SetFacing(c.moveX)
	c.SetFloat(actor.ParamSpeed, math.Abs(c.moveX))
}

func (s *moveState) CheckTransitions(c *Controller) {
	if c.checkActions() {
		return
	}
	if !c.moving() {
		c.machine.ChangeState(&idleState{})
	}
}

// jumpState applies one upward impulse and keeps air control until landing.
type jumpState struct {
	launched bool
}

func (s *jumpState) Name() string { return "jump" }

func (s *jumpState) Enter(c *Controller) {
	c.Trigger(actor.TriggerJump)
}

func (s *jumpState) Update(c *Controller, dt float64) {
	c.moveX = c.input.MoveX()
	c.SetFacing(c.moveX)
}

func (s *jumpState) FixedUpdate(c *Controller, dt float64) {
	if s.launched {
		return
	}
	v := c.Velocity()
	c.SetVelocity(cp.Vector{X: v.X, Y: c.cfg.JumpForce})
	s.launched = true
}

func (s *jumpState) CheckTransitions(c *Controller) {
	if s.launched && c.Grounded() && c.Velocity().Y <= 0 {
		c.settle()
	}
}

// attackState is a light or heavy swing. The hit lands once, on the first
// step that reaches its window; the state ends once the window has passed and the animation is
// nearly done.
type attackState struct {
	heavy bool
	timer float64
	hit   bool
}

func (s *attackState) Name() string {
	if s.heavy {
		return "heavy_attack"
	}
	return "light_attack"
}

func (s *attackState) spec(c *Controller) AttackSpec {
	if s.heavy {
		return c.cfg.Heavy
	}
	return c.cfg.Light
}

// speed is the live AttackSpeed stat; timings are divided by it.
func (s *attackState) speed(c *Controller) float64 {
	if v := c.stat(stats.AttackSpeed); v > 0 {
		return v
	}
	return 1
}

func (s *attackState) Enter(c *Controller) {
	c.moveX = 0
	c.LockMovement()
	if s.heavy {
		c.Trigger(actor.TriggerHeavyAttack)
	} else {
		c.Trigger(actor.TriggerAttack)
	}
}

func (s *attackState) Update(c *Controller, dt float64) {
	prev := s.timer
	s.timer += dt
	spec, speed := s.spec(c), s.speed(c)
	if s.hit || !combat.WindowCrossed(prev, s.timer, spec.HitStart/speed, spec.HitEnd/speed) {
		return
	}
	s.hit = true
	damage := c.stat(stats.AttackPower) * spec.DamageScale
	durability := c.cfg.AttackDurabilityDamage * spec.DurabilityScale * c.stat(stats.DurabilityDamage)
	if c.strike(spec.Range, damage, durability) > 0 {
		c.resource.Add(spec.ResourceOnHit)
	}
}

func (s *attackState) CheckTransitions(c *Controller) {
	spec, speed := s.spec(c), s.speed(c)
	if s.timer < spec.HitEnd/speed {
		return
	}
	if s.timer >= spec.Duration/speed*c.cfg.AnimationComplete {
		c.settle()
	}
}

func (s *attackState) Exit(c *Controller) {
	c.UnlockMovement()
}

// guardState blocks while the guard input is held. Movement continues at
// reduced speed.
type guardState struct {
	start float64
}

func (s *guardState) Name() string { return "guard" }

func (s *guardState) Enter(c *Controller) {
	s.start = c.Now()
	c.SetFloat(actor.ParamGuarding, 1)
}

func (s *guardState) Update(c *Controller, dt float64) {
	c.moveX = c.input.MoveX() * c.cfg.GuardMoveScale
}

func (s *guardState) CheckTransitions(c *Controller) {
	if c.input.Consume(input.Dodge) {
		c.machine.ChangeState(&dodgeState{})
		return
	}
	if !c.input.GuardHeld {
		c.settle()
	}
}

func (s *guardState) Exit(c *Controller) {
	c.SetFloat(actor.ParamGuarding, 0)
}

// block resolves a hit taken while guarding. Unguardable attacks land in
// full, a hit inside the perfect window is parried, anything else is reduced.
func (s *guardState) block(c *Controller, a actor.Attack) float64 {
	if !a.CanBeGuarded {
		slog.Debug("unblockable attack", "damage", a.Damage)
		dealt := c.Health().TakeDamage(a.Damage, false, false, false)
		if dealt > 0 && c.IsAlive() {
			c.Trigger(actor.TriggerHit)
		}
		return dealt
	}
	if c.timing.JudgeGuard(s.start, c.Now()) == combat.Perfect {
		c.onPerfectGuard(a)
		return 0
	}
	return c.Health().TakeDamage(a.Damage, true, true, false)
}

// dodgeState dashes DodgeDistance over a fixed duration. Hits are negated
// during the invincible frames; the first one inside the perfect window also
// fires the perfect dodge bonus.
type dodgeState struct {
	timer     float64
	start     float64
	direction float64
	perfect   bool
}

func (s *dodgeState) Name() string { return "dodge" }

func (s *dodgeState) Enter(c *Controller) {
	s.start = c.Now()
	s.direction = c.Facing()
	if c.moving() {
		s.direction = math.Copysign(1, c.input.MoveX())
	}
	c.moveX = 0
	c.LockMovement()
	c.Trigger(actor.TriggerDodge)
}

func (s *dodgeState) Update(c *Controller, dt float64) {
	s.timer += dt
}

func (s *dodgeState) FixedUpdate(c *Controller, dt float64) {
	if s.timer >= c.cfg.DodgeDuration || c.cfg.DodgeDuration <= 0 {
		return
	}
	speed := c.stat(stats.DodgeDistance) / c.cfg.DodgeDuration
	c.SetVelocity(cp.Vector{X: s.direction * speed, Y: c.Velocity().Y})
}

func (s *dodgeState) CheckTransitions(c *Controller) {
	if s.timer >= c.cfg.DodgeDuration {
		c.Stop()
		c.settle()
	}
}

func (s *dodgeState) Exit(c *Controller) {
	c.UnlockMovement()
}

func (s *dodgeState) invincible(c *Controller) bool {
	end := c.cfg.InvincibilityStart + c.stat(stats.InvincibilityDuration)
	return s.timer >= c.cfg.InvincibilityStart && s.timer <= end
}

func (s *dodgeState) tryDodge(c *Controller) bool {
	if !s.invincible(c) {
		return false
	}
	if !s.perfect && c.timing.JudgeDodge(s.start, c.Now()) == combat.Perfect {
		s.perfect = true
		c.onPerfectDodge()
	}
	slog.Debug("attack dodged", "player", c.Entity())
	return true
}

// specialState spends the gauge on entry and is invincible throughout.
type specialState struct {
	timer float64
	hit   bool
}

func (s *specialState) Name() string { return "special_attack" }

func (s *specialState) Enter(c *Controller) {
	c.resource.TryConsume(c.cfg.SpecialCost)
	c.moveX = 0
	c.LockMovement()
	c.Trigger(actor.TriggerSpecialAttack)
}

func (s *specialState) Update(c *Controller, dt float64) {
	prev := s.timer
	s.timer += dt
	spec := c.cfg.Special
	if s.hit || !combat.WindowCrossed(prev, s.timer, spec.HitStart, spec.HitEnd) {
		return
	}
	s.hit = true
	damage := c.stat(stats.AttackPower) * c.stat(stats.SpecialAttackPower) * spec.DamageScale
	durability := damage * 0.5 * c.stat(stats.DurabilityDamage) * 2 * spec.DurabilityScale
	c.strike(spec.Range, damage, durability)
}

func (s *specialState) CheckTransitions(c *Controller) {
	spec := c.cfg.Special
	if s.timer >= spec.HitEnd && s.timer >= spec.Duration*c.cfg.AnimationComplete {
		c.settle()
	}
}

func (s *specialState) Exit(c *Controller) {
	c.UnlockMovement()
}

// executeState waits for the execution sequence to finish.
type executeState struct{}

func (s *executeState) Name() string { return "execute" }

func (s *executeState) Update(c *Controller, dt float64) {
	c.exec.Update(dt)
}

func (s *executeState) CheckTransitions(c *Controller) {
	if !c.exec.IsExecuting() {
		c.settle()
	}
}

func (s *executeState) Exit(c *Controller) {
	c.exec.CancelExecution()
}

type deadState struct{}

func (s *deadState) Name() string { return "dead" }

func (s *deadState) Enter(c *Controller) {
	c.moveX = 0
	c.LockMovement()
	c.Trigger(actor.TriggerDeath)
}
