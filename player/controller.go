// Package player implements the input-driven player controller: movement,
// jumping, light and heavy attacks, guarding with perfect-guard parries,
// dodging with invincibility frames, the special attack and executions.
package player

import (
	"errors"
	"log/slog"

	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/combat"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/fsm"
	"github.com/milk9111/groggy/input"
	"github.com/milk9111/groggy/run"
	"github.com/milk9111/groggy/stats"
)

// Deps are the optional collaborators of a player.
type Deps struct {
	Clock  ecs.Clock
	Events *ecs.EventQueue
	// Finder answers melee hit and execution target queries.
	Finder   actor.Finder
	Recorder run.Recorder
	// Input is read every tick. A private state is created when nil.
	Input     *input.State
	Timing    *combat.Timing
	Execution combat.ExecutionConfig
}

type Controller struct {
	*actor.Core

	cfg      Config
	deps     Deps
	table    *stats.Table
	resource *stats.Resource
	timing   *combat.Timing
	exec     *combat.Execution
	input    *input.State
	machine  *fsm.Machine[*Controller]
	statSub  component.Subscription

	moveX float64
}

var _ actor.Target = (*Controller)(nil)

// New creates a player standing in its idle state. Its max health, defense
// and guard reduction come from table.
func New(e ecs.Entity, body actor.Body, anim actor.Animator, table *stats.Table, cfg Config, deps Deps) *Controller {
	if table == nil {
		table = stats.NewTable()
	}
	c := &Controller{
		Core: actor.NewCore(actor.Config{
			Entity:   e,
			Label:    "player",
			Body:     body,
			Animator: anim,
			Health:   component.NewStatHealth(table),
			Clock:    deps.Clock,
			Events:   deps.Events,
		}),
		cfg:      cfg,
		deps:     deps,
		table:    table,
		resource: stats.NewResource(table),
		timing:   deps.Timing,
		input:    deps.Input,
	}
	if c.timing == nil {
		c.timing = combat.NewTiming(table)
	}
	if c.input == nil {
		c.input = &input.State{}
	}
	execCfg := deps.Execution
	if execCfg == (combat.ExecutionConfig{}) {
		execCfg = combat.DefaultExecutionConfig()
	}
	c.exec = combat.NewExecution(execCfg, deps.Finder, table)
	c.exec.Completed.Add(func(target combat.Executable) {
		c.Publish(ecs.EventExecution, target.Entity())
	})

	c.machine = fsm.New(c, "player")
	c.machine.Changed.Add(func(t fsm.Transition) {
		c.Publish(ecs.EventStateChanged, t)
	})

	c.statSub = table.Recalculated.Add(func(*stats.Table) { c.Health().SyncMaxFromStats() })
	h := c.Health()
	h.Damaged.Add(func(amount float64) {
		c.Publish(ecs.EventDamage, amount)
		c.machine.OnHit(amount)
	})
	h.Died.Add(func(*component.Health) { c.onDeath() })

	c.machine.Initialize(&idleState{})
	return c
}

func (c *Controller) Config() Config               { return c.cfg }
func (c *Controller) Configure(cfg Config)         { c.cfg = cfg }
func (c *Controller) Stats() *stats.Table          { return c.table }
func (c *Controller) Resource() *stats.Resource    { return c.resource }
func (c *Controller) Timing() *combat.Timing       { return c.timing }
func (c *Controller) Execution() *combat.Execution { return c.exec }
func (c *Controller) Input() *input.State          { return c.input }

func (c *Controller) Machine() *fsm.Machine[*Controller] {
	return c.machine
}

// StateName names the current state.
func (c *Controller) StateName() string {
	return c.machine.CurrentName()
}

// SetRecorder swaps the run the player reports to.
func (c *Controller) SetRecorder(r run.Recorder) {
	c.deps.Recorder = r
}

// Release detaches the controller from its stat table so a table shared
// across runs stops driving a discarded player.
func (c *Controller) Release() {
	c.exec.CancelExecution()
	c.table.Recalculated.Remove(c.statSub)
}

// Update runs timers and the state machine, then drops unconsumed presses.
func (c *Controller) Update(dt float64) {
	c.UpdateComponents(dt)
	c.table.Update(dt)
	if !c.Frozen() {
		c.machine.Update(dt)
	}
	c.input.EndFrame()
}

// FixedUpdate runs state physics, then applies the requested horizontal
// movement unless a state has locked it.
func (c *Controller) FixedUpdate(dt float64) {
	if c.Frozen() {
		return
	}
	c.machine.FixedUpdate(dt)
	if !c.MovementLocked() && c.IsAlive() {
		c.MoveHorizontal(c.moveX * c.table.GetStat(stats.MoveSpeed))
	}
}

// ReceiveAttack routes an incoming hit through the current state: a dodge in
// its invincible frames and the special attack negate it, a guard blocks it.
func (c *Controller) ReceiveAttack(a actor.Attack) float64 {
	if c.IsDead() {
		return 0
	}
	switch s := c.machine.Current().(type) {
	case *dodgeState:
		if s.tryDodge(c) {
			return 0
		}
	case *specialState:
		slog.Debug("special attack absorbed hit", "damage", a.Damage)
		return 0
	case *guardState:
		return s.block(c, a)
	}
	dealt := c.Health().TakeDamage(a.Damage, a.CanBeGuarded, false, false)
	if dealt > 0 && c.IsAlive() {
		c.Trigger(actor.TriggerHit)
	}
	return dealt
}

// IsInvincible reports whether an attack landing now would be negated.
func (c *Controller) IsInvincible() bool {
	switch s := c.machine.Current().(type) {
	case *dodgeState:
		return s.invincible(c)
	case *specialState:
		return true
	}
	return false
}

// IsGuarding reports whether the player is in the guard state.
func (c *Controller) IsGuarding() bool {
	_, ok := c.machine.Current().(*guardState)
	return ok
}

// Respawn brings a dead player back at full health in the idle state.
func (c *Controller) Respawn() {
	if c.IsAlive() {
		return
	}
	c.Health().Revive(1)
	c.resource.Reset()
	c.UnlockMovement()
	c.machine.ChangeState(&idleState{})
}

func (c *Controller) stat(t stats.Type) float64 {
	return c.table.GetStat(t)
}

// moving reports whether the move input is past the dead zone.
func (c *Controller) moving() bool {
	return c.input.MoveMagnitude() > c.cfg.MoveThreshold
}

// settle leaves a finished action for move or idle.
func (c *Controller) settle() {
	if c.moving() {
		c.machine.ChangeState(&moveState{})
		return
	}
	c.machine.ChangeState(&idleState{})
}

// checkActions is the transition table shared by idle and move, in priority order.
func (c *Controller) checkActions() bool {
	in := c.input
	switch {
	case c.Grounded() && in.Consume(input.Jump):
		c.machine.ChangeState(&jumpState{})
	case in.Pressed(input.Interact) && c.tryExecute():
		in.Consume(input.Interact)
		c.machine.ChangeState(&executeState{})
	case in.Pressed(input.Special) && c.resource.CanAfford(c.cfg.SpecialCost):
		in.Consume(input.Special)
		c.machine.ChangeState(&specialState{})
	case in.Consume(input.Attack):
		c.machine.ChangeState(&attackState{heavy: false})
	case in.Consume(input.HeavyAttack):
		c.machine.ChangeState(&attackState{heavy: true})
	case in.Consume(input.Dodge):
		c.machine.ChangeState(&dodgeState{})
	case in.GuardHeld:
		c.machine.ChangeState(&guardState{})
	default:
		return false
	}
	return true
}

func (c *Controller) tryExecute() bool {
	pos := c.Position()
	return c.exec.HasExecutableInRange(pos) && c.exec.TryExecute(c, pos)
}

// strike hits every enemy in the melee circle once and returns how many
// were hit.
func (c *Controller) strike(reach, damage, durability float64) int {
	center, radius := actor.HitCircle(c.Position(), c.Facing(), reach)
	targets := actor.TargetsInCircle(c.deps.Finder, center, radius, ecs.CategoryEnemy, c.Entity())
	for _, t := range targets {
		dealt := t.ReceiveAttack(actor.Attack{
			Damage:           damage,
			DurabilityDamage: durability,
			CanBeGuarded:     true,
			Source:           c.Core,
		})
		slog.Debug("player hit", "target", t.Entity(), "damage", dealt, "durability", durability)
	}
	if len(targets) == 0 {
		slog.Debug("player attack missed")
	}
	return len(targets)
}

func (c *Controller) onPerfectGuard(a actor.Attack) {
	c.Trigger(actor.TriggerParry)
	if a.Source != nil {
		a.Source.Durability().TakePerfectGuardDamage(c.cfg.PerfectGuardDurability * c.stat(stats.DurabilityDamage))
		c.Publish(ecs.EventPerfectGuard, a.Source.Entity())
	} else {
		c.Publish(ecs.EventPerfectGuard, nil)
	}
	c.resource.Add(c.cfg.PerfectGuardResource)
	if c.deps.Recorder != nil {
		c.deps.Recorder.RecordPerfectGuard()
	}
	slog.Debug("perfect guard", "player", c.Entity())
}

func (c *Controller) onPerfectDodge() {
	c.resource.Add(c.cfg.PerfectDodgeResource)
	if c.deps.Recorder != nil {
		c.deps.Recorder.RecordPerfectDodge()
	}
	c.Publish(ecs.EventPerfectDodge, nil)
	slog.Debug("perfect dodge", "player", c.Entity())
}

func (c *Controller) onDeath() {
	slog.Info("player died", "player", c.Entity())
	c.Publish(ecs.EventDeath, nil)
	c.machine.ChangeState(&deadState{})
	if c.deps.Recorder != nil {
		if _, err := c.deps.Recorder.EndRun(false); err != nil && !errors.Is(err, run.ErrNoActiveRun) {
			slog.Warn("end run failed", "err", err)
		}
	}
	c.table.ClearTemporaryModifiers()
}
