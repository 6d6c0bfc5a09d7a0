// Package boss implements the phased boss: the enemy behaviour loop extended
// with a health-driven phase table, per-phase speed multipliers and a table of
// multi-hit attacks chosen randomly or by script.
package boss

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/fsm"
)

// Deps are the optional services a boss reports to.
type Deps struct {
	Clock     ecs.Clock
	Events    *ecs.EventQueue
	Destroyer actor.Destroyer
	Recorder  actor.DefeatRecorder
	Selector  Selector
	Rand      *rand.Rand
}

type Controller struct {
	*actor.Core

	cfg        Config
	deps       Deps
	machine    *fsm.Machine[*Controller]
	rng        *rand.Rand
	phase      int
	lastAttack float64
	lastPick   int
	executed   bool

	PhaseChanged   component.Signal[int]
	AttackSelected component.Signal[int]
}

func New(e ecs.Entity, body actor.Body, anim actor.Animator, cfg Config, deps Deps) *Controller {
	name := cfg.Name
	if name == "" {
		name = "boss"
	}
	c := &Controller{
		Core: actor.NewCore(actor.Config{
			Entity:     e,
			Label:      name,
			Body:       body,
			Animator:   anim,
			Health:     component.NewHealth(cfg.MaxHealth),
			Durability: component.NewDurability(cfg.Durability),
			Clock:      deps.Clock,
			Events:     deps.Events,
		}),
		cfg:        cfg,
		deps:       deps,
		rng:        deps.Rand,
		lastAttack: math.Inf(-1),
		lastPick:   -1,
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(e), 0x9e3779b97f4a7c15))
	}
	c.machine = fsm.New(c, name)
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

// Configure swaps tuning. The current phase is clamped to the new table.
func (c *Controller) Configure(cfg Config) {
	c.cfg = cfg
	if c.phase >= len(cfg.Phases) {
		c.phase = max(0, len(cfg.Phases)-1)
	}
	c.Durability().Configure(cfg.Durability)
}

// SetSelector replaces the attack selector; nil means uniform random.
func (c *Controller) SetSelector(s Selector) {
	c.deps.Selector = s
}

func (c *Controller) Machine() *fsm.Machine[*Controller] {
	return c.machine
}

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

// PhaseIndex is the index of the active phase.
func (c *Controller) PhaseIndex() int {
	return c.phase
}

// CurrentPhase returns the active phase row, or a neutral phase when the
// table is empty.
func (c *Controller) CurrentPhase() Phase {
	if c.phase < len(c.cfg.Phases) {
		return c.cfg.Phases[c.phase]
	}
	return Phase{AttackSpeed: 1, MoveSpeed: 1}
}

func (c *Controller) InDetectionRange() bool {
	return c.DistanceToTarget() <= c.cfg.DetectionRange
}

func (c *Controller) InAttackRange() bool {
	return c.DistanceToTarget() <= c.cfg.AttackRange
}

func (c *Controller) CanAttack() bool {
	return c.Now()-c.lastAttack >= c.cfg.AttackCooldown
}

// SelectAttack picks the next attack among those the active phase allows.
func (c *Controller) SelectAttack() int {
	available := c.availableAttacks()
	pick := -1
	if c.deps.Selector != nil {
		pick = c.deps.Selector.Select(SelectContext{
			Phase:         c.phase,
			Available:     slices.Clone(available),
			Distance:      c.DistanceToTarget(),
			HealthPercent: c.Health().Percent(),
			LastAttack:    c.lastPick,
		})
	}
	if !slices.Contains(available, pick) {
		if c.deps.Selector != nil {
			slog.Debug("boss selector result rejected", "boss", c.Label(), "pick", pick)
		}
		pick = available[c.rng.IntN(len(available))]
	}
	c.lastPick = pick
	c.Publish(ecs.EventAttackSelect, pick)
	c.AttackSelected.Emit(pick)
	return pick
}

// LastAttack is the most recently selected attack index, or -1.
func (c *Controller) LastAttack() int {
	return c.lastPick
}

// PerformHit lands one checkpoint of attack spec on the target.
func (c *Controller) PerformHit(spec AttackSpec, hit HitWindow) {
	c.lastAttack = c.Now()
	if !c.HasTarget() {
		return
	}
	dealt := c.Target().ReceiveAttack(actor.Attack{
		Damage:           c.cfg.AttackDamage * hit.scale(),
		DurabilityDamage: spec.DurabilityDamage,
		CanBeGuarded:     !spec.Unblockable,
		Source:           c.Core,
	})
	slog.Debug("boss hit", "boss", c.Label(), "attack", spec.Name, "damage", dealt)
}

func (c *Controller) MoveTowardTarget() {
	if dir := c.DirectionToTarget(); dir != 0 {
		c.MoveHorizontal(dir * c.moveSpeed())
	}
}

func (c *Controller) MoveAwayFromTarget() {
	if dir := c.DirectionToTarget(); dir != 0 {
		c.MoveHorizontal(-dir * c.moveSpeed())
	}
}

func (c *Controller) Executed() bool {
	return c.executed
}

// ReceiveAttack applies a hit; the boss flinches only outside its attacks.
func (c *Controller) ReceiveAttack(a actor.Attack) float64 {
	dealt := c.Core.ReceiveAttack(a)
	if dealt > 0 && c.IsAlive() && !c.Durability().IsGroggy() {
		if _, attacking := c.machine.Current().(*attackState); !attacking {
			c.Trigger(actor.TriggerHit)
		}
	}
	return dealt
}

func (c *Controller) moveSpeed() float64 {
	return c.cfg.MoveSpeed * c.CurrentPhase().moveSpeed()
}

func (c *Controller) availableAttacks() []int {
	var out []int
	for _, idx := range c.CurrentPhase().Attacks {
		if idx >= 0 && idx < len(c.cfg.Attacks) && !slices.Contains(out, idx) {
			out = append(out, idx)
		}
	}
	if len(out) == 0 {
		n := max(1, len(c.cfg.Attacks))
		for i := 0; i < n; i++ {
			out = append(out, i)
		}
	}
	return out
}

func (c *Controller) onDamaged(amount float64) {
	c.Publish(ecs.EventDamage, amount)
	c.checkPhase()
	c.machine.OnHit(amount)
}

func (c *Controller) checkPhase() {
	next := nextPhase(c.cfg.Phases, c.phase, c.Health().Percent())
	if next == c.phase {
		return
	}
	prev := c.phase
	c.phase = next
	slog.Info("boss phase changed", "boss", c.Label(), "from", prev+1, "to", next+1)
	c.Publish(ecs.EventPhaseChanged, next)
	c.PhaseChanged.Emit(next)
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
	slog.Info("boss defeated", "boss", c.Label())
	c.Publish(ecs.EventDeath, nil)
	c.machine.ChangeState(&deadState{})
	if c.deps.Recorder != nil {
		c.deps.Recorder.RecordEnemyDefeated()
	}
	if c.deps.Destroyer != nil {
		c.deps.Destroyer.DestroyAfter(c.Entity(), c.cfg.DestroyDelay)
	}
}
