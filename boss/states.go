package boss

import (
	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/combat"
)

type idleState struct {
	timer float64
}

func (s *idleState) Name() string { return "idle" }

func (s *idleState) Enter(c *Controller) {
	c.Stop()
	c.SetFloat(actor.ParamSpeed, 0)
}

func (s *idleState) Update(c *Controller, dt float64) {
	s.timer += dt
}

func (s *idleState) CheckTransitions(c *Controller) {
	if s.timer < c.cfg.IdleDwell || !c.InDetectionRange() {
		return
	}
	if c.InAttackRange() && c.CanAttack() {
		c.machine.ChangeState(&attackState{})
		return
	}
	c.machine.ChangeState(&chaseState{})
}

type chaseState struct{}

func (s *chaseState) Name() string { return "chase" }

func (s *chaseState) Enter(c *Controller) {
	c.SetFloat(actor.ParamSpeed, 1)
}

func (s *chaseState) FixedUpdate(c *Controller, dt float64) {
	d := c.DistanceToTarget()
	switch {
	case d > c.cfg.PreferredDistance+c.cfg.DistanceTolerance:
		c.MoveTowardTarget()
	case d < c.cfg.PreferredDistance-c.cfg.DistanceTolerance:
		c.MoveAwayFromTarget()
	default:
		c.Stop()
	}
}

func (s *chaseState) CheckTransitions(c *Controller) {
	if !c.InDetectionRange() {
		c.machine.ChangeState(&idleState{})
		return
	}
	if c.InAttackRange() && c.CanAttack() {
		c.machine.ChangeState(&attackState{})
	}
}

func (s *chaseState) Exit(c *Controller) {
	c.Stop()
	c.SetFloat(actor.ParamSpeed, 0)
}

// attackState plays one selected attack. Hit windows are compared against
// the timer scaled by the active phase's attack speed, and the attack ends
// after Duration/AttackSpeed seconds.
type attackState struct {
	index int
	spec  AttackSpec
	timer float64
	// scaled is the speed-scaled timer as of the previous step.
	scaled float64
	fired  []bool
}

func (s *attackState) Name() string { return "attack" }

func (s *attackState) Enter(c *Controller) {
	s.index = c.SelectAttack()
	s.spec = c.cfg.attack(s.index)
	s.fired = make([]bool, len(s.spec.Hits))
	c.LockMovement()
	c.Trigger(s.spec.trigger(s.index))
}

func (s *attackState) Update(c *Controller, dt float64) {
	s.timer += dt
	prev := s.scaled
	s.scaled = s.timer * c.CurrentPhase().attackSpeed()
	for i, hit := range s.spec.Hits {
		if s.fired[i] || !combat.WindowCrossed(prev, s.scaled, hit.Start, hit.End) {
			continue
		}
		if c.InAttackRange() {
			c.PerformHit(s.spec, hit)
		}
		s.fired[i] = true
	}
}

func (s *attackState) CheckTransitions(c *Controller) {
	if s.timer < s.spec.Duration/c.CurrentPhase().attackSpeed() {
		return
	}
	switch {
	case c.InAttackRange() && c.CanAttack():
		c.machine.ChangeState(&idleState{})
	case c.InDetectionRange():
		c.machine.ChangeState(&chaseState{})
	default:
		c.machine.ChangeState(&idleState{})
	}
}

func (s *attackState) Exit(c *Controller) {
	c.UnlockMovement()
}

type groggyState struct{}

func (s *groggyState) Name() string { return "groggy" }

func (s *groggyState) Enter(c *Controller) {
	c.LockMovement()
	c.SetFloat(actor.ParamSpeed, 0)
	c.Trigger(actor.TriggerStagger)
}

func (s *groggyState) Exit(c *Controller) {
	c.UnlockMovement()
}

type deadState struct{}

func (s *deadState) Name() string { return "dead" }

func (s *deadState) Enter(c *Controller) {
	c.LockMovement()
	c.SetFloat(actor.ParamSpeed, 0)
	c.Trigger(actor.TriggerDeath)
}
