package enemy

import "github.com/milk9111/groggy/actor"

// idleState waits out its dwell, then chases a target that comes into view.
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
	if s.timer < c.cfg.IdleDwell {
		return
	}
	if c.InDetectionRange() {
		c.machine.ChangeState(&chaseState{})
	}
}

// chaseState holds the preferred attack distance and attacks when allowed.
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
}

// attackState swings once. The hit lands at HitTime if the target is still
// in range.
type attackState struct {
	timer float64
	dealt bool
}

func (s *attackState) Name() string { return "attack" }

func (s *attackState) Enter(c *Controller) {
	c.LockMovement()
	c.Trigger(actor.TriggerAttack)
}

func (s *attackState) Update(c *Controller, dt float64) {
	s.timer += dt
	if !s.dealt && s.timer >= c.cfg.HitTime {
		if c.InAttackRange() {
			c.PerformAttack()
		}
		s.dealt = true
	}
}

func (s *attackState) CheckTransitions(c *Controller) {
	if s.timer < c.cfg.AttackDuration {
		return
	}
	if !c.InAttackRange() && c.InDetectionRange() {
		c.machine.ChangeState(&chaseState{})
		return
	}
	c.machine.ChangeState(&idleState{})
}

func (s *attackState) Exit(c *Controller) {
	c.UnlockMovement()
}

// groggyState is inert until durability recovers or an execution lands.
type groggyState struct{}

func (s *groggyState) Name() string { return "groggy" }

func (s *groggyState) Enter(c *Controller) {
	c.LockMovement()
	c.SetFloat(actor.ParamSpeed, 0)
	c.Trigger(actor.TriggerGroggy)
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
