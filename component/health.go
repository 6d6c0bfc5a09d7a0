package component

// DefaultGuardReduction is the guard damage reduction used when no stat
// source supplies one.
const DefaultGuardReduction = 0.5

// HealthStats supplies stat-driven values to a Health. Enemies run without one.
type HealthStats interface {
	MaxHealth() float64
	Defense() float64
	GuardDamageReduction() float64
	HealEfficiency() float64
}

// HealthChange is the payload of Health.Changed.
type HealthChange struct {
	Current float64
	Max     float64
}

// Health tracks hit points for any actor that can take damage. Current stays
// in [0, Max] and reaches 0 exactly when the actor dies. Death is one-way
// until Revive.
type Health struct {
	max     float64
	current float64
	dead    bool
	stats   HealthStats

	Changed Signal[HealthChange]
	Damaged Signal[float64]
	Healed  Signal[float64]
	Died    Signal[*Health]
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{max: max, current: max}
}

// NewStatHealth creates a Health whose max, defense, guard reduction and heal
// efficiency come from stats.
func NewStatHealth(stats HealthStats) *Health {
	h := NewHealth(1)
	h.stats = stats
	if stats != nil {
		h.max = positiveOr(stats.MaxHealth(), 1)
		h.current = h.max
	}
	return h
}

// TakeDamage applies defense, then guard reduction, and returns the damage
// actually removed from current.
func (h *Health) TakeDamage(damage float64, canBeGuarded, isGuarding, isPerfectGuard bool) float64 {
	if h == nil || h.dead || damage <= 0 {
		return 0
	}

	actual := damage
	if h.stats != nil {
		if def := h.stats.Defense(); def > 0 {
			actual *= 1 - clamp01(def)
		}
	}
	if isGuarding && canBeGuarded {
		if isPerfectGuard {
			actual = 0
		} else {
			actual *= 1 - clamp01(h.guardReduction())
		}
	}

	h.current -= actual
	if h.current < 0 {
		h.current = 0
	}
	if actual > 0 {
		h.Damaged.Emit(actual)
		h.emitChanged()
	}
	if h.current <= 0 {
		h.die()
	}
	return actual
}

// Heal restores health, scaled by heal efficiency, up to Max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.dead || amount <= 0 {
		return
	}
	if h.stats != nil {
		amount *= h.stats.HealEfficiency()
	}
	prev := h.current
	h.current += amount
	if h.current > h.max {
		h.current = h.max
	}
	if healed := h.current - prev; healed > 0 {
		h.Healed.Emit(healed)
		h.emitChanged()
	}
}

func (h *Health) FullHeal() {
	if h == nil || h.dead {
		return
	}
	h.current = h.max
	h.emitChanged()
}

// SetHealth sets current, clamped to [0, Max]. Setting 0 kills.
func (h *Health) SetHealth(v float64) {
	if h == nil || h.dead {
		return
	}
	h.current = min(max(v, 0), h.max)
	h.emitChanged()
	if h.current <= 0 {
		h.die()
	}
}

// SetBaseMaxHealth replaces max for stat-less actors. With a stat source, max
// keeps following the stats and only the heal/clamp part applies.
func (h *Health) SetBaseMaxHealth(v float64, healToFull bool) {
	if h == nil {
		return
	}
	if h.stats == nil {
		h.max = positiveOr(v, 1)
	}
	if healToFull && !h.dead {
		h.current = h.max
	} else if h.current > h.max {
		h.current = h.max
	}
	h.emitChanged()
}

// SyncMaxFromStats re-reads MaxHealth after a stat recalculation and clamps
// current to the new max.
func (h *Health) SyncMaxFromStats() {
	if h == nil || h.stats == nil {
		return
	}
	next := positiveOr(h.stats.MaxHealth(), 1)
	if next == h.max && h.current <= next {
		return
	}
	h.max = next
	if h.current > h.max {
		h.current = h.max
	}
	h.emitChanged()
}

// Revive brings the actor back with percent of max health. A non-positive
// percent revives at full health.
func (h *Health) Revive(percent float64) {
	if h == nil {
		return
	}
	p := clamp01(percent)
	if p <= 0 {
		p = 1
	}
	h.dead = false
	h.current = h.max * p
	h.emitChanged()
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.dead && h.current > 0
}

func (h *Health) IsDead() bool {
	return h != nil && h.dead
}

// Current returns the current health value.
func (h *Health) Current() float64 {
	if h == nil {
		return 0
	}
	return h.current
}

// Max returns the maximum health value.
func (h *Health) Max() float64 {
	if h == nil {
		return 0
	}
	return h.max
}

func (h *Health) Percent() float64 {
	if h == nil || h.max <= 0 {
		return 0
	}
	return h.current / h.max
}

func (h *Health) guardReduction() float64 {
	if h.stats == nil {
		return DefaultGuardReduction
	}
	return h.stats.GuardDamageReduction()
}

func (h *Health) die() {
	if h.dead {
		return
	}
	h.dead = true
	h.current = 0
	h.Died.Emit(h)
}

func (h *Health) emitChanged() {
	h.Changed.Emit(HealthChange{Current: h.current, Max: h.max})
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
