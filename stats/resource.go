package stats

import "github.com/milk9111/groggy/component"

// SpecialAttackCost is the gauge cost of the player's special attack.
const SpecialAttackCost = 50

// ResourceChange is the payload of Resource.Changed.
type ResourceChange struct {
	Current float64
	Max     float64
}

// Resource is the special-attack gauge. Its cap and gain rate are stats.
type Resource struct {
	table   *Table
	current float64

	Changed component.Signal[ResourceChange]
}

func NewResource(table *Table) *Resource {
	return &Resource{table: table}
}

// Add scales amount by SpecialResourceGain and clamps to [0, SpecialResourceMax].
func (r *Resource) Add(amount float64) {
	if r == nil || amount <= 0 {
		return
	}
	r.set(r.current + amount*r.table.GetStat(SpecialResourceGain))
}

// TryConsume spends amount if the gauge holds at least that much.
func (r *Resource) TryConsume(amount float64) bool {
	if r == nil || amount < 0 || r.current < amount {
		return false
	}
	r.set(r.current - amount)
	return true
}

func (r *Resource) CanAfford(amount float64) bool {
	return r != nil && r.current >= amount
}

func (r *Resource) Reset() {
	if r == nil {
		return
	}
	r.set(0)
}

func (r *Resource) Current() float64 {
	if r == nil {
		return 0
	}
	return r.current
}

func (r *Resource) Max() float64 {
	if r == nil {
		return 0
	}
	return r.table.GetStat(SpecialResourceMax)
}

func (r *Resource) set(v float64) {
	next := min(max(v, 0), r.Max())
	if next == r.current {
		return
	}
	r.current = next
	r.Changed.Emit(ResourceChange{Current: r.current, Max: r.Max()})
}
