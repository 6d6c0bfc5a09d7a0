// Package actortest provides in-memory collaborators for controller tests.
package actortest

import (
	"cmp"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/ecs"
)

// Body is a kinematic stand-in for *ecs.Body. Step integrates velocity
// without gravity; Ground pins the grounded flag.
type Body struct {
	Pos    cp.Vector
	Vel    cp.Vector
	Ground bool
	Frozen bool
}

func NewBody(x, y float64) *Body {
	return &Body{Pos: cp.Vector{X: x, Y: y}, Ground: true}
}

func (b *Body) Position() cp.Vector { return b.Pos }
func (b *Body) Velocity() cp.Vector { return b.Vel }
func (b *Body) Grounded() bool      { return b.Ground }

func (b *Body) SetVelocity(v cp.Vector) {
	if b.Frozen {
		return
	}
	b.Vel = v
}

func (b *Body) SetFrozen(frozen bool) {
	b.Frozen = frozen
	if frozen {
		b.Vel = cp.Vector{}
	}
}

// Step moves the body by its velocity.
func (b *Body) Step(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mult(dt))
}

// Finder answers circle queries over a fixed set of registered owners.
type Finder struct {
	entries []entry
}

type entry struct {
	entity   ecs.Entity
	category ecs.Category
	owner    any
	pos      func() cp.Vector
}

// Add registers an owner. Its position is read at query time.
func (f *Finder) Add(e ecs.Entity, category ecs.Category, owner any, pos func() cp.Vector) {
	f.entries = append(f.entries, entry{entity: e, category: category, owner: owner, pos: pos})
}

// AddTarget registers a target under its own position.
func (f *Finder) AddTarget(t actor.Target, category ecs.Category) {
	f.Add(t.Entity(), category, t, t.Position)
}

func (f *Finder) QueryCircle(center cp.Vector, radius float64, category ecs.Category) []ecs.Hit {
	var hits []ecs.Hit
	for _, e := range f.entries {
		if e.category&category == 0 {
			continue
		}
		d := center.Distance(e.pos())
		if d <= radius {
			hits = append(hits, ecs.Hit{Entity: e.entity, Owner: e.owner, Distance: d})
		}
	}
	slices.SortFunc(hits, func(a, b ecs.Hit) int { return cmp.Compare(a.Distance, b.Distance) })
	return hits
}

// Target is a stationary target that records the attacks it receives.
type Target struct {
	ID       ecs.Entity
	Pos      cp.Vector
	Dead     bool
	Received []actor.Attack
}

func (t *Target) Entity() ecs.Entity  { return t.ID }
func (t *Target) Position() cp.Vector { return t.Pos }
func (t *Target) IsAlive() bool       { return !t.Dead }

func (t *Target) ReceiveAttack(a actor.Attack) float64 {
	t.Received = append(t.Received, a)
	return a.Damage
}

// TotalDamage sums the damage of every received attack.
func (t *Target) TotalDamage() float64 {
	total := 0.0
	for _, a := range t.Received {
		total += a.Damage
	}
	return total
}
