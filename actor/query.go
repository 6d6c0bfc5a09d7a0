package actor

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/ecs"
)

// Finder is the spatial query attacks use. *ecs.PhysicsWorld satisfies it.
type Finder interface {
	QueryCircle(center cp.Vector, radius float64, category ecs.Category) []ecs.Hit
}

// TargetsInCircle returns the live targets of category inside the circle,
// nearest first, skipping self.
func TargetsInCircle(f Finder, center cp.Vector, radius float64, category ecs.Category, self ecs.Entity) []Target {
	if f == nil {
		return nil
	}
	var out []Target
	for _, hit := range f.QueryCircle(center, radius, category) {
		if hit.Entity == self {
			continue
		}
		t, ok := hit.Owner.(Target)
		if !ok || t == nil || !t.IsAlive() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// HitCircle is the melee hit area in front of an attacker: centred half the
// range ahead, with a radius of half the range.
func HitCircle(pos cp.Vector, facing, reach float64) (cp.Vector, float64) {
	return cp.Vector{X: pos.X + facing*reach/2, Y: pos.Y}, reach / 2
}
