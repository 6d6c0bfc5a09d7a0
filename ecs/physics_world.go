package ecs

import (
	"cmp"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
)

// Category is a collision category bit used by bodies and spatial queries.
type Category uint

const (
	CategoryWorld Category = 1 << iota
	CategoryPlayer
	CategoryEnemy
)

const allCategories = ^uint(0)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

// groundEpsilon is how far above the floor a body still counts as grounded.
const groundEpsilon = 0.05

// PhysicsConfig describes the arena the physics world simulates.
type PhysicsConfig struct {
	Gravity    float64
	FloorY     float64
	HalfWidth  float64
	Iterations int
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:    -50,
		FloorY:     0,
		HalfWidth:  30,
		Iterations: 10,
	}
}

// PhysicsWorld owns the Chipmunk space, the arena bounds and every actor body.
type PhysicsWorld struct {
	cfg         PhysicsConfig
	space       *cp.Space
	bodies      map[Entity]*Body
	shapeToBody map[*cp.Shape]*Body
}

// NewPhysicsWorld creates a space with a flat floor and two side walls.
func NewPhysicsWorld(cfg PhysicsConfig) *PhysicsWorld {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10
	}
	if cfg.HalfWidth <= 0 {
		cfg.HalfWidth = DefaultPhysicsConfig().HalfWidth
	}
	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	pw := &PhysicsWorld{
		cfg:         cfg,
		space:       space,
		bodies:      make(map[Entity]*Body),
		shapeToBody: make(map[*cp.Shape]*Body),
	}
	pw.buildStaticShapes()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Config() PhysicsConfig {
	return pw.cfg
}

// AddBody creates a dynamic box body for an entity. Actor bodies only collide
// with the arena, never with each other.
func (pw *PhysicsWorld) AddBody(e Entity, owner any, category Category, pos cp.Vector, width, height float64) *Body {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	if existing, ok := pw.bodies[e]; ok {
		return existing
	}

	cpBody := cp.NewBody(1, math.Inf(1))
	cpBody.SetPosition(pos)
	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: uint(category), Mask: uint(CategoryWorld)})

	b := &Body{
		entity:     e,
		owner:      owner,
		category:   category,
		body:       cpBody,
		shape:      shape,
		width:      width,
		halfHeight: height / 2,
		floorY:     pw.cfg.FloorY,
	}
	cpBody.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if b.frozen {
			body.SetVelocityVector(cp.Vector{})
			return
		}
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
	})

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.bodies[e] = b
	pw.shapeToBody[shape] = b
	return b
}

// RemoveBody detaches an entity's body from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) bool {
	if pw == nil {
		return false
	}
	b, ok := pw.bodies[e]
	if !ok {
		return false
	}
	pw.space.RemoveShape(b.shape)
	pw.space.RemoveBody(b.body)
	delete(pw.shapeToBody, b.shape)
	delete(pw.bodies, e)
	return true
}

func (pw *PhysicsWorld) Body(e Entity) (*Body, bool) {
	if pw == nil {
		return nil, false
	}
	b, ok := pw.bodies[e]
	return b, ok
}

// Bodies returns all bodies ordered by entity.
func (pw *PhysicsWorld) Bodies() []*Body {
	if pw == nil {
		return nil
	}
	out := make([]*Body, 0, len(pw.bodies))
	for _, b := range pw.bodies {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *Body) int { return cmp.Compare(a.entity, b.entity) })
	return out
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Hit is one result of a spatial query.
type Hit struct {
	Entity   Entity
	Owner    any
	Distance float64
}

// QueryCircle returns every body of the given category whose shape lies within
// radius of center, nearest first. Distance is measured between centers.
func (pw *PhysicsWorld) QueryCircle(center cp.Vector, radius float64, category Category) []Hit {
	if pw == nil || pw.space == nil || radius <= 0 {
		return nil
	}
	filter := cp.ShapeFilter{Group: 0, Categories: allCategories, Mask: uint(category)}
	var hits []Hit
	pw.space.PointQuery(center, radius, filter, func(shape *cp.Shape, point cp.Vector, distance float64, gradient cp.Vector, data interface{}) {
		b, ok := pw.shapeToBody[shape]
		if !ok {
			return
		}
		hits = append(hits, Hit{Entity: b.entity, Owner: b.owner, Distance: center.Distance(b.Position())})
	}, nil)
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity, b.Entity)
	})
	return hits
}

func (pw *PhysicsWorld) buildStaticShapes() {
	const thickness = 0.5
	floor := pw.cfg.FloorY - thickness
	w := pw.cfg.HalfWidth
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: -w, Y: floor}, b: cp.Vector{X: w, Y: floor}},
		{a: cp.Vector{X: -w - thickness, Y: floor}, b: cp.Vector{X: -w - thickness, Y: floor + 100}},
		{a: cp.Vector{X: w + thickness, Y: floor}, b: cp.Vector{X: w + thickness, Y: floor + 100}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: uint(CategoryWorld), Mask: allCategories})
		pw.space.AddShape(shape)
	}
}

// Body is a dynamic Chipmunk body owned by one actor.
type Body struct {
	entity     Entity
	owner      any
	category   Category
	body       *cp.Body
	shape      *cp.Shape
	width      float64
	halfHeight float64
	floorY     float64
	frozen     bool
}

func (b *Body) Entity() Entity {
	return b.entity
}

func (b *Body) Category() Category {
	return b.category
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *Body) SetPosition(p cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(p)
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

// SetVelocity is ignored while the body is frozen.
func (b *Body) SetVelocity(v cp.Vector) {
	if b == nil || b.body == nil || b.frozen {
		return
	}
	b.body.SetVelocityVector(v)
}

func (b *Body) Grounded() bool {
	if b == nil || b.body == nil {
		return false
	}
	return b.Position().Y-b.halfHeight <= b.floorY+groundEpsilon
}

// SetFrozen suspends gravity and velocity integration.
func (b *Body) SetFrozen(frozen bool) {
	if b == nil || b.body == nil {
		return
	}
	b.frozen = frozen
	if frozen {
		b.body.SetVelocityVector(cp.Vector{})
	}
}

func (b *Body) Frozen() bool {
	return b != nil && b.frozen
}

// Size returns the body's box extents.
func (b *Body) Size() (w, h float64) {
	if b == nil {
		return 0, 0
	}
	return b.width, b.halfHeight * 2
}
