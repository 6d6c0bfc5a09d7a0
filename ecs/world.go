package ecs

import "log/slog"

type destroyTimer struct {
	entity    Entity
	remaining float64
}

// World owns entity handles, the actor scheduler, the physics space and the
// combat event log.
type World struct {
	entities  entityStore
	scheduler *Scheduler
	physics   *PhysicsWorld
	events    EventQueue
	timers    []destroyTimer
	onDestroy []func(Entity)
}

// NewWorld creates an empty world. A nil physics world is allowed for
// simulations that do not need bodies.
func NewWorld(physics *PhysicsWorld) *World {
	return &World{
		scheduler: NewScheduler(),
		physics:   physics,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Spawn registers an actor with the scheduler. Registration order is tick order.
func (w *World) Spawn(a Actor) {
	if w == nil || a == nil {
		return
	}
	w.scheduler.Add(a)
}

// DestroyEntity removes the entity's actor and body and retires the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	w.scheduler.Remove(e)
	w.physics.RemoveBody(e)
	w.entities.destroy(e)
	for _, fn := range w.onDestroy {
		fn(e)
	}
	slog.Debug("entity destroyed", "entity", e)
	return true
}

// DestroyAfter schedules destruction once delay seconds of simulation time pass.
func (w *World) DestroyAfter(e Entity, delay float64) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	if delay <= 0 {
		w.DestroyEntity(e)
		return
	}
	w.timers = append(w.timers, destroyTimer{entity: e, remaining: delay})
}

// OnDestroy registers a callback fired after an entity is destroyed.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, fn)
}

// Tick runs one frame: actor update phase, actor fixed-update phase, physics
// step, then pending destructions.
func (w *World) Tick(dt float64) {
	if w == nil {
		return
	}
	w.scheduler.Tick(dt)
	w.physics.Step(dt)

	if len(w.timers) == 0 {
		return
	}
	pending := w.timers[:0]
	var due []Entity
	for _, t := range w.timers {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t.entity)
			continue
		}
		pending = append(pending, t)
	}
	w.timers = pending
	for _, e := range due {
		w.DestroyEntity(e)
	}
}

// Now returns the simulation time in seconds.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.scheduler.Now()
}

func (w *World) Scheduler() *Scheduler {
	if w == nil {
		return nil
	}
	return w.scheduler
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physics
}
