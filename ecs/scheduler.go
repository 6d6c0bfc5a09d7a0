package ecs

// Actor is anything the scheduler ticks. Update runs the variable-step logic
// (input, transitions, timers), FixedUpdate the velocity integration step.
type Actor interface {
	Entity() Entity
	Update(dt float64)
	FixedUpdate(dt float64)
}

// Clock reports simulation time in seconds.
type Clock interface {
	Now() float64
}

// Scheduler ticks actors in registration order. Every tick runs the update
// phase for all live actors before the fixed-update phase.
type Scheduler struct {
	actors  []Actor
	removed map[Entity]struct{}
	now     float64
	ticks   uint64
}

func NewScheduler(actors ...Actor) *Scheduler {
	s := &Scheduler{removed: make(map[Entity]struct{})}
	for _, a := range actors {
		s.Add(a)
	}
	return s
}

func (s *Scheduler) Add(actor Actor) {
	if actor == nil {
		return
	}
	delete(s.removed, actor.Entity())
	s.actors = append(s.actors, actor)
}

// Remove drops an actor. Removal during a tick takes effect immediately for
// the remaining phases; the slice is compacted at the end of the tick.
func (s *Scheduler) Remove(e Entity) bool {
	for _, a := range s.actors {
		if a.Entity() == e {
			s.removed[e] = struct{}{}
			return true
		}
	}
	return false
}

func (s *Scheduler) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.ticks++

	actors := s.actors
	for _, a := range actors {
		if s.isRemoved(a) {
			continue
		}
		a.Update(dt)
	}
	for _, a := range actors {
		if s.isRemoved(a) {
			continue
		}
		a.FixedUpdate(dt)
	}
	s.compact()
}

func (s *Scheduler) Now() float64 {
	return s.now
}

func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

func (s *Scheduler) Len() int {
	n := 0
	for _, a := range s.actors {
		if !s.isRemoved(a) {
			n++
		}
	}
	return n
}

func (s *Scheduler) Actors() []Actor {
	actors := make([]Actor, 0, len(s.actors))
	for _, a := range s.actors {
		if !s.isRemoved(a) {
			actors = append(actors, a)
		}
	}
	return actors
}

func (s *Scheduler) isRemoved(a Actor) bool {
	_, ok := s.removed[a.Entity()]
	return ok
}

func (s *Scheduler) compact() {
	if len(s.removed) == 0 {
		return
	}
	kept := s.actors[:0]
	for _, a := range s.actors {
		if !s.isRemoved(a) {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(s.actors); i++ {
		s.actors[i] = nil
	}
	s.actors = kept
	clear(s.removed)
}
