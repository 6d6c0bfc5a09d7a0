package ecs

// EventKind names a combat log entry.
type EventKind string

const (
	EventDamage        EventKind = "damage"
	EventDeath         EventKind = "death"
	EventGroggyStart   EventKind = "groggy_start"
	EventGroggyEnd     EventKind = "groggy_end"
	EventPerfectGuard  EventKind = "perfect_guard"
	EventPerfectDodge  EventKind = "perfect_dodge"
	EventExecution     EventKind = "execution"
	EventPhaseChanged  EventKind = "phase_changed"
	EventAttackSelect  EventKind = "attack_selected"
	EventStateChanged  EventKind = "state_changed"
	EventSpecsReloaded EventKind = "specs_reloaded"
)

// Event is a combat log entry collected during a tick and drained by a host.
type Event struct {
	Kind   EventKind
	Entity Entity
	Time   float64
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
