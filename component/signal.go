package component

// Subscription identifies a handler registered on a Signal.
type Subscription uint64

type handler[T any] struct {
	id Subscription
	fn func(T)
}

// Signal is an ordered, synchronous observer list. Handlers run in
// registration order within the Emit call.
type Signal[T any] struct {
	next     Subscription
	handlers []handler[T]
}

// Add registers fn and returns a handle for Remove.
func (s *Signal[T]) Add(fn func(T)) Subscription {
	if s == nil || fn == nil {
		return 0
	}
	s.next++
	s.handlers = append(s.handlers, handler[T]{id: s.next, fn: fn})
	return s.next
}

// Remove unregisters a handler. Handlers removed while an Emit is in progress
// still see that emit.
func (s *Signal[T]) Remove(id Subscription) bool {
	if s == nil || id == 0 {
		return false
	}
	for i, h := range s.handlers {
		if h.id != id {
			continue
		}
		kept := make([]handler[T], 0, len(s.handlers)-1)
		kept = append(kept, s.handlers[:i]...)
		kept = append(kept, s.handlers[i+1:]...)
		s.handlers = kept
		return true
	}
	return false
}

// Emit calls every handler with v.
func (s *Signal[T]) Emit(v T) {
	if s == nil || len(s.handlers) == 0 {
		return
	}
	for _, h := range s.handlers[:len(s.handlers):len(s.handlers)] {
		h.fn(v)
	}
}

func (s *Signal[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.handlers)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
