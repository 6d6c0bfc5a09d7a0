package combat

import (
	"fmt"

	"github.com/milk9111/groggy/component"
)

// Judgment grades how early a guard or dodge was started before a hit.
type Judgment int

const (
	Miss Judgment = iota
	Normal
	Perfect
)

func (j Judgment) String() string {
	switch j {
	case Miss:
		return "Miss"
	case Normal:
		return "Normal"
	case Perfect:
		return "Perfect"
	default:
		return fmt.Sprintf("Judgment(%d)", int(j))
	}
}

const (
	DefaultPerfectWindow = 0.15
	DefaultNormalWindow  = 0.3
)

// WindowSource supplies stat-driven perfect windows.
type WindowSource interface {
	PerfectGuardWindow() float64
	PerfectDodgeWindow() float64
}

// TimingEvent is the payload of the judgment signals.
type TimingEvent struct {
	Start    float64
	Hit      float64
	Judgment Judgment
}

// Judge grades an elapsed reaction time. A negative elapsed time means the
// action started after the hit and is a miss.
func Judge(elapsed, perfectWindow, normalWindow float64) Judgment {
	switch {
	case elapsed < 0:
		return Miss
	case elapsed <= perfectWindow:
		return Perfect
	case elapsed <= normalWindow:
		return Normal
	default:
		return Miss
	}
}

// Within reports whether now falls inside [start, start+window]. Guard and
// dodge states use it for their perfect checks, so it agrees with Judge.
func Within(start, now, window float64) bool {
	return Judge(now-start, window, window) == Perfect
}

// Timing judges guard and dodge reactions for one actor.
type Timing struct {
	perfect float64
	normal  float64
	stats   WindowSource

	GuardJudged  component.Signal[TimingEvent]
	DodgeJudged  component.Signal[TimingEvent]
	PerfectGuard component.Signal[TimingEvent]
	PerfectDodge component.Signal[TimingEvent]
}

// NewTiming creates a timing system. With a nil stats source the fallback
// perfect window applies to both guard and dodge.
func NewTiming(stats WindowSource) *Timing {
	return &Timing{
		perfect: DefaultPerfectWindow,
		normal:  DefaultNormalWindow,
		stats:   stats,
	}
}

// SetWindows replaces the fallback perfect window and the normal window.
func (t *Timing) SetWindows(perfect, normal float64) {
	if t == nil || perfect < 0 {
		return
	}
	t.perfect = perfect
	t.normal = max(normal, perfect)
}

func (t *Timing) NormalWindow() float64 {
	if t == nil {
		return DefaultNormalWindow
	}
	return t.normal
}

func (t *Timing) GuardWindow() float64 {
	if t == nil {
		return DefaultPerfectWindow
	}
	if t.stats != nil {
		if w := t.stats.PerfectGuardWindow(); w > 0 {
			return w
		}
	}
	return t.perfect
}

func (t *Timing) DodgeWindow() float64 {
	if t == nil {
		return DefaultPerfectWindow
	}
	if t.stats != nil {
		if w := t.stats.PerfectDodgeWindow(); w > 0 {
			return w
		}
	}
	return t.perfect
}

func (t *Timing) JudgeGuard(start, hit float64) Judgment {
	if t == nil {
		return Miss
	}
	perfect := t.GuardWindow()
	evt := TimingEvent{Start: start, Hit: hit, Judgment: Judge(hit-start, perfect, max(t.normal, perfect))}
	t.GuardJudged.Emit(evt)
	if evt.Judgment == Perfect {
		t.PerfectGuard.Emit(evt)
	}
	return evt.Judgment
}

func (t *Timing) JudgeDodge(start, hit float64) Judgment {
	if t == nil {
		return Miss
	}
	perfect := t.DodgeWindow()
	evt := TimingEvent{Start: start, Hit: hit, Judgment: Judge(hit-start, perfect, max(t.normal, perfect))}
	t.DodgeJudged.Emit(evt)
	if evt.Judgment == Perfect {
		t.PerfectDodge.Emit(evt)
	}
	return evt.Judgment
}

// WindowCrossed reports whether a timer stepping from prev to now touched the
// closed window [start, end], including steps that jump over it entirely.
func WindowCrossed(prev, now, start, end float64) bool {
	return prev <= end && now >= start
}
