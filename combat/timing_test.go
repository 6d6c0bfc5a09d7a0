package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type windows struct{ guard, dodge float64 }

func (w windows) PerfectGuardWindow() float64 { return w.guard }
func (w windows) PerfectDodgeWindow() float64 { return w.dodge }

func TestJudge(t *testing.T) {
	cases := []struct {
		name    string
		elapsed float64
		want    Judgment
	}{
		{"instant", 0, Perfect},
		{"inside_perfect", 0.1, Perfect},
		{"perfect_edge", 0.15, Perfect},
		{"normal", 0.2, Normal},
		{"normal_edge", 0.3, Normal},
		{"late", 0.31, Miss},
		{"before_start", -0.01, Miss},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Judge(c.elapsed, DefaultPerfectWindow, DefaultNormalWindow))
		})
	}
}

func TestTimingGuardScenario(t *testing.T) {
	timing := NewTiming(windows{guard: 0.2, dodge: 0.15})

	perfects := 0
	timing.PerfectGuard.Add(func(TimingEvent) { perfects++ })

	assert.Equal(t, Perfect, timing.JudgeGuard(10.0, 10.15))
	assert.Equal(t, Normal, timing.JudgeGuard(10.0, 10.25))
	assert.Equal(t, Miss, timing.JudgeGuard(10.0, 10.5))
	assert.Equal(t, 1, perfects)

	timing.SetWindows(0.1, 0.2)
	assert.Equal(t, Miss, timing.JudgeGuard(10.0, 10.25))
}

func TestTimingFallbackWindows(t *testing.T) {
	timing := NewTiming(nil)
	assert.Equal(t, DefaultPerfectWindow, timing.GuardWindow())
	assert.Equal(t, Perfect, timing.JudgeDodge(1, 1.1))
	assert.Equal(t, Normal, timing.JudgeDodge(1, 1.2))

	withStats := NewTiming(windows{guard: 0, dodge: 0.25})
	assert.Equal(t, DefaultPerfectWindow, withStats.GuardWindow())
	assert.Equal(t, Perfect, withStats.JudgeDodge(1, 1.2))
}

func TestWithinMatchesJudge(t *testing.T) {
	for _, now := range []float64{0.9, 1.0, 1.1, 1.2, 1.21, 2} {
		inline := Within(1, now, 0.2)
		judged := Judge(now-1, 0.2, 0.2) == Perfect
		assert.Equal(t, judged, inline, "now=%v", now)
	}
}

func TestWindowCrossed(t *testing.T) {
	tests := []struct {
		name      string
		prev, now float64
		want      bool
	}{
		{name: "before", prev: 0, now: 0.05, want: false},
		{name: "enters", prev: 0.05, now: 0.15, want: true},
		{name: "inside", prev: 0.15, now: 0.2, want: true},
		{name: "jumps_over", prev: 0.05, now: 0.4, want: true},
		{name: "at_end", prev: 0.25, now: 0.3, want: true},
		{name: "after", prev: 0.3, now: 0.4, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowCrossed(tt.prev, tt.now, 0.1, 0.25))
		})
	}
}
