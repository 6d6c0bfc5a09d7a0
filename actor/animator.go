package actor

import "log/slog"

// Animation trigger names shared by every controller.
const (
	TriggerAttack        = "AttackTrigger"
	TriggerHeavyAttack   = "HeavyAttackTrigger"
	TriggerParry         = "ParryTrigger"
	TriggerDodge         = "DodgeTrigger"
	TriggerSpecialAttack = "SpecialAttackTrigger"
	TriggerHit           = "HitTrigger"
	TriggerDeath         = "DeathTrigger"
	TriggerExecution     = "ExecutionTrigger"
	TriggerStagger       = "StaggerTrigger"
	TriggerGroggy        = "GroggyTrigger"
	TriggerJump          = "JumpTrigger"

	ParamSpeed    = "Speed"
	ParamGuarding = "IsGuarding"
)

// Animator receives fire-and-forget animation and audio cues. Nothing reads
// a result back, and implementations must not fail loudly.
type Animator interface {
	SetTrigger(name string)
	SetFloat(name string, v float64)
}

// NopAnimator drops every cue.
type NopAnimator struct{}

func (NopAnimator) SetTrigger(string)         {}
func (NopAnimator) SetFloat(string, float64) {}

// MultiAnimator fans cues out to several animators.
type MultiAnimator []Animator

func (m MultiAnimator) SetTrigger(name string) {
	for _, a := range m {
		if a != nil {
			a.SetTrigger(name)
		}
	}
}

func (m MultiAnimator) SetFloat(name string, v float64) {
	for _, a := range m {
		if a != nil {
			a.SetFloat(name, v)
		}
	}
}

// LogAnimator writes triggers to the debug log. Float parameters change every
// tick and are dropped.
type LogAnimator struct {
	Label string
}

func (l LogAnimator) SetTrigger(name string) {
	slog.Debug("anim trigger", "actor", l.Label, "trigger", name)
}

func (LogAnimator) SetFloat(string, float64) {}

// RecordingAnimator remembers the triggers it receives. The debug panel uses
// it to show the last cue per actor.
type RecordingAnimator struct {
	Triggers []string
	Floats   map[string]float64
	// Limit keeps only the most recent triggers when positive.
	Limit int
}

func (r *RecordingAnimator) SetTrigger(name string) {
	if r.Limit > 0 && len(r.Triggers) >= r.Limit {
		n := copy(r.Triggers, r.Triggers[len(r.Triggers)-r.Limit+1:])
		r.Triggers = r.Triggers[:n]
	}
	r.Triggers = append(r.Triggers, name)
}

func (r *RecordingAnimator) SetFloat(name string, v float64) {
	if r.Floats == nil {
		r.Floats = make(map[string]float64)
	}
	r.Floats[name] = v
}

// Last returns the most recent trigger, or "".
func (r *RecordingAnimator) Last() string {
	if len(r.Triggers) == 0 {
		return ""
	}
	return r.Triggers[len(r.Triggers)-1]
}
