package combat

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/stats"
)

// TriggerExecution is the attacker animation fired when an execution starts.
const TriggerExecution = "ExecutionTrigger"

// Executable is a target an execution can lock onto.
type Executable interface {
	Entity() ecs.Entity
	Position() cp.Vector
	Health() *component.Health
	Durability() *component.Durability
	Freeze()
	Unfreeze()
}

// Executor is the actor performing an execution.
type Executor interface {
	LockMovement()
	UnlockMovement()
	Trigger(name string)
}

// Finder is the spatial query used to locate targets.
type Finder interface {
	QueryCircle(center cp.Vector, radius float64, category ecs.Category) []ecs.Hit
}

// StatReader reads final stat values.
type StatReader interface {
	GetStat(stat stats.Type) float64
}

// ExecutionConfig tunes the execution sequence.
type ExecutionConfig struct {
	Range      float64 `yaml:"range"`
	Duration   float64 `yaml:"duration"`
	BaseDamage float64 `yaml:"base_damage"`
}

func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		Range:      2,
		Duration:   1,
		BaseDamage: 9999,
	}
}

// Execution runs at most one execution at a time. A request made while one
// is in flight is rejected, not queued.
type Execution struct {
	cfg      ExecutionConfig
	finder   Finder
	stats    StatReader
	category ecs.Category

	executing bool
	target    Executable
	executor  Executor
	timer     float64

	Started   component.Signal[Executable]
	Completed component.Signal[Executable]
	Cancelled component.Signal[Executable]
}

// NewExecution creates an execution system searching enemies through finder.
// A nil stat reader means no ExecutionDamage bonus.
func NewExecution(cfg ExecutionConfig, finder Finder, statReader StatReader) *Execution {
	if cfg.Range <= 0 {
		cfg.Range = DefaultExecutionConfig().Range
	}
	return &Execution{
		cfg:      cfg,
		finder:   finder,
		stats:    statReader,
		category: ecs.CategoryEnemy,
	}
}

func (e *Execution) Configure(cfg ExecutionConfig) {
	if e == nil || cfg.Range <= 0 {
		return
	}
	e.cfg = cfg
}

func (e *Execution) Config() ExecutionConfig {
	return e.cfg
}

// TryExecute starts an execution on the nearest groggy target within range
// of pos. It returns false if one is already running or none is in range.
func (e *Execution) TryExecute(executor Executor, pos cp.Vector) bool {
	if e == nil || e.executing {
		return false
	}
	target := e.findTarget(pos)
	if target == nil {
		return false
	}

	e.executing = true
	e.target = target
	e.executor = executor
	e.timer = 0

	if executor != nil {
		executor.LockMovement()
		executor.Trigger(TriggerExecution)
	}
	target.Freeze()
	slog.Debug("execution started", "target", target.Entity())
	e.Started.Emit(target)
	return true
}

// HasExecutableInRange reports whether TryExecute at pos would find a target.
func (e *Execution) HasExecutableInRange(pos cp.Vector) bool {
	return e.findTarget(pos) != nil
}

// Update advances the execution timer and resolves it once the duration elapses.
func (e *Execution) Update(dt float64) {
	if e == nil || !e.executing {
		return
	}
	e.timer += dt
	if e.timer >= e.cfg.Duration {
		e.complete()
	}
}

// CancelExecution unwinds locks without dealing damage.
func (e *Execution) CancelExecution() {
	if e == nil || !e.executing {
		return
	}
	target := e.target
	e.release()
	slog.Debug("execution cancelled", "target", target.Entity())
	e.Cancelled.Emit(target)
}

func (e *Execution) IsExecuting() bool {
	return e != nil && e.executing
}

func (e *Execution) Target() Executable {
	if e == nil {
		return nil
	}
	return e.target
}

// Progress returns elapsed/duration of the running execution.
func (e *Execution) Progress() float64 {
	if e == nil || !e.executing || e.cfg.Duration <= 0 {
		return 0
	}
	return min(1, e.timer/e.cfg.Duration)
}

// Damage is the lethal damage dealt on completion.
func (e *Execution) Damage() float64 {
	bonus := 0.0
	if e.stats != nil {
		bonus = e.stats.GetStat(stats.ExecutionDamage)
	}
	return e.cfg.BaseDamage + bonus
}

func (e *Execution) complete() {
	target := e.target
	target.Health().TakeDamage(e.Damage(), false, false, false)
	target.Durability().OnExecute()
	e.release()
	slog.Debug("execution completed", "target", target.Entity())
	e.Completed.Emit(target)
}

func (e *Execution) release() {
	if e.target != nil {
		e.target.Unfreeze()
	}
	if e.executor != nil {
		e.executor.UnlockMovement()
	}
	e.executing = false
	e.target = nil
	e.executor = nil
	e.timer = 0
}

func (e *Execution) findTarget(pos cp.Vector) Executable {
	if e == nil || e.finder == nil {
		return nil
	}
	for _, hit := range e.finder.QueryCircle(pos, e.cfg.Range, e.category) {
		target, ok := hit.Owner.(Executable)
		if !ok || target == nil {
			continue
		}
		if target.Health().IsDead() || !target.Durability().CanBeExecuted() {
			continue
		}
		return target
	}
	return nil
}
