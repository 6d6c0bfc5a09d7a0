// Package arena wires the combat packages into a playable room: one player,
// training dummies, enemies and a boss on a flat floor. Both the window host
// and the terminal host drive it one tick at a time.
package arena

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/actor"
	cue "github.com/milk9111/groggy/audio"
	"github.com/milk9111/groggy/boss"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/enemy"
	"github.com/milk9111/groggy/input"
	"github.com/milk9111/groggy/meta"
	"github.com/milk9111/groggy/player"
	"github.com/milk9111/groggy/prefabs"
	"github.com/milk9111/groggy/run"
	"github.com/milk9111/groggy/stats"
)

const recentEvents = 8

// Options are the host services an arena runs with. All are optional.
type Options struct {
	Store  meta.Store
	Sinks  []run.Sink
	Audio  *audio.Context
	Source input.Source
}

type Arena struct {
	specs Specs
	opts  Options

	table       *stats.Table
	progression *meta.Progression
	runs        *run.Manager
	cues        *cue.CueBank
	in          input.State
	playstyle   stats.Playstyle

	world   *ecs.World
	player  *player.Controller
	anim    *actor.RecordingAnimator
	dummies []*actor.Dummy
	enemies []*enemy.Controller
	bosses  []*boss.Controller

	restartIn float64
	recent    []ecs.Event
	lastRun   run.Statistics
	builds    int
}

// New builds the arena and starts the first run. A corrupt save is logged
// and replaced by fresh progression.
func New(specs Specs, opts Options) (*Arena, error) {
	if err := specs.Arena.Validate(); err != nil {
		return nil, err
	}

	table := stats.NewTableWithBases(specs.Player.Stats)
	if specs.Playstyles.Presets != nil {
		table.SetPresets(specs.Playstyles.Presets)
	}
	progression := meta.NewProgression(specs.Upgrades.Upgrades, table, opts.Store)
	if err := progression.Load(); err != nil && !errors.Is(err, meta.ErrChecksum) {
		return nil, fmt.Errorf("arena: load progression: %w", err)
	}
	progression.ApplyAll(table)

	a := &Arena{
		specs:       specs,
		opts:        opts,
		table:       table,
		progression: progression,
		playstyle:   specs.Arena.Playstyle,
		cues:        cue.NewCueBank(opts.Audio, specs.Cues.Cues),
	}
	a.cues.SetMuted(specs.Arena.Muted)
	a.runs = run.NewManager(table, progression, opts.Sinks...)
	a.runs.Ended.Add(a.onRunEnded)

	a.build()
	return a, nil
}

func (a *Arena) Specs() Specs                   { return a.specs }
func (a *Arena) World() *ecs.World              { return a.world }
func (a *Arena) Player() *player.Controller     { return a.player }
func (a *Arena) Bosses() []*boss.Controller     { return a.bosses }
func (a *Arena) Enemies() []*enemy.Controller   { return a.enemies }
func (a *Arena) Dummies() []*actor.Dummy        { return a.dummies }
func (a *Arena) Table() *stats.Table            { return a.table }
func (a *Arena) Runs() *run.Manager             { return a.runs }
func (a *Arena) Progression() *meta.Progression { return a.progression }
func (a *Arena) Cues() *cue.CueBank             { return a.cues }
func (a *Arena) Input() *input.State            { return &a.in }
func (a *Arena) LastRun() run.Statistics        { return a.lastRun }
func (a *Arena) Builds() int                    { return a.builds }
func (a *Arena) Playstyle() stats.Playstyle     { return a.playstyle }
func (a *Arena) RestartIn() float64             { return a.restartIn }
func (a *Arena) LastTrigger() string            { return a.anim.Last() }
func (a *Arena) Recent() []ecs.Event            { return append([]ecs.Event(nil), a.recent...) }
func (a *Arena) Purchase(id string) error       { return a.progression.Purchase(id) }
func (a *Arena) SetSource(src input.Source)     { a.opts.Source = src }

// Tick polls input, advances the world one step and reacts to its events.
// Once a run is over the arena rebuilds itself after the restart delay.
func (a *Arena) Tick(dt float64) {
	if a.opts.Source != nil {
		a.opts.Source.Poll(&a.in)
	}
	a.world.Tick(dt)
	a.runs.Update(dt)
	a.drainEvents()

	if a.runs.Active() {
		return
	}
	a.restartIn -= dt
	if a.restartIn <= 0 {
		a.build()
	}
}

// SelectPlaystyle forfeits the current run and starts a new one with p.
func (a *Arena) SelectPlaystyle(p stats.Playstyle) {
	a.playstyle = p
	if a.runs.Active() {
		if _, err := a.runs.EndRun(false); err != nil {
			slog.Warn("run sinks failed", "err", err)
		}
	}
	a.build()
}

// Restart abandons the current run and rebuilds the arena.
func (a *Arena) Restart() {
	a.SelectPlaystyle(a.playstyle)
}

func (a *Arena) build() {
	if a.player != nil {
		a.player.Release()
	}

	physCfg := ecs.DefaultPhysicsConfig()
	if hw := a.specs.Arena.HalfWidth; hw > 0 {
		physCfg.HalfWidth = hw
	}
	a.world = ecs.NewWorld(ecs.NewPhysicsWorld(physCfg))
	a.anim = &actor.RecordingAnimator{Limit: 1}
	a.dummies, a.enemies, a.bosses = nil, nil, nil
	a.recent = nil
	a.in.Reset()

	// Start the run before spawning so the player is built on the run's
	// playstyle.
	if err := a.runs.StartRun(a.playstyle); err != nil {
		slog.Warn("run not started", "err", err)
	}

	// The player ticks first so enemies react to this tick's guard and dodge.
	for _, sp := range a.specs.Arena.Spawns {
		if sp.Kind == prefabs.SpawnPlayer {
			a.spawnPlayer(sp.X)
		}
	}
	for _, sp := range a.specs.Arena.Spawns {
		switch sp.Kind {
		case prefabs.SpawnDummy:
			a.spawnDummy(sp.X)
		case prefabs.SpawnEnemy:
			a.spawnEnemy(sp.X)
		case prefabs.SpawnBoss:
			a.spawnBoss(sp.X)
		}
	}

	a.restartIn = 0
	a.builds++
}

func (a *Arena) spawnPlayer(x float64) {
	spec := a.specs.Player
	e := a.world.CreateEntity()
	p := player.New(e, nil, actor.MultiAnimator{a.anim, a.cues}, a.table, spec.Config, player.Deps{
		Clock:     a.world,
		Events:    a.world.Events(),
		Finder:    a.world.PhysicsWorld(),
		Recorder:  a.runs,
		Input:     &a.in,
		Execution: a.specs.Combat.Execution,
	})
	p.Timing().SetWindows(a.specs.Combat.PerfectWindow, a.specs.Combat.NormalWindow)
	p.SetBody(a.world.PhysicsWorld().AddBody(e, p, ecs.CategoryPlayer, floorPos(x, spec.Height), spec.Width, spec.Height))
	a.world.Spawn(p)
	a.player = p
}

func (a *Arena) spawnDummy(x float64) {
	spec := a.specs.Combat.Dummy
	size := a.specs.Player
	e := a.world.CreateEntity()
	d := actor.NewDummy(e, nil, spec.MaxHealth, spec.Durability)
	d.SetBody(a.world.PhysicsWorld().AddBody(e, d, ecs.CategoryEnemy, floorPos(x, size.Height), size.Width, size.Height))
	a.world.Spawn(d)
	a.dummies = append(a.dummies, d)
}

func (a *Arena) spawnEnemy(x float64) {
	cfg := a.specs.Enemy
	e := a.world.CreateEntity()
	c := enemy.New(e, nil, actor.MultiAnimator{actor.LogAnimator{Label: "enemy"}, a.cues}, cfg, enemy.Deps{
		Clock:     a.world,
		Events:    a.world.Events(),
		Destroyer: a.world,
		Recorder:  a.runs,
	})
	c.SetBody(a.world.PhysicsWorld().AddBody(e, c, ecs.CategoryEnemy, floorPos(x, cfg.Height), cfg.Width, cfg.Height))
	c.SetTarget(a.player)
	a.world.Spawn(c)
	a.enemies = append(a.enemies, c)
}

func (a *Arena) spawnBoss(x float64) {
	cfg := a.specs.Boss
	e := a.world.CreateEntity()
	deps := boss.Deps{
		Clock:     a.world,
		Events:    a.world.Events(),
		Destroyer: a.world,
		Recorder:  a.runs,
	}
	if a.specs.Script != nil {
		deps.Selector = a.specs.Script
	}
	c := boss.New(e, nil, actor.MultiAnimator{actor.LogAnimator{Label: cfg.Name}, a.cues}, cfg, deps)
	c.SetBody(a.world.PhysicsWorld().AddBody(e, c, ecs.CategoryEnemy, floorPos(x, cfg.Height), cfg.Width, cfg.Height))
	c.SetTarget(a.player)
	a.world.Spawn(c)
	a.bosses = append(a.bosses, c)
}

func floorPos(x, height float64) cp.Vector {
	return cp.Vector{X: x, Y: height / 2}
}

func (a *Arena) drainEvents() {
	for _, evt := range a.world.Events().Drain() {
		slog.Debug("combat event", "kind", evt.Kind, "entity", evt.Entity, "time", evt.Time)
		if evt.Kind != ecs.EventStateChanged {
			a.recent = append(a.recent, evt)
			if len(a.recent) > recentEvents {
				a.recent = a.recent[len(a.recent)-recentEvents:]
			}
		}
		if evt.Kind == ecs.EventDeath {
			a.onDeath(evt.Entity)
		}
	}
}

func (a *Arena) onDeath(e ecs.Entity) {
	if !a.runs.Active() {
		return
	}
	rewards := a.specs.Arena.Rewards
	for _, c := range a.enemies {
		if c.Entity() == e {
			a.runs.AddGold(rewards.Enemy)
		}
	}
	for _, c := range a.bosses {
		if c.Entity() == e {
			a.runs.AddGold(rewards.Boss)
		}
	}
	if a.cleared() {
		slog.Info("arena cleared")
		if _, err := a.runs.EndRun(true); err != nil {
			slog.Warn("run sinks failed", "err", err)
		}
	}
}

// cleared reports whether every hostile is dead. An arena without hostiles is
// never cleared.
func (a *Arena) cleared() bool {
	if len(a.enemies)+len(a.bosses) == 0 {
		return false
	}
	for _, c := range a.enemies {
		if !c.IsDead() {
			return false
		}
	}
	for _, c := range a.bosses {
		if !c.IsDead() {
			return false
		}
	}
	return true
}

func (a *Arena) onRunEnded(s run.Statistics) {
	a.lastRun = s
	a.restartIn = a.specs.Arena.RestartTime
	slog.Info("run ended", "victory", s.Victory, "score", s.Score(), "gold", s.Gold, "duration", s.Duration)
	if err := a.progression.Save(); err != nil {
		slog.Warn("progression not saved", "err", err)
	}
}
