// Package run tracks the current run: its playstyle, stage, gold, run-only
// stat modifiers and the statistics handed to sinks when it ends.
package run

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/stats"
)

var (
	ErrRunActive   = errors.New("run: a run is already active")
	ErrNoActiveRun = errors.New("run: no active run")
)

// DefaultSinkTimeout bounds how long EndRun waits on each sink.
const DefaultSinkTimeout = 250 * time.Millisecond

// Recorder is what actors report to during a run.
type Recorder interface {
	RecordEnemyDefeated()
	RecordPerfectGuard()
	RecordPerfectDodge()
	EndRun(victory bool) (Statistics, error)
}

// Bank receives the gold of a finished run as permanent currency.
type Bank interface {
	AddCurrency(amount int)
}

// Sink stores finished runs.
type Sink interface {
	Insert(ctx context.Context, s Statistics) (int64, error)
}

// StageChange is the payload of Manager.StageChanged.
type StageChange struct {
	Stage int
	Room  int
}

type Manager struct {
	table *stats.Table
	bank  Bank
	sinks []Sink
	now   func() time.Time
	// sinkTimeout is the deadline of each sink insert made by EndRun.
	sinkTimeout time.Duration

	active       bool
	playstyle    stats.Playstyle
	stage        int
	room         int
	gold         int
	elapsed      float64
	defeated     int
	guards       int
	dodges       int
	runModifiers []stats.Modifier

	Started      component.Signal[stats.Playstyle]
	Ended        component.Signal[Statistics]
	GoldChanged  component.Signal[int]
	StageChanged component.Signal[StageChange]
}

// NewManager creates an idle manager. table and bank may be nil.
func NewManager(table *stats.Table, bank Bank, sinks ...Sink) *Manager {
	return &Manager{
		table:       table,
		bank:        bank,
		sinks:       sinks,
		now:         time.Now,
		sinkTimeout: DefaultSinkTimeout,
		stage:       1,
	}
}

// SetSinkTimeout changes the per-sink deadline. Non-positive values restore
// DefaultSinkTimeout.
func (m *Manager) SetSinkTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultSinkTimeout
	}
	m.sinkTimeout = d
}

// AddSink registers another statistics sink.
func (m *Manager) AddSink(s Sink) {
	if s != nil {
		m.sinks = append(m.sinks, s)
	}
}

func (m *Manager) StartRun(p stats.Playstyle) error {
	if m.active {
		return ErrRunActive
	}
	m.active = true
	m.playstyle = p
	m.stage, m.room = 1, 0
	m.gold = 0
	m.elapsed = 0
	m.defeated, m.guards, m.dodges = 0, 0, 0
	m.runModifiers = nil

	if m.table != nil {
		m.table.SetPlaystyle(p)
		m.table.ClearTemporaryModifiers()
	}
	slog.Info("run started", "playstyle", p)
	m.Started.Emit(p)
	return nil
}

// EndRun closes the run, banks its gold and forwards the statistics to every
// sink, giving each one the sink timeout. Sink failures are logged and joined
// into the returned error; the run is over either way. Slow sinks such as a
// database belong behind a Writer.
func (m *Manager) EndRun(victory bool) (Statistics, error) {
	if !m.active {
		return Statistics{}, ErrNoActiveRun
	}
	s := m.Statistics()
	s.Victory = victory
	s.EndedAt = m.now()
	m.active = false

	if m.table != nil {
		m.table.ClearTemporaryModifiers()
	}
	if m.bank != nil {
		m.bank.AddCurrency(m.gold)
	}
	slog.Info("run ended", "victory", victory, "duration", s.Duration, "stage", s.Stage, "room", s.Room,
		"enemies", s.EnemiesDefeated, "perfect_guards", s.PerfectGuards, "perfect_dodges", s.PerfectDodges, "gold", s.Gold)

	var errs []error
	for _, sink := range m.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), m.sinkTimeout)
		_, err := sink.Insert(ctx, s)
		cancel()
		if err != nil {
			slog.Warn("run sink failed", "err", err)
			errs = append(errs, err)
		}
	}
	m.Ended.Emit(s)
	return s, errors.Join(errs...)
}

// Update advances the run clock.
func (m *Manager) Update(dt float64) {
	if m.active && dt > 0 {
		m.elapsed += dt
	}
}

func (m *Manager) AdvanceRoom() {
	m.room++
	slog.Debug("advanced room", "stage", m.stage, "room", m.room)
	m.StageChanged.Emit(StageChange{Stage: m.stage, Room: m.room})
}

func (m *Manager) AdvanceStage() {
	m.stage++
	m.room = 0
	slog.Debug("advanced stage", "stage", m.stage)
	m.StageChanged.Emit(StageChange{Stage: m.stage, Room: m.room})
}

// AddGold adds amount scaled by the GoldGain stat, rounded to the nearest coin.
func (m *Manager) AddGold(amount int) {
	if amount <= 0 {
		return
	}
	gain := 1.0
	if m.table != nil {
		gain = m.table.GetStat(stats.GoldGain)
	}
	actual := int(math.Round(float64(amount) * gain))
	m.gold += actual
	slog.Debug("gold gained", "amount", actual, "base", amount, "multiplier", gain)
	m.GoldChanged.Emit(m.gold)
}

func (m *Manager) SpendGold(amount int) bool {
	if amount <= 0 || m.gold < amount {
		return false
	}
	m.gold -= amount
	m.GoldChanged.Emit(m.gold)
	return true
}

// AddRunModifier applies a modifier that lasts until the run ends.
func (m *Manager) AddRunModifier(mod stats.Modifier) {
	m.runModifiers = append(m.runModifiers, mod)
	if m.table != nil {
		m.table.AddTemporaryModifier(mod)
	}
}

func (m *Manager) RunModifiers() []stats.Modifier {
	return append([]stats.Modifier(nil), m.runModifiers...)
}

func (m *Manager) RecordEnemyDefeated() { m.defeated++ }
func (m *Manager) RecordPerfectGuard()  { m.guards++ }
func (m *Manager) RecordPerfectDodge()  { m.dodges++ }

func (m *Manager) Active() bool               { return m.active }
func (m *Manager) Gold() int                  { return m.gold }
func (m *Manager) Stage() int                 { return m.stage }
func (m *Manager) Room() int                  { return m.room }
func (m *Manager) Playstyle() stats.Playstyle { return m.playstyle }

// Duration is the run clock; zero when no run is active.
func (m *Manager) Duration() float64 {
	if !m.active {
		return 0
	}
	return m.elapsed
}

// Statistics snapshots the active run.
func (m *Manager) Statistics() Statistics {
	return Statistics{
		Playstyle:       m.playstyle,
		Duration:        m.Duration(),
		Stage:           m.stage,
		Room:            m.room,
		EnemiesDefeated: m.defeated,
		PerfectGuards:   m.guards,
		PerfectDodges:   m.dodges,
		Gold:            m.gold,
	}
}
