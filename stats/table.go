package stats

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/milk9111/groggy/component"
)

// timedModifier is the expiry of the temporary entry with the given id.
type timedModifier struct {
	id        uint64
	remaining float64
}

// Table composes the player's final stats:
//
//	value = ((base + permanent + Σflat) * (1 + Σpercent)) * Πmultiply
//
// Modifiers come from the active playstyle and the temporary set. Any
// mutation marks the table dirty and the next read recomputes every stat.
type Table struct {
	base      [typeCount]float64
	permanent [typeCount]float64
	cache     [typeCount]float64
	dirty     bool

	playstyle      Playstyle
	presets        map[Playstyle][]Modifier
	playstyleMods  []Modifier
	temporary      []Modifier
	temporaryIDs   []uint64
	nextID         uint64
	timers         []timedModifier
	recalculations int

	StatChanged  component.Signal[Type]
	Recalculated component.Signal[*Table]
}

// NewTable creates a table with the default bases and playstyle presets.
func NewTable() *Table {
	return NewTableWithBases(DefaultBases())
}

// NewTableWithBases creates a table; stats missing from bases start at 0.
func NewTableWithBases(bases map[Type]float64) *Table {
	t := &Table{
		presets: DefaultPresets(),
		dirty:   true,
	}
	for stat, v := range bases {
		if stat.Valid() {
			t.base[stat] = v
		}
	}
	return t
}

// GetStat returns the final value of a stat, recomputing all stats first if
// anything changed since the last read.
func (t *Table) GetStat(stat Type) float64 {
	if t == nil || !stat.Valid() {
		return 0
	}
	if t.dirty {
		t.recalculate()
	}
	return t.cache[stat]
}

// Refresh recomputes now if dirty, so Recalculated fires within the current tick.
func (t *Table) Refresh() {
	if t != nil && t.dirty {
		t.recalculate()
	}
}

func (t *Table) Base(stat Type) float64 {
	if t == nil || !stat.Valid() {
		return 0
	}
	return t.base[stat]
}

func (t *Table) SetBase(stat Type, v float64) {
	if t == nil || !stat.Valid() {
		return
	}
	t.base[stat] = v
	t.markDirty(stat)
}

// SetBases replaces every base value given; others keep their value.
func (t *Table) SetBases(bases map[Type]float64) {
	if t == nil {
		return
	}
	for stat, v := range bases {
		if stat.Valid() {
			t.base[stat] = v
			t.markDirty(stat)
		}
	}
}

// AddPermanentBonus accumulates a flat meta-progression bonus.
func (t *Table) AddPermanentBonus(stat Type, v float64) {
	if t == nil || !stat.Valid() {
		return
	}
	t.permanent[stat] += v
	t.markDirty(stat)
}

func (t *Table) PermanentBonus(stat Type) float64 {
	if t == nil || !stat.Valid() {
		return 0
	}
	return t.permanent[stat]
}

// ResetPermanentBonuses clears all meta-progression bonuses.
func (t *Table) ResetPermanentBonuses() {
	if t == nil {
		return
	}
	for i, v := range t.permanent {
		if v != 0 {
			t.permanent[i] = 0
			t.markDirty(Type(i))
		}
	}
}

// SetPlaystyle replaces the playstyle modifier set in one step.
func (t *Table) SetPlaystyle(p Playstyle) {
	if t == nil {
		return
	}
	prev := t.playstyleMods
	t.playstyle = p
	t.playstyleMods = slices.Clone(t.presets[p])
	for _, m := range prev {
		t.markDirty(m.Stat)
	}
	for _, m := range t.playstyleMods {
		t.markDirty(m.Stat)
	}
	t.dirty = true
	slog.Debug("playstyle set", "playstyle", p, "modifiers", len(t.playstyleMods))
}

func (t *Table) Playstyle() Playstyle {
	if t == nil {
		return PlaystyleNone
	}
	return t.playstyle
}

// SetPresets overrides the playstyle tables and re-applies the active one.
func (t *Table) SetPresets(presets map[Playstyle][]Modifier) {
	if t == nil || presets == nil {
		return
	}
	t.presets = make(map[Playstyle][]Modifier, len(presets))
	for p, mods := range presets {
		t.presets[p] = slices.Clone(mods)
	}
	t.SetPlaystyle(t.playstyle)
}

// AddTemporaryModifier inserts a modifier until removed or cleared.
func (t *Table) AddTemporaryModifier(m Modifier) {
	if t == nil || !m.Stat.Valid() {
		return
	}
	t.addTemporary(m)
}

func (t *Table) addTemporary(m Modifier) uint64 {
	t.nextID++
	t.temporary = append(t.temporary, m)
	t.temporaryIDs = append(t.temporaryIDs, t.nextID)
	t.markDirty(m.Stat)
	return t.nextID
}

// AddTimedModifier inserts a modifier that Update removes after duration
// seconds. A non-positive duration behaves like AddTemporaryModifier.
func (t *Table) AddTimedModifier(m Modifier, duration float64) {
	if t == nil || !m.Stat.Valid() {
		return
	}
	id := t.addTemporary(m)
	if duration > 0 {
		t.timers = append(t.timers, timedModifier{id: id, remaining: duration})
	}
}

// RemoveTemporaryModifier removes the first temporary modifier equal to m
// and cancels its expiry. Removing an absent modifier is a no-op.
func (t *Table) RemoveTemporaryModifier(m Modifier) bool {
	if t == nil {
		return false
	}
	i := slices.Index(t.temporary, m)
	if i < 0 {
		return false
	}
	id := t.temporaryIDs[i]
	t.removeAt(i)
	t.timers = slices.DeleteFunc(t.timers, func(tm timedModifier) bool { return tm.id == id })
	return true
}

func (t *Table) removeAt(i int) {
	m := t.temporary[i]
	t.temporary = slices.Delete(t.temporary, i, i+1)
	t.temporaryIDs = slices.Delete(t.temporaryIDs, i, i+1)
	t.markDirty(m.Stat)
}

// ClearTemporaryModifiers drops every temporary modifier and pending expiry.
func (t *Table) ClearTemporaryModifiers() {
	if t == nil || (len(t.temporary) == 0 && len(t.timers) == 0) {
		return
	}
	for _, m := range t.temporary {
		t.markDirty(m.Stat)
	}
	t.temporary = nil
	t.temporaryIDs = nil
	t.timers = nil
	t.dirty = true
}

func (t *Table) TemporaryModifiers() []Modifier {
	if t == nil {
		return nil
	}
	return slices.Clone(t.temporary)
}

// Update advances expiry timers by dt and removes expired modifiers.
func (t *Table) Update(dt float64) {
	if t == nil {
		return
	}
	if len(t.timers) > 0 && dt > 0 {
		pending := t.timers[:0]
		var expired []uint64
		for _, tm := range t.timers {
			tm.remaining -= dt
			if tm.remaining <= 0 {
				expired = append(expired, tm.id)
				continue
			}
			pending = append(pending, tm)
		}
		t.timers = pending
		for _, id := range expired {
			if i := slices.Index(t.temporaryIDs, id); i >= 0 {
				slog.Debug("temporary modifier expired", "modifier", t.temporary[i].String())
				t.removeAt(i)
			}
		}
	}
	t.Refresh()
}

// Snapshot returns every final stat value.
func (t *Table) Snapshot() map[Type]float64 {
	out := make(map[Type]float64, typeCount)
	for _, stat := range Types() {
		out[stat] = t.GetStat(stat)
	}
	return out
}

// Recalculations reports how many batch recomputes have run.
func (t *Table) Recalculations() int {
	if t == nil {
		return 0
	}
	return t.recalculations
}

func (t *Table) markDirty(stat Type) {
	t.dirty = true
	t.StatChanged.Emit(stat)
}

func (t *Table) recalculate() {
	mods := make([]Modifier, 0, len(t.playstyleMods)+len(t.temporary))
	mods = append(mods, t.playstyleMods...)
	mods = append(mods, t.temporary...)
	slices.SortStableFunc(mods, func(a, b Modifier) int { return cmp.Compare(a.Priority, b.Priority) })

	var flat, percent [typeCount]float64
	var multiply [typeCount]float64
	for i := range multiply {
		multiply[i] = 1
	}
	for _, m := range mods {
		if !m.Stat.Valid() {
			continue
		}
		switch m.Kind {
		case Flat:
			flat[m.Stat] += m.Value
		case Percent:
			percent[m.Stat] += m.Value
		case Multiply:
			multiply[m.Stat] *= m.Value
		}
	}
	for i := range t.cache {
		t.cache[i] = ((t.base[i] + t.permanent[i] + flat[i]) * (1 + percent[i])) * multiply[i]
	}
	t.dirty = false
	t.recalculations++
	t.Recalculated.Emit(t)
}

// Component-facing accessors.

func (t *Table) MaxHealth() float64            { return t.GetStat(MaxHealth) }
func (t *Table) Defense() float64              { return t.GetStat(Defense) }
func (t *Table) GuardDamageReduction() float64 { return t.GetStat(GuardDamageReduction) }
func (t *Table) HealEfficiency() float64       { return t.GetStat(HealEfficiency) }
func (t *Table) PerfectGuardWindow() float64   { return t.GetStat(PerfectGuardWindow) }
func (t *Table) PerfectDodgeWindow() float64   { return t.GetStat(PerfectDodgeWindow) }
