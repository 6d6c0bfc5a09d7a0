// Package meta is the permanent progression kept between runs: currency
// earned from runs and the levels of purchased stat upgrades.
package meta

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/milk9111/groggy/component"
	"github.com/milk9111/groggy/stats"
)

var (
	ErrUnknownUpgrade = errors.New("meta: unknown upgrade")
	ErrMaxLevel       = errors.New("meta: upgrade at max level")
	ErrPrerequisite   = errors.New("meta: prerequisite not owned")
	ErrNotEnoughFunds = errors.New("meta: not enough currency")
)

// Purchase is the payload of Progression.UpgradePurchased.
type Purchase struct {
	ID    string
	Level int
}

type Progression struct {
	catalogue []stats.Upgrade
	byID      map[string]stats.Upgrade
	table     *stats.Table
	store     Store

	currency int
	levels   map[string]int

	CurrencyChanged  component.Signal[int]
	UpgradePurchased component.Signal[Purchase]
}

// NewProgression creates an empty progression over catalogue. Purchases are
// applied to table when it is non-nil and saved to store when it is non-nil.
func NewProgression(catalogue []stats.Upgrade, table *stats.Table, store Store) *Progression {
	p := &Progression{
		catalogue: slices.Clone(catalogue),
		byID:      make(map[string]stats.Upgrade, len(catalogue)),
		table:     table,
		store:     store,
		levels:    make(map[string]int),
	}
	for _, u := range catalogue {
		p.byID[u.ID] = u
	}
	return p
}

// Load replaces the in-memory state with the stored save. A missing save
// leaves defaults; a corrupt one resets to defaults and returns ErrChecksum.
// Upgrade ids no longer in the catalogue are dropped.
func (p *Progression) Load() error {
	if p.store == nil {
		return nil
	}
	s, err := p.store.Load()
	switch {
	case errors.Is(err, ErrNoSave):
		return nil
	case errors.Is(err, ErrChecksum):
		slog.Warn("meta save corrupt, resetting progression")
		p.currency = 0
		p.levels = make(map[string]int)
		return err
	case err != nil:
		return err
	}
	p.currency = max(s.Currency, 0)
	p.levels = make(map[string]int, len(s.Levels))
	for id, level := range s.Levels {
		u, ok := p.byID[id]
		if !ok {
			slog.Warn("meta save has unknown upgrade", "id", id)
			continue
		}
		if level > 0 {
			p.levels[id] = min(level, u.Cap())
		}
	}
	slog.Info("meta progression loaded", "currency", p.currency, "upgrades", len(p.levels))
	return nil
}

// Save writes the current state to the store.
func (p *Progression) Save() error {
	if p.store == nil {
		return nil
	}
	return p.store.Save(p.Snapshot())
}

func (p *Progression) Snapshot() Save {
	return Save{Currency: p.currency, Levels: maps.Clone(p.levels)}
}

func (p *Progression) Currency() int {
	return p.currency
}

func (p *Progression) AddCurrency(amount int) {
	if amount <= 0 {
		return
	}
	p.currency += amount
	slog.Debug("currency added", "amount", amount, "total", p.currency)
	p.CurrencyChanged.Emit(p.currency)
}

func (p *Progression) SpendCurrency(amount int) bool {
	if amount <= 0 || p.currency < amount {
		return false
	}
	p.currency -= amount
	p.CurrencyChanged.Emit(p.currency)
	return true
}

func (p *Progression) Level(id string) int {
	return p.levels[id]
}

func (p *Progression) Upgrade(id string) (stats.Upgrade, bool) {
	u, ok := p.byID[id]
	return u, ok
}

func (p *Progression) Catalogue() []stats.Upgrade {
	return slices.Clone(p.catalogue)
}

func (p *Progression) ByCategory(c stats.UpgradeCategory) []stats.Upgrade {
	var out []stats.Upgrade
	for _, u := range p.catalogue {
		if u.Category == c {
			out = append(out, u)
		}
	}
	return out
}

// check returns why id cannot be bought right now, or nil.
func (p *Progression) check(id string) (stats.Upgrade, int, error) {
	u, ok := p.byID[id]
	if !ok {
		return u, 0, fmt.Errorf("%w: %s", ErrUnknownUpgrade, id)
	}
	next := p.levels[id] + 1
	if next > u.Cap() {
		return u, 0, ErrMaxLevel
	}
	for _, pre := range u.Prerequisites {
		if p.levels[pre] <= 0 {
			return u, 0, fmt.Errorf("%w: %s needs %s", ErrPrerequisite, id, pre)
		}
	}
	if p.currency < u.CostFor(next) {
		return u, 0, ErrNotEnoughFunds
	}
	return u, next, nil
}

func (p *Progression) CanPurchase(id string) bool {
	_, _, err := p.check(id)
	return err == nil
}

// Purchase buys the next level of id, adds the level's increment to the stat
// table as a permanent bonus and saves.
func (p *Progression) Purchase(id string) error {
	u, next, err := p.check(id)
	if err != nil {
		return err
	}
	if !p.SpendCurrency(u.CostFor(next)) {
		return ErrNotEnoughFunds
	}
	p.levels[id] = next
	if p.table != nil {
		p.table.AddPermanentBonus(u.Stat, u.ValueAt(next)-u.ValueAt(next-1))
	}
	slog.Info("upgrade purchased", "id", id, "level", next)
	p.UpgradePurchased.Emit(Purchase{ID: id, Level: next})
	return p.Save()
}

// ApplyAll adds every owned upgrade to table. Call it once on a fresh table.
func (p *Progression) ApplyAll(table *stats.Table) {
	if table == nil {
		return
	}
	for _, u := range p.catalogue {
		if level := p.levels[u.ID]; level > 0 {
			table.AddPermanentBonus(u.Stat, u.ValueAt(level))
		}
	}
}

// Reset wipes currency and levels, clears the table's permanent bonuses and
// deletes the save.
func (p *Progression) Reset() error {
	p.currency = 0
	p.levels = make(map[string]int)
	if p.table != nil {
		p.table.ResetPermanentBonuses()
	}
	p.CurrencyChanged.Emit(0)
	slog.Info("meta progression reset")
	if p.store == nil {
		return nil
	}
	return p.store.Delete()
}
