package stats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UpgradeCategory groups permanent upgrades in the hub.
type UpgradeCategory int

const (
	Survival UpgradeCategory = iota
	Offense
	Utility
	Fortune
)

var categoryNames = []string{"Survival", "Offense", "Utility", "Fortune"}

func (c UpgradeCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("UpgradeCategory(%d)", int(c))
	}
	return categoryNames[c]
}

func (c *UpgradeCategory) UnmarshalYAML(value *yaml.Node) error {
	key := normalizeName(value.Value)
	for i, name := range categoryNames {
		if normalizeName(name) == key {
			*c = UpgradeCategory(i)
			return nil
		}
	}
	return fmt.Errorf("stats: unknown upgrade category %q", value.Value)
}

// DefaultMaxLevel is the level cap of an upgrade that does not set one.
const DefaultMaxLevel = 5

// Upgrade is a permanently purchasable flat bonus to one stat. Values and
// Costs are indexed by level-1; levels past the table reuse the last entry.
type Upgrade struct {
	ID            string          `yaml:"id"`
	Name          string          `yaml:"name"`
	Description   string          `yaml:"description"`
	Category      UpgradeCategory `yaml:"category"`
	Stat          Type            `yaml:"stat"`
	MaxLevel      int             `yaml:"max_level"`
	Values        []float64       `yaml:"values"`
	Costs         []int           `yaml:"costs"`
	Prerequisites []string        `yaml:"prerequisites"`
}

func (u Upgrade) Cap() int {
	if u.MaxLevel <= 0 {
		return DefaultMaxLevel
	}
	return u.MaxLevel
}

// ValueAt returns the total bonus granted at level.
func (u Upgrade) ValueAt(level int) float64 {
	if level <= 0 || len(u.Values) == 0 {
		return 0
	}
	level = min(level, u.Cap())
	return u.Values[min(level, len(u.Values))-1]
}

// CostFor returns the price of buying level (from level-1).
func (u Upgrade) CostFor(level int) int {
	if level <= 0 || level > u.Cap() || len(u.Costs) == 0 {
		return 0
	}
	return u.Costs[min(level, len(u.Costs))-1]
}

// TotalCostTo sums the cost of every level from 1 through level.
func (u Upgrade) TotalCostTo(level int) int {
	total := 0
	for l := 1; l <= min(level, u.Cap()); l++ {
		total += u.CostFor(l)
	}
	return total
}
