package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUpgradeLevels(t *testing.T) {
	u := Upgrade{
		ID:     "vitality",
		Stat:   MaxHealth,
		Values: []float64{10, 20, 35},
		Costs:  []int{100, 200, 400},
	}

	cases := []struct {
		level     int
		wantValue float64
		wantCost  int
		wantTotal int
	}{
		{0, 0, 0, 0},
		{1, 10, 100, 100},
		{3, 35, 400, 700},
		{5, 35, 400, 1500},
		{6, 35, 0, 1500},
	}
	for _, c := range cases {
		assert.Equal(t, c.wantValue, u.ValueAt(c.level), "value at %d", c.level)
		assert.Equal(t, c.wantCost, u.CostFor(c.level), "cost for %d", c.level)
		assert.Equal(t, c.wantTotal, u.TotalCostTo(c.level), "total to %d", c.level)
	}
}

func TestUpgradeYAML(t *testing.T) {
	src := `
id: sharp_edge
name: Sharp Edge
category: offense
stat: attack_power
max_level: 3
values: [1, 2, 4]
costs: [50, 100, 200]
prerequisites: [vitality]
`
	var u Upgrade
	require.NoError(t, yaml.Unmarshal([]byte(src), &u))
	assert.Equal(t, Offense, u.Category)
	assert.Equal(t, AttackPower, u.Stat)
	assert.Equal(t, 3, u.Cap())
	assert.Equal(t, []string{"vitality"}, u.Prerequisites)
}
