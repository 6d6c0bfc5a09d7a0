package meta

import (
	"testing"

	"github.com/milk9111/groggy/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogue() []stats.Upgrade {
	return []stats.Upgrade{
		{
			ID: "vitality", Name: "Vitality", Category: stats.Survival, Stat: stats.MaxHealth,
			MaxLevel: 3, Values: []float64{10, 25, 45}, Costs: []int{100, 200, 400},
		},
		{
			ID: "edge", Name: "Edge", Category: stats.Offense, Stat: stats.AttackPower,
			Values: []float64{2, 4}, Costs: []int{150},
			Prerequisites: []string{"vitality"},
		},
	}
}

func TestPurchaseAppliesIncrements(t *testing.T) {
	table := stats.NewTable()
	store := &MemoryStore{}
	p := NewProgression(catalogue(), table, store)
	var bought []Purchase
	p.UpgradePurchased.Add(func(b Purchase) { bought = append(bought, b) })

	p.AddCurrency(1000)
	require.NoError(t, p.Purchase("vitality"))
	require.NoError(t, p.Purchase("vitality"))
	assert.Equal(t, 2, p.Level("vitality"))
	assert.Equal(t, 700, p.Currency())
	assert.Equal(t, 25.0, table.PermanentBonus(stats.MaxHealth))
	assert.Equal(t, 125.0, table.GetStat(stats.MaxHealth))
	assert.Equal(t, []Purchase{{"vitality", 1}, {"vitality", 2}}, bought)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Save{Currency: 700, Levels: map[string]int{"vitality": 2}}, saved)
}

func TestPurchaseErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(p *Progression)
		id      string
		wantErr error
	}{
		{"unknown", func(*Progression) {}, "nope", ErrUnknownUpgrade},
		{"prerequisite", func(p *Progression) { p.AddCurrency(1000) }, "edge", ErrPrerequisite},
		{"funds", func(p *Progression) { p.AddCurrency(50) }, "vitality", ErrNotEnoughFunds},
		{"max level", func(p *Progression) {
			p.AddCurrency(10000)
			for i := 0; i < 3; i++ {
				require.NoError(t, p.Purchase("vitality"))
			}
		}, "vitality", ErrMaxLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgression(catalogue(), nil, nil)
			tt.setup(p)
			assert.False(t, p.CanPurchase(tt.id))
			assert.ErrorIs(t, p.Purchase(tt.id), tt.wantErr)
		})
	}
}

func TestLoadAndApplyAll(t *testing.T) {
	store := &MemoryStore{}
	require.NoError(t, store.Save(Save{Currency: 42, Levels: map[string]int{"vitality": 9, "edge": 1, "gone": 2}}))

	p := NewProgression(catalogue(), nil, store)
	require.NoError(t, p.Load())
	assert.Equal(t, 42, p.Currency())
	assert.Equal(t, 3, p.Level("vitality"), "clamped to the cap")
	assert.Equal(t, 1, p.Level("edge"))
	assert.Zero(t, p.Level("gone"))

	table := stats.NewTable()
	p.ApplyAll(table)
	assert.Equal(t, 45.0, table.PermanentBonus(stats.MaxHealth))
	assert.Equal(t, 2.0, table.PermanentBonus(stats.AttackPower))
}

func TestCorruptSaveResets(t *testing.T) {
	store := &MemoryStore{}
	require.NoError(t, store.Save(Save{Currency: 500}))
	store.Raw = []byte(string(store.Raw) + "\n# edited\n")
	env, err := Decode(store.Raw)
	require.NoError(t, err, "comments do not change the payload")
	assert.Equal(t, 500, env.Currency)

	store.Raw = []byte("payload: \"currency: 99999\\n\"\nchecksum: deadbeef\n")
	p := NewProgression(catalogue(), nil, store)
	p.AddCurrency(5)
	assert.ErrorIs(t, p.Load(), ErrChecksum)
	assert.Zero(t, p.Currency())
}

func TestResetClearsEverything(t *testing.T) {
	table := stats.NewTable()
	store := &MemoryStore{}
	p := NewProgression(catalogue(), table, store)
	p.AddCurrency(100)
	require.NoError(t, p.Purchase("vitality"))

	require.NoError(t, p.Reset())
	assert.Zero(t, p.Currency())
	assert.Zero(t, p.Level("vitality"))
	assert.Zero(t, table.PermanentBonus(stats.MaxHealth))
	assert.Nil(t, store.Raw)
	assert.NoError(t, p.Load(), "no save is not an error")
}

func TestByCategory(t *testing.T) {
	p := NewProgression(catalogue(), nil, nil)
	offense := p.ByCategory(stats.Offense)
	require.Len(t, offense, 1)
	assert.Equal(t, "edge", offense[0].ID)
	assert.Empty(t, p.ByCategory(stats.Fortune))
}
