package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	max, defense, guard, heal float64
}

func (f *fakeStats) MaxHealth() float64            { return f.max }
func (f *fakeStats) Defense() float64              { return f.defense }
func (f *fakeStats) GuardDamageReduction() float64 { return f.guard }
func (f *fakeStats) HealEfficiency() float64       { return f.heal }

func TestHealthTakeDamageScenario(t *testing.T) {
	h := NewHealth(100)

	var damaged []float64
	var changes []HealthChange
	h.Damaged.Add(func(v float64) { damaged = append(damaged, v) })
	h.Changed.Add(func(c HealthChange) { changes = append(changes, c) })

	got := h.TakeDamage(30, true, false, false)

	assert.Equal(t, 30.0, got)
	assert.Equal(t, 70.0, h.Current())
	assert.Equal(t, []float64{30}, damaged)
	assert.Equal(t, []HealthChange{{Current: 70, Max: 100}}, changes)
	assert.False(t, h.IsDead())
}

func TestHealthDamageResolution(t *testing.T) {
	cases := []struct {
		name       string
		stats      *fakeStats
		damage     float64
		guardable  bool
		guarding   bool
		perfect    bool
		wantActual float64
	}{
		{"no_stats_plain", nil, 40, true, false, false, 40},
		{"defense_quarter", &fakeStats{max: 100, defense: 0.25, guard: 0.5, heal: 1}, 40, true, false, false, 30},
		{"defense_clamped", &fakeStats{max: 100, defense: 3, guard: 0.5, heal: 1}, 40, true, false, false, 0},
		{"negative_defense_ignored", &fakeStats{max: 100, defense: -0.5, guard: 0.5, heal: 1}, 40, true, false, false, 40},
		{"normal_guard", &fakeStats{max: 100, guard: 0.5, heal: 1}, 40, true, true, false, 20},
		{"perfect_guard", &fakeStats{max: 100, guard: 0.5, heal: 1}, 40, true, true, true, 0},
		{"unguardable_bypasses_guard", &fakeStats{max: 100, guard: 0.5, heal: 1}, 40, false, true, true, 40},
		{"guard_after_defense", &fakeStats{max: 100, defense: 0.5, guard: 0.5, heal: 1}, 40, true, true, false, 10},
		{"default_guard_reduction", nil, 40, true, true, false, 20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var h *Health
			if c.stats != nil {
				h = NewStatHealth(c.stats)
			} else {
				h = NewHealth(100)
			}
			got := h.TakeDamage(c.damage, c.guardable, c.guarding, c.perfect)
			assert.InDelta(t, c.wantActual, got, 1e-9)
			assert.LessOrEqual(t, got, c.damage)
			assert.InDelta(t, 100-c.wantActual, h.Current(), 1e-9)
		})
	}
}

func TestHealthDeathIsOneShot(t *testing.T) {
	h := NewHealth(50)
	deaths := 0
	h.Died.Add(func(*Health) { deaths++ })

	h.TakeDamage(80, true, false, false)
	require.True(t, h.IsDead())
	assert.Equal(t, 0.0, h.Current())

	assert.Equal(t, 0.0, h.TakeDamage(10, true, false, false))
	h.Heal(10)
	assert.Equal(t, 0.0, h.Current())
	assert.Equal(t, 1, deaths)
}

func TestHealthHealClampsAndScales(t *testing.T) {
	stats := &fakeStats{max: 100, guard: 0.5, heal: 1.5}
	h := NewStatHealth(stats)
	h.TakeDamage(50, true, false, false)

	var healed []float64
	h.Healed.Add(func(v float64) { healed = append(healed, v) })

	h.Heal(10)
	assert.Equal(t, 65.0, h.Current())
	h.Heal(100)
	assert.Equal(t, 100.0, h.Current())
	h.Heal(5)
	assert.Equal(t, []float64{15, 35}, healed)
}

func TestHealthReviveAndSetHealth(t *testing.T) {
	h := NewHealth(100)
	h.SetHealth(0)
	require.True(t, h.IsDead())

	h.Revive(0.5)
	assert.False(t, h.IsDead())
	assert.Equal(t, 50.0, h.Current())

	h.SetHealth(500)
	assert.Equal(t, 100.0, h.Current())

	h.SetHealth(0)
	h.Revive(0)
	assert.Equal(t, 100.0, h.Current())
}

func TestHealthSyncMaxFromStats(t *testing.T) {
	stats := &fakeStats{max: 100, heal: 1}
	h := NewStatHealth(stats)

	stats.max = 80
	h.SyncMaxFromStats()
	assert.Equal(t, 80.0, h.Max())
	assert.Equal(t, 80.0, h.Current())

	stats.max = 120
	h.SyncMaxFromStats()
	assert.Equal(t, 120.0, h.Max())
	assert.Equal(t, 80.0, h.Current())
}

func TestHealthSetBaseMaxHealth(t *testing.T) {
	h := NewHealth(100)
	h.TakeDamage(60, true, false, false)

	h.SetBaseMaxHealth(200, false)
	assert.Equal(t, 200.0, h.Max())
	assert.Equal(t, 40.0, h.Current())

	h.SetBaseMaxHealth(30, false)
	assert.Equal(t, 30.0, h.Current())

	h.SetBaseMaxHealth(300, true)
	assert.Equal(t, 300.0, h.Current())
}

func TestHealthNilSafe(t *testing.T) {
	var h *Health
	assert.Equal(t, 0.0, h.TakeDamage(10, true, false, false))
	assert.False(t, h.IsAlive())
	assert.Equal(t, 0.0, h.Percent())
	h.Heal(5)
	h.Revive(1)
}
