package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurabilityGroggyAndExecute(t *testing.T) {
	d := NewDurability(DefaultDurabilityConfig())
	var events []string
	d.GroggyStart.Add(func(*Durability) { events = append(events, "start") })
	d.GroggyEnd.Add(func(*Durability) { events = append(events, "end") })
	d.Executed.Add(func(*Durability) { events = append(events, "executed") })

	d.TakeDurabilityDamage(100)
	require.True(t, d.IsGroggy())
	assert.True(t, d.CanBeExecuted())
	assert.Equal(t, 0.0, d.Current())

	d.OnExecute()
	assert.False(t, d.IsGroggy())
	assert.Equal(t, 100.0, d.Current())
	assert.Equal(t, []string{"start", "executed", "end"}, events)
}

func TestDurabilityRestoredBeforeEndSignals(t *testing.T) {
	tests := []struct {
		name   string
		finish func(d *Durability)
	}{
		{"execute", func(d *Durability) { d.OnExecute() }},
		{"groggy expiry", func(d *Durability) { d.Update(d.GroggyTimeRemaining() + 0.1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDurability(DefaultDurabilityConfig())
			seen := make(map[string]float64)
			d.Executed.Add(func(d *Durability) { seen["executed"] = d.Current() })
			d.GroggyEnd.Add(func(d *Durability) { seen["end"] = d.Current() })

			d.TakeDurabilityDamage(100)
			require.True(t, d.IsGroggy())
			tt.finish(d)

			require.Contains(t, seen, "end")
			for name, current := range seen {
				assert.Equal(t, 100.0, current, name)
			}
		})
	}
}

func TestDurabilityIgnoresDamageWhileGroggy(t *testing.T) {
	d := NewDurability(DefaultDurabilityConfig())
	d.TakeDurabilityDamage(150)
	require.True(t, d.IsGroggy())

	damaged := 0
	d.Damaged.Add(func(float64) { damaged++ })
	d.TakeDurabilityDamage(10)
	d.TakePerfectGuardDamage(10)
	d.SetDurability(50)

	assert.Equal(t, 0.0, d.Current())
	assert.Equal(t, 0, damaged)
}

func TestDurabilityGroggyExpires(t *testing.T) {
	cfg := DefaultDurabilityConfig()
	d := NewDurability(cfg)
	d.TakeDurabilityDamage(cfg.Max)

	for i := 0; i < 49; i++ {
		d.Update(0.1)
	}
	require.True(t, d.IsGroggy())
	assert.InDelta(t, 0.1, d.GroggyTimeRemaining(), 1e-6)

	d.Update(0.2)
	assert.False(t, d.IsGroggy())
	assert.Equal(t, cfg.Max, d.Current())
	assert.Equal(t, 0.0, d.GroggyTimeRemaining())
}

func TestDurabilityRecovery(t *testing.T) {
	cases := []struct {
		name    string
		auto    bool
		elapsed float64
		want    float64
	}{
		{"before_delay", true, 2.5, 60},
		{"after_delay", true, 4, 75},
		{"capped_at_max", true, 20, 100},
		{"auto_recover_off", false, 20, 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultDurabilityConfig()
			cfg.AutoRecover = c.auto
			d := NewDurability(cfg)
			d.TakeDurabilityDamage(40)

			steps := int(c.elapsed / 0.5)
			for i := 0; i < steps; i++ {
				d.Update(0.5)
			}
			assert.InDelta(t, c.want, d.Current(), 1e-6)
		})
	}
}

func TestDurabilityPerfectGuardDamage(t *testing.T) {
	d := NewDurability(DefaultDurabilityConfig())
	d.TakePerfectGuardDamage(10)
	assert.Equal(t, 80.0, d.Current())

	d.TakePerfectGuardDamageScaled(10, 3)
	assert.Equal(t, 50.0, d.Current())
}

func TestDurabilityFullRestoreEndsGroggy(t *testing.T) {
	d := NewDurability(DefaultDurabilityConfig())
	ended := false
	d.GroggyEnd.Add(func(*Durability) { ended = true })

	d.TakeDurabilityDamage(100)
	d.FullRestore()

	assert.True(t, ended)
	assert.False(t, d.IsGroggy())
	assert.Equal(t, 100.0, d.Current())
}
