package arena

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/input"
	"github.com/milk9111/groggy/meta"
	"github.com/milk9111/groggy/prefabs"
	"github.com/milk9111/groggy/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func testSpecs(t *testing.T) (Specs, string) {
	t.Helper()
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })

	specs, err := LoadSpecs(context.Background())
	require.NoError(t, err)
	specs.Arena.Muted = true
	return specs, dir
}

func newArena(t *testing.T, specs Specs, opts Options) *Arena {
	t.Helper()
	if opts.Store == nil {
		opts.Store = &meta.MemoryStore{}
	}
	a, err := New(specs, opts)
	require.NoError(t, err)
	return a
}

func tick(a *Arena, n int) {
	for range n {
		a.Tick(dt)
	}
}

func TestNewArena(t *testing.T) {
	specs, _ := testSpecs(t)
	a := newArena(t, specs, Options{})

	views := a.Views()
	require.Len(t, views, 4)
	kinds := make([]string, len(views))
	for i, v := range views {
		kinds[i] = v.Kind
	}
	assert.Equal(t, []string{prefabs.SpawnPlayer, prefabs.SpawnDummy, prefabs.SpawnEnemy, prefabs.SpawnBoss}, kinds)
	assert.False(t, views[0].HasDurability)
	assert.True(t, views[3].HasDurability)
	assert.Equal(t, 1.0, views[3].Health)

	s := a.Status()
	assert.True(t, s.RunActive)
	assert.Equal(t, "Phase 1", s.BossPhase)
	assert.Equal(t, 100.0, s.MaxHealth)
	assert.Equal(t, 1, a.Builds())
}

func TestPlayerWalks(t *testing.T) {
	specs, _ := testSpecs(t)
	frames, err := input.ParseScript("30 right")
	require.NoError(t, err)
	a := newArena(t, specs, Options{Source: input.NewScriptedSource(frames...)})

	start := a.Player().Position().X
	tick(a, 30)
	assert.Greater(t, a.Player().Position().X, start+1)
	assert.True(t, a.Player().Grounded())
}

func TestClearingArenaWinsRun(t *testing.T) {
	specs, _ := testSpecs(t)
	specs.Arena.Spawns = []prefabs.Spawn{{Kind: prefabs.SpawnPlayer, X: 0}, {Kind: prefabs.SpawnEnemy, X: 1.2}}
	specs.Arena.RestartTime = 0.5
	specs.Enemy.MaxHealth = 1
	store := &meta.MemoryStore{}

	a := newArena(t, specs, Options{
		Store:  store,
		Source: input.NewScriptedSource(input.Frame{Press: []input.Button{input.Attack}}),
	})

	tick(a, 20)
	last := a.LastRun()
	assert.True(t, last.Victory)
	assert.Equal(t, 1, last.EnemiesDefeated)
	assert.Equal(t, 25, last.Gold)
	assert.Equal(t, 25, a.Progression().Currency())
	assert.NotEmpty(t, store.Raw)
	assert.False(t, a.Runs().Active())

	tick(a, 40)
	assert.Equal(t, 2, a.Builds())
	assert.True(t, a.Runs().Active())
	assert.Len(t, a.Enemies(), 1)
	assert.True(t, a.Enemies()[0].IsAlive())
}

func TestDeathRestartsArena(t *testing.T) {
	specs, _ := testSpecs(t)
	specs.Arena.RestartTime = 0.1
	a := newArena(t, specs, Options{})

	first := a.Player()
	first.Health().TakeDamage(1e6, false, false, false)
	require.True(t, first.IsDead())
	assert.False(t, a.Runs().Active())
	assert.False(t, a.LastRun().Victory)

	tick(a, 10)
	assert.Equal(t, 2, a.Builds())
	assert.NotSame(t, first, a.Player())
	assert.True(t, a.Player().IsAlive())
	assert.True(t, a.Runs().Active())
}

func TestSelectPlaystyle(t *testing.T) {
	specs, _ := testSpecs(t)
	a := newArena(t, specs, Options{})

	a.SelectPlaystyle(stats.Heavy)
	assert.Equal(t, stats.Heavy, a.Table().Playstyle())
	assert.Equal(t, stats.Heavy, a.Runs().Playstyle())
	assert.Equal(t, 2, a.Builds())
	assert.InDelta(t, 130, a.Player().Health().Max(), 1e-9)
	assert.InDelta(t, 130, a.Player().Health().Current(), 1e-9)
	assert.False(t, a.LastRun().Victory)
}

func TestPurchaseRaisesPlayerHealth(t *testing.T) {
	specs, _ := testSpecs(t)
	store := &meta.MemoryStore{}
	a := newArena(t, specs, Options{Store: store})

	a.Progression().AddCurrency(100)
	require.NoError(t, a.Purchase("vitality"))
	assert.Equal(t, 110.0, a.Table().GetStat(stats.MaxHealth))
	assert.Equal(t, 110.0, a.Player().Health().Max())
	assert.Equal(t, 50, a.Progression().Currency())
	assert.NotEmpty(t, store.Raw)

	assert.ErrorIs(t, a.Purchase("nope"), meta.ErrUnknownUpgrade)
}

func TestReloadPlayerSpec(t *testing.T) {
	specs, dir := testSpecs(t)
	a := newArena(t, specs, Options{})

	path := filepath.Join(dir, prefabs.PlayerFile)
	require.NoError(t, os.WriteFile(path, []byte("stats:\n  attack_power: 30\n"), 0o644))
	require.NoError(t, a.Reload(prefabs.Change{Name: prefabs.PlayerFile}))
	assert.Equal(t, 30.0, a.Table().GetStat(stats.AttackPower))

	tick(a, 1)
	var kinds []ecs.EventKind
	for _, evt := range a.Recent() {
		kinds = append(kinds, evt.Kind)
	}
	assert.Contains(t, kinds, ecs.EventSpecsReloaded)

	require.NoError(t, os.WriteFile(path, []byte("stats: [broken\n"), 0o644))
	assert.ErrorContains(t, a.Reload(prefabs.Change{Name: prefabs.PlayerFile}), "arena: reload player.yaml")
	assert.Equal(t, 30.0, a.Table().GetStat(stats.AttackPower))

	assert.NoError(t, a.Reload(prefabs.Change{Name: "notes.yaml"}))
}

func TestReloadBossScript(t *testing.T) {
	specs, dir := testSpecs(t)
	a := newArena(t, specs, Options{})

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	script := filepath.Join(dir, "scripts", "boss_attacks.tengo")
	require.NoError(t, os.WriteFile(script, []byte("choose := func(ctx) { return ctx.available[0] }\n"), 0o644))
	require.NoError(t, a.Reload(prefabs.Change{Name: "boss_attacks.tengo", Script: true}))
	assert.NotNil(t, a.Specs().Script)

	require.NoError(t, os.WriteFile(script, []byte("choose := func(ctx) { return missing() }\n"), 0o644))
	assert.Error(t, a.Reload(prefabs.Change{Name: "boss_attacks.tengo", Script: true}))
}

func TestBootstrapWithoutDatabase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	_, _ = testSpecs(t)

	cfg := prefabs.DefaultArenaSpec()
	cfg.SaveApp = "groggy-test"
	specs, svc, err := Bootstrap(context.Background(), cfg)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, cfg, specs.Arena)
	assert.NotNil(t, svc.Store)
	assert.Nil(t, svc.Runlog)
	assert.Empty(t, svc.Sinks())
	assert.NotNil(t, specs.Script)
}
