package arena

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/groggy/boss"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/prefabs"
)

// Reload re-reads the spec behind a changed file and applies it to the live
// arena. arena.yaml and upgrades.yaml only take effect on restart.
func (a *Arena) Reload(change prefabs.Change) error {
	name := change.Name
	if change.Script {
		name = prefabs.BossFile
	}

	var err error
	switch name {
	case prefabs.PlayerFile:
		err = a.reloadPlayer()
	case prefabs.EnemyFile:
		err = a.reloadEnemy()
	case prefabs.BossFile:
		err = a.reloadBoss()
	case prefabs.PlaystylesFile:
		err = a.reloadPlaystyles()
	case prefabs.CombatFile:
		err = a.reloadCombat()
	case prefabs.CuesFile:
		err = a.reloadCues()
	case prefabs.ArenaFile, prefabs.UpgradesFile:
		slog.Info("spec changed, restart to apply", "file", change.Name)
		return nil
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("arena: reload %s: %w", change.Name, err)
	}

	slog.Info("spec reloaded", "file", change.Name)
	a.world.Events().Push(ecs.Event{Kind: ecs.EventSpecsReloaded, Time: a.world.Now(), Data: change.Name})
	return nil
}

func (a *Arena) reloadPlayer() error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	a.specs.Player = spec
	a.table.SetBases(spec.Stats)
	a.player.Configure(spec.Config)
	return nil
}

func (a *Arena) reloadEnemy() error {
	cfg, err := prefabs.LoadEnemySpec()
	if err != nil {
		return err
	}
	a.specs.Enemy = cfg
	for _, c := range a.enemies {
		c.Configure(cfg)
	}
	return nil
}

// reloadBoss keeps the old selector when the new script fails to compile.
func (a *Arena) reloadBoss() error {
	cfg, err := prefabs.LoadBossSpec()
	if err != nil {
		return err
	}
	script, err := prefabs.BossScript(cfg)
	if err != nil {
		return err
	}
	a.specs.Boss = cfg
	a.specs.Script = script

	var sel boss.Selector
	if script != nil {
		sel = script
	}
	for _, c := range a.bosses {
		c.Configure(cfg)
		c.SetSelector(sel)
	}
	return nil
}

func (a *Arena) reloadPlaystyles() error {
	spec, err := prefabs.LoadPlaystylesSpec()
	if err != nil {
		return err
	}
	a.specs.Playstyles = spec
	a.table.SetPresets(spec.Presets)
	return nil
}

func (a *Arena) reloadCombat() error {
	spec, err := prefabs.LoadCombatSpec()
	if err != nil {
		return err
	}
	a.specs.Combat = spec
	a.player.Timing().SetWindows(spec.PerfectWindow, spec.NormalWindow)
	a.player.Execution().Configure(spec.Execution)
	for _, d := range a.dummies {
		d.Durability().Configure(spec.Dummy.Durability)
	}
	return nil
}

func (a *Arena) reloadCues() error {
	spec, err := prefabs.LoadCuesSpec()
	if err != nil {
		return err
	}
	a.specs.Cues = spec
	a.cues.Load(spec.Cues)
	return nil
}
