package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/milk9111/groggy/boss"
	"github.com/milk9111/groggy/enemy"
	"github.com/milk9111/groggy/meta"
	"github.com/milk9111/groggy/prefabs"
	"github.com/milk9111/groggy/run"
	"github.com/milk9111/groggy/runlog"
	"golang.org/x/sync/errgroup"
)

// Specs is every tuning file the arena runs on.
type Specs struct {
	Player     prefabs.PlayerSpec
	Enemy      enemy.Config
	Boss       boss.Config
	Playstyles prefabs.PlaystylesSpec
	Upgrades   prefabs.UpgradesSpec
	Combat     prefabs.CombatSpec
	Arena      prefabs.ArenaSpec
	Cues       prefabs.CuesSpec
	Script     *boss.ScriptSelector
}

// LoadSpecs reads every spec concurrently. arena.yaml is read too; callers
// that already hold one can overwrite the field.
func LoadSpecs(ctx context.Context) (Specs, error) {
	var s Specs
	g, ctx := errgroup.WithContext(ctx)
	load := func(fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn()
		})
	}

	load(func() (err error) { s.Player, err = prefabs.LoadPlayerSpec(); return })
	load(func() (err error) { s.Enemy, err = prefabs.LoadEnemySpec(); return })
	load(func() (err error) { s.Playstyles, err = prefabs.LoadPlaystylesSpec(); return })
	load(func() (err error) { s.Upgrades, err = prefabs.LoadUpgradesSpec(); return })
	load(func() (err error) { s.Combat, err = prefabs.LoadCombatSpec(); return })
	load(func() (err error) { s.Arena, err = prefabs.LoadArenaSpec(); return })
	load(func() (err error) { s.Cues, err = prefabs.LoadCuesSpec(); return })
	load(func() error {
		cfg, err := prefabs.LoadBossSpec()
		if err != nil {
			return err
		}
		s.Boss = cfg
		s.Script, err = prefabs.BossScript(cfg)
		return err
	})

	if err := g.Wait(); err != nil {
		return Specs{}, err
	}
	return s, nil
}

// Services are the persistence collaborators a host opens at startup.
type Services struct {
	Store  meta.Store
	Runlog *runlog.Repository

	// history feeds Runlog from a background goroutine.
	history    *run.Writer
	background *errgroup.Group
}

// historyBuffer is how many finished runs may wait on the database.
const historyBuffer = 16

// startHistory puts Runlog behind a run.Writer so finishing a run never
// blocks on the database.
func (s *Services) startHistory() {
	if s.Runlog == nil {
		return
	}
	s.history = run.NewWriter(s.Runlog, historyBuffer, run.DefaultWriteTimeout)
	s.background = &errgroup.Group{}
	s.background.Go(func() error {
		return s.history.Run(context.Background())
	})
}

// Sinks returns the run sinks the services provide.
func (s Services) Sinks() []run.Sink {
	if s.history == nil {
		return nil
	}
	return []run.Sink{s.history}
}

// Close flushes pending run history before closing the database.
func (s Services) Close() {
	if s.history != nil {
		s.history.Close()
		_ = s.background.Wait()
	}
	if s.Runlog != nil {
		s.Runlog.Close()
	}
}

// Bootstrap loads specs while opening the save store and, when a DSN is
// configured, migrating and connecting the run history database. A failing
// store or database degrades to an in-memory store or no history.
func Bootstrap(ctx context.Context, cfg prefabs.ArenaSpec) (Specs, Services, error) {
	var (
		specs Specs
		svc   Services
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		specs, err = LoadSpecs(gctx)
		return err
	})
	g.Go(func() error {
		store, err := meta.OpenGdataStore(cfg.SaveApp)
		if err != nil {
			slog.Warn("save store unavailable, progression will not persist", "err", err)
			svc.Store = &meta.MemoryStore{}
			return nil
		}
		svc.Store = store
		return nil
	})
	if cfg.RunlogDSN != "" {
		g.Go(func() error {
			if err := runlog.Migrate(gctx, cfg.RunlogDSN); err != nil {
				slog.Warn("run history disabled", "err", err)
				return nil
			}
			repo, err := runlog.Open(gctx, cfg.RunlogDSN)
			if err != nil {
				slog.Warn("run history disabled", "err", err)
				return nil
			}
			svc.Runlog = repo
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		svc.Close()
		return Specs{}, Services{}, fmt.Errorf("arena: bootstrap: %w", err)
	}
	specs.Arena = cfg
	svc.startHistory()
	return specs, svc, nil
}
