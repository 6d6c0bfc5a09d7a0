package main

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/groggy/arena"
	cue "github.com/milk9111/groggy/audio"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/input"
	"github.com/milk9111/groggy/prefabs"
)

type Game struct {
	frames int

	arena   *arena.Arena
	cfg     prefabs.ArenaSpec
	cam     camera
	watcher *prefabs.Watcher
	debug   *DebugUI

	paused       bool
	physicsDebug bool

	ghosts     map[ecs.Entity]float32
	ghostBuild int
}

func NewGame(specs arena.Specs, svc arena.Services) (*Game, error) {
	a, err := arena.New(specs, arena.Options{
		Store:  svc.Store,
		Sinks:  svc.Sinks(),
		Audio:  audio.NewContext(cue.SampleRate),
		Source: input.NewEbitenSource(),
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		arena:  a,
		cfg:    specs.Arena,
		cam:    newCamera(specs.Arena),
		ghosts: make(map[ecs.Entity]float32),
	}
	if specs.Arena.HotReload {
		w, err := prefabs.WatchDir()
		if err != nil {
			slog.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	g.debug = NewDebugUI(g)
	return g, nil
}

func (g *Game) Close() {
	g.arena.Player().Release()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.physicsDebug = !g.physicsDebug
	}
	g.applyReloads()

	if g.paused {
		g.debug.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.arena.Restart()
	}
	g.arena.Tick(1 / float64(ebiten.TPS()))
	return nil
}

// applyReloads drains pending file changes without blocking the frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.arena.Reload(change); err != nil {
				slog.Warn("reload failed", "file", change.Name, "err", err)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			slog.Warn("watcher error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawArena(screen)
	if g.physicsDebug {
		drawPhysicsDebug(screen, g.arena.World().PhysicsWorld(), g.cam)
	}
	g.drawHUD(screen)

	if g.paused {
		g.debug.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Width), float64(g.cfg.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
