package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/groggy/arena"
	"github.com/milk9111/groggy/prefabs"
	"github.com/milk9111/groggy/stats"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	debug := flag.Bool("debug", false, "log at debug level")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	playstyle := flag.String("playstyle", "", "playstyle of the first run (none, light, heavy, guard, scavenger)")
	mute := flag.Bool("mute", false, "disable combat cues")
	flag.Parse()

	cfg, err := prefabs.LoadArenaSpec()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *playstyle != "" {
		p, err := stats.ParsePlaystyle(*playstyle)
		if err != nil {
			return err
		}
		cfg.Playstyle = p
	}
	if *mute {
		cfg.Muted = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	specs, svc, err := arena.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(specs, svc)
	if err != nil {
		return err
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
