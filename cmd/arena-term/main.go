// Command arena-term runs the combat arena in a terminal. It needs no GPU
// or audio device: cues are rendered but never played.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
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
	logPath := flag.String("log", "arena-term.log", "log file")
	debug := flag.Bool("debug", false, "log at debug level")
	playstyle := flag.String("playstyle", "", "playstyle of the first run (none, light, heavy, guard, scavenger)")
	flag.Parse()

	cfg, err := prefabs.LoadArenaSpec()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	level := cfg.LogLevel
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))

	if *playstyle != "" {
		p, err := stats.ParsePlaystyle(*playstyle)
		if err != nil {
			return err
		}
		cfg.Playstyle = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	specs, svc, err := arena.Bootstrap(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer svc.Close()

	keys := newKeySource(cfg.TPS)
	a, err := arena.New(specs, arena.Options{
		Store:  svc.Store,
		Sinks:  svc.Sinks(),
		Source: keys,
	})
	if err != nil {
		return err
	}
	defer func() { a.Player().Release() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return loop(screen, a, keys, cfg.TPS)
}

func loop(screen tcell.Screen, a *arena.Arena, keys *keySource, tps int) error {
	tps = max(tps, 1)
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	dt := 1 / float64(tps)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if keys.Key(ev) {
					continue
				}
				if quit := command(a, ev); quit {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			a.Tick(dt)
			draw(screen, a)
		}
	}
}

// command handles the keys outside the player's move set and reports
// whether to quit.
func command(a *arena.Arena, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch r := ev.Rune(); r {
	case 'q':
		return true
	case 'r':
		a.Restart()
	case 'm':
		a.Cues().SetMuted(!a.Cues().Muted())
	case '1', '2', '3', '4':
		styles := stats.Playstyles()
		if i := int(r - '1'); i < len(styles) {
			a.SelectPlaystyle(styles[i])
		}
	}
	return false
}
