package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/arena"
	"github.com/milk9111/groggy/common"
	"github.com/milk9111/groggy/prefabs"
)

const (
	barHeight = 5
	barGap    = 2
	// ghostRate is how fast the trailing health bar catches up per frame.
	ghostRate = 0.08
)

var (
	colorBackground = color.RGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}
	colorFloor      = color.RGBA{R: 0x3a, G: 0x3d, B: 0x47, A: 0xff}
	colorBarBack    = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	colorHealth     = color.RGBA{R: 0xd9, G: 0x3f, B: 0x3f, A: 0xff}
	colorGhost      = color.RGBA{R: 0xf2, G: 0xd0, B: 0x8a, A: 0xff}
	colorDurability = color.RGBA{R: 0xe8, G: 0xc5, B: 0x47, A: 0xff}
	colorGroggy     = color.RGBA{R: 0xb0, G: 0x7c, B: 0xf0, A: 0xff}
	colorDead       = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	colorGuard      = color.RGBA{R: 0x7f, G: 0xd4, B: 0xff, A: 0xff}
	colorInvincible = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x90}

	kindColors = map[string]color.RGBA{
		prefabs.SpawnPlayer: {R: 0x4f, G: 0xb4, B: 0x77, A: 0xff},
		prefabs.SpawnDummy:  {R: 0x8a, G: 0x7a, B: 0x5c, A: 0xff},
		prefabs.SpawnEnemy:  {R: 0xc8, G: 0x5a, B: 0x3c, A: 0xff},
		prefabs.SpawnBoss:   {R: 0x9c, G: 0x2f, B: 0x55, A: 0xff},
	}
)

// camera maps Y-up world units onto the screen with the floor at 3/4 height.
type camera struct {
	ppu     float64
	originX float64
	floorY  float64
}

func newCamera(cfg prefabs.ArenaSpec) camera {
	return camera{
		ppu:     cfg.PixelsPer,
		originX: float64(cfg.Width) / 2,
		floorY:  float64(cfg.Height) * 0.75,
	}
}

func (c camera) toScreen(v cp.Vector) (float64, float64) {
	return c.originX + v.X*c.ppu, c.floorY - v.Y*c.ppu
}

func (g *Game) drawArena(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	hw := g.arena.Specs().Arena.HalfWidth
	left, top := g.cam.toScreen(cp.Vector{X: -hw})
	right, _ := g.cam.toScreen(cp.Vector{X: hw})
	vector.FillRect(screen, float32(left), float32(top), float32(right-left), float32(g.cfg.Height)-float32(top), colorFloor, false)

	if g.ghostBuild != g.arena.Builds() {
		clear(g.ghosts)
		g.ghostBuild = g.arena.Builds()
	}
	for _, v := range g.arena.Views() {
		g.drawActor(screen, v)
	}
}

func (g *Game) drawActor(screen *ebiten.Image, v arena.View) {
	x, y := g.cam.toScreen(cp.Vector{X: v.Pos.X - v.Width/2, Y: v.Pos.Y + v.Height/2})
	w, h := float32(v.Width*g.cam.ppu), float32(v.Height*g.cam.ppu)
	left, top := float32(x), float32(y)

	fill := kindColors[v.Kind]
	switch {
	case v.Dead:
		fill = colorDead
	case v.Groggy:
		fill = colorGroggy
	}
	vector.FillRect(screen, left, top, w, h, fill, false)
	if v.Invincible {
		vector.FillRect(screen, left, top, w, h, colorInvincible, false)
	}
	if v.Guarding {
		vector.StrokeRect(screen, left-2, top-2, w+4, h+4, 2, colorGuard, false)
	}

	// Facing notch at eye height.
	notch := left + w - 4
	if v.Facing < 0 {
		notch = left
	}
	vector.FillRect(screen, notch, top+h/5, 4, 4, color.White, false)

	barY := top - barHeight - barGap
	health := float32(common.Clamp01(v.Health))
	ghost, ok := g.ghosts[v.Entity]
	if !ok || ghost < health {
		ghost = health
	}
	ghost = common.Lerp(ghost, health, ghostRate)
	g.ghosts[v.Entity] = ghost

	vector.FillRect(screen, left, barY, w, barHeight, colorBarBack, false)
	vector.FillRect(screen, left, barY, w*ghost, barHeight, colorGhost, false)
	vector.FillRect(screen, left, barY, w*health, barHeight, colorHealth, false)
	if v.HasDurability {
		barY -= barHeight + barGap
		vector.FillRect(screen, left, barY, w, barHeight, colorBarBack, false)
		vector.FillRect(screen, left, barY, w*float32(common.Clamp01(v.Durability)), barHeight, colorDurability, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s\n%s", v.Label, v.State), int(left), int(barY)-32)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.arena.Status()

	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  playstyle %s  time %.1fs\n", ebiten.ActualFPS(), s.Playstyle, s.Duration)
	fmt.Fprintf(&b, "HP %.0f/%.0f  special %.0f/%.0f  state %s\n", s.Health, s.MaxHealth, s.Resource, s.ResourceMax, s.PlayerState)
	fmt.Fprintf(&b, "gold %d  bank %d  defeated %d", s.Gold, s.Currency, s.Defeated)
	if s.BossPhase != "" {
		fmt.Fprintf(&b, "  boss %s", s.BossPhase)
	}
	if s.LastTrigger != "" {
		fmt.Fprintf(&b, "\nlast cue %s", s.LastTrigger)
	}
	if !s.RunActive {
		last := g.arena.LastRun()
		result := "defeat"
		if last.Victory {
			result = "victory"
		}
		fmt.Fprintf(&b, "\n%s, score %d. next run in %.1fs", result, last.Score(), s.RestartIn)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)

	help := "move A/D  jump Space  attack J  heavy K  special L  guard E  dodge Shift  execute F  restart R  panel Tab  shapes F3"
	ebitenutil.DebugPrintAt(screen, help, 10, g.cfg.Height-20)
}
