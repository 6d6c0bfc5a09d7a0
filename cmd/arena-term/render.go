package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/groggy/arena"
	"github.com/milk9111/groggy/prefabs"
)

var (
	styleText  = tcell.StyleDefault
	styleFloor = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHelp  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	kindStyles = map[string]tcell.Style{
		prefabs.SpawnPlayer: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		prefabs.SpawnDummy:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
		prefabs.SpawnEnemy:  tcell.StyleDefault.Foreground(tcell.ColorRed),
		prefabs.SpawnBoss:   tcell.StyleDefault.Foreground(tcell.ColorPurple),
	}
	kindRunes = map[string]rune{
		prefabs.SpawnPlayer: '@',
		prefabs.SpawnDummy:  'D',
		prefabs.SpawnEnemy:  'e',
		prefabs.SpawnBoss:   'B',
	}
)

// grid maps arena units onto terminal cells. Cells are about twice as tall
// as they are wide.
type grid struct {
	colsPerUnit float64
	rowsPerUnit float64
	originX     int
	floorRow    int
}

func newGrid(width, height int, halfWidth float64) grid {
	cpu := float64(width) / (2 * halfWidth)
	return grid{
		colsPerUnit: cpu,
		rowsPerUnit: cpu / 2,
		originX:     width / 2,
		floorRow:    height - 3,
	}
}

func (g grid) cell(x, y float64) (int, int) {
	return g.originX + int(math.Round(x*g.colsPerUnit)), g.floorRow - int(math.Round(y*g.rowsPerUnit))
}

func draw(screen tcell.Screen, a *arena.Arena) {
	screen.Clear()
	width, height := screen.Size()
	g := newGrid(width, height, a.Specs().Arena.HalfWidth)

	for x := 0; x < width; x++ {
		screen.SetContent(x, g.floorRow+1, '=', nil, styleFloor)
	}
	for _, v := range a.Views() {
		drawView(screen, g, v)
	}

	s := a.Status()
	puts(screen, 0, 0, styleText, fmt.Sprintf("HP %.0f/%.0f  RES %.0f/%.0f  %s  gold %d  currency %d  defeated %d  %.1fs",
		s.Health, s.MaxHealth, s.Resource, s.ResourceMax, s.Playstyle, s.Gold, s.Currency, s.Defeated, s.Duration))
	line := "state " + s.PlayerState
	if s.BossPhase != "" {
		line += "  boss " + s.BossPhase
	}
	if s.LastTrigger != "" {
		line += "  cue " + s.LastTrigger
	}
	if !s.RunActive {
		line += fmt.Sprintf("  run over (%s), restart in %.1fs", a.LastRun(), s.RestartIn)
	}
	puts(screen, 0, 1, styleText, line)
	puts(screen, 0, height-1, styleHelp, "a/d move  space jump  j attack  k heavy  l special  s dodge  e guard  f execute  1-4 playstyle  r restart  m mute  q quit")
	screen.Show()
}

func drawView(screen tcell.Screen, g grid, v arena.View) {
	style := kindStyles[v.Kind]
	ch := kindRunes[v.Kind]
	switch {
	case v.Dead:
		ch = 'x'
	case v.Invincible:
		style = style.Dim(true)
	case v.Groggy:
		style = style.Reverse(true)
	case v.Guarding:
		style = style.Bold(true)
	}
	x0, y0 := g.cell(v.Pos.X-v.Width/2, v.Pos.Y+v.Height/2)
	x1, y1 := g.cell(v.Pos.X+v.Width/2, v.Pos.Y-v.Height/2)
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			screen.SetContent(x, y, ch, nil, style)
		}
	}
	facing := '>'
	if v.Facing < 0 {
		facing = '<'
	}
	label := fmt.Sprintf("%s%c %3.0f%%", v.Label, facing, v.Health*100)
	if v.HasDurability {
		label += fmt.Sprintf(" D%3.0f%%", v.Durability*100)
	}
	puts(screen, x0, y0-1, style, label)
}

func puts(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
