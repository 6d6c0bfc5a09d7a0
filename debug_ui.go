package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/groggy/stats"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// DebugUI is the pause panel: live stats, playstyle and upgrade controls,
// audio mute and a clipboard export of the last run.
type DebugUI struct {
	g  *Game
	ui *ebitenui.UI

	stats    *widget.Text
	meta     *widget.Text
	upgrades map[string]*widget.Text
	mute     *widget.Text

	clipboardOK bool
}

var (
	panelColor  = color.NRGBA{A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	textColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func NewDebugUI(g *Game) *DebugUI {
	d := &DebugUI{
		g:        g,
		upgrades: make(map[string]*widget.Text),
	}
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable", "err", err)
	} else {
		d.clipboardOK = true
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnImg := imageui.NewNineSliceColor(buttonColor)
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{Idle: textColor}),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}
	text := func(label string) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(label, &face, textColor))
	}
	row := func() *widget.Container {
		return widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)))
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.cfg.Width*2/3, g.cfg.Height*2/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(text("Paused"))

	d.stats = text("")
	panel.AddChild(d.stats)

	styles := row()
	styles.AddChild(text("Playstyle:"))
	for _, p := range stats.Playstyles() {
		styles.AddChild(button(p.String(), func() {
			g.arena.SelectPlaystyle(p)
			g.paused = false
		}))
	}
	panel.AddChild(styles)

	d.meta = text("")
	panel.AddChild(d.meta)

	shop := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewGridLayout(
		widget.GridLayoutOpts.Columns(2),
		widget.GridLayoutOpts.Spacing(12, 4),
	)))
	for _, u := range g.arena.Progression().Catalogue() {
		shop.AddChild(button("Buy "+u.Name, func() {
			if err := g.arena.Purchase(u.ID); err != nil {
				slog.Info("purchase refused", "upgrade", u.ID, "err", err)
			}
		}))
		d.upgrades[u.ID] = text("")
		shop.AddChild(d.upgrades[u.ID])
	}
	panel.AddChild(shop)

	actions := row()
	actions.AddChild(button("Copy run stats", d.copyRun))
	actions.AddChild(button("Mute", func() {
		bank := g.arena.Cues()
		bank.SetMuted(!bank.Muted())
	}))
	actions.AddChild(button("Restart", func() {
		g.arena.Restart()
		g.paused = false
	}))
	actions.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(actions)

	d.mute = text("")
	panel.AddChild(d.mute)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	d.ui = &ebitenui.UI{Container: root}
	d.refresh()
	return d
}

func (d *DebugUI) Update() {
	d.refresh()
	d.ui.Update()
}

func (d *DebugUI) Draw(screen *ebiten.Image) {
	d.ui.Draw(screen)
}

// refresh rewrites the dynamic labels from the arena.
func (d *DebugUI) refresh() {
	a := d.g.arena
	snap := a.Table().Snapshot()
	var b strings.Builder
	for i, t := range stats.Types() {
		if i > 0 && i%4 == 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-22s", fmt.Sprintf("%s %.2f", t, snap[t]))
	}
	d.stats.Label = b.String()

	p := a.Progression()
	d.meta.Label = fmt.Sprintf("Currency %d   Playstyle %s", p.Currency(), a.Playstyle())
	for _, u := range p.Catalogue() {
		label := fmt.Sprintf("%s %d/%d", u.Stat, p.Level(u.ID), u.Cap())
		if p.Level(u.ID) < u.Cap() {
			label += fmt.Sprintf("  cost %d", u.CostFor(p.Level(u.ID)+1))
		}
		d.upgrades[u.ID].Label = label
	}

	muted := "on"
	if a.Cues().Muted() {
		muted = "muted"
	}
	d.mute.Label = "Audio " + muted
}

func (d *DebugUI) copyRun() {
	last := d.g.arena.LastRun()
	if !d.clipboardOK {
		slog.Info("last run", "stats", last.String())
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(last.String()))
	slog.Info("run stats copied to clipboard")
}
