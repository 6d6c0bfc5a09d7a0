package arena

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groggy/actor"
	"github.com/milk9111/groggy/ecs"
	"github.com/milk9111/groggy/prefabs"
	"github.com/milk9111/groggy/stats"
)

// View is what a renderer needs to draw one actor.
type View struct {
	Entity        ecs.Entity
	Kind          string
	Label         string
	Pos           cp.Vector
	Width         float64
	Height        float64
	Facing        float64
	State         string
	Health        float64
	Durability    float64
	HasDurability bool
	Groggy        bool
	Dead          bool
	Guarding      bool
	Invincible    bool
}

// Views lists every live actor, player first.
func (a *Arena) Views() []View {
	out := make([]View, 0, 1+len(a.dummies)+len(a.enemies)+len(a.bosses))
	if v, ok := a.view(a.player.Core, prefabs.SpawnPlayer); ok {
		v.State = a.player.StateName()
		v.Guarding = a.player.IsGuarding()
		v.Invincible = a.player.IsInvincible()
		out = append(out, v)
	}
	for _, d := range a.dummies {
		if v, ok := a.view(d.Core, prefabs.SpawnDummy); ok {
			v.State = "idle"
			out = append(out, v)
		}
	}
	for _, c := range a.enemies {
		if v, ok := a.view(c.Core, prefabs.SpawnEnemy); ok {
			v.State = c.StateName()
			out = append(out, v)
		}
	}
	for _, c := range a.bosses {
		if v, ok := a.view(c.Core, prefabs.SpawnBoss); ok {
			v.State = c.StateName()
			out = append(out, v)
		}
	}
	return out
}

func (a *Arena) view(c *actor.Core, kind string) (View, bool) {
	if c == nil || !a.world.IsAlive(c.Entity()) {
		return View{}, false
	}
	body, ok := a.world.PhysicsWorld().Body(c.Entity())
	if !ok {
		return View{}, false
	}
	w, h := body.Size()
	d := c.Durability()
	return View{
		Entity:        c.Entity(),
		Kind:          kind,
		Label:         c.Label(),
		Pos:           body.Position(),
		Width:         w,
		Height:        h,
		Facing:        c.Facing(),
		Health:        c.Health().Percent(),
		Durability:    d.Percent(),
		HasDurability: d != nil,
		Groggy:        d.IsGroggy(),
		Dead:          c.IsDead(),
	}, true
}

// Status is the HUD line of the arena.
type Status struct {
	RunActive   bool
	Playstyle   stats.Playstyle
	Duration    float64
	Gold        int
	Currency    int
	Defeated    int
	Health      float64
	MaxHealth   float64
	Resource    float64
	ResourceMax float64
	PlayerState string
	BossPhase   string
	LastTrigger string
	RestartIn   float64
}

func (a *Arena) Status() Status {
	s := Status{
		RunActive:   a.runs.Active(),
		Playstyle:   a.playstyle,
		Duration:    a.runs.Duration(),
		Gold:        a.runs.Gold(),
		Currency:    a.progression.Currency(),
		Defeated:    a.runs.Statistics().EnemiesDefeated,
		Health:      a.player.Health().Current(),
		MaxHealth:   a.player.Health().Max(),
		Resource:    a.player.Resource().Current(),
		ResourceMax: a.player.Resource().Max(),
		PlayerState: a.player.StateName(),
		LastTrigger: a.LastTrigger(),
		RestartIn:   max(0, a.restartIn),
	}
	for _, b := range a.bosses {
		if !b.IsDead() {
			s.BossPhase = b.CurrentPhase().Name
			break
		}
	}
	return s
}
