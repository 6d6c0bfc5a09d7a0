package boss

import (
	"fmt"

	"github.com/milk9111/groggy/component"
)

// Phase is one row of the boss phase table. A phase becomes active once
// health drops to its threshold; the first phase is active from the start.
type Phase struct {
	Name            string  `yaml:"name"`
	HealthThreshold float64 `yaml:"health_threshold"`
	AttackSpeed     float64 `yaml:"attack_speed"`
	MoveSpeed       float64 `yaml:"move_speed"`
	Attacks         []int   `yaml:"attacks"`
}

func (p Phase) attackSpeed() float64 {
	if p.AttackSpeed <= 0 {
		return 1
	}
	return p.AttackSpeed
}

func (p Phase) moveSpeed() float64 {
	if p.MoveSpeed <= 0 {
		return 1
	}
	return p.MoveSpeed
}

// HitWindow is a damage checkpoint inside an attack, in seconds of
// speed-adjusted attack time. Each window lands at most once per swing.
type HitWindow struct {
	Start       float64 `yaml:"start"`
	End         float64 `yaml:"end"`
	DamageScale float64 `yaml:"damage_scale"`
}

func (h HitWindow) scale() float64 {
	if h.DamageScale <= 0 {
		return 1
	}
	return h.DamageScale
}

// AttackSpec describes one boss attack.
type AttackSpec struct {
	Name             string      `yaml:"name"`
	Trigger          string      `yaml:"trigger"`
	Duration         float64     `yaml:"duration"`
	Hits             []HitWindow `yaml:"hits"`
	DurabilityDamage float64     `yaml:"durability_damage"`
	Unblockable      bool        `yaml:"unblockable"`
}

func (a AttackSpec) trigger(index int) string {
	if a.Trigger != "" {
		return a.Trigger
	}
	return fmt.Sprintf("Attack%dTrigger", index+1)
}

type Config struct {
	Name              string                     `yaml:"name"`
	MaxHealth         float64                    `yaml:"max_health"`
	DetectionRange    float64                    `yaml:"detection_range"`
	AttackRange       float64                    `yaml:"attack_range"`
	MoveSpeed         float64                    `yaml:"move_speed"`
	AttackDamage      float64                    `yaml:"attack_damage"`
	AttackCooldown    float64                    `yaml:"attack_cooldown"`
	PreferredDistance float64                    `yaml:"preferred_distance"`
	DistanceTolerance float64                    `yaml:"distance_tolerance"`
	IdleDwell         float64                    `yaml:"idle_dwell"`
	DestroyDelay      float64                    `yaml:"destroy_delay"`
	Width             float64                    `yaml:"width"`
	Height            float64                    `yaml:"height"`
	Script            string                     `yaml:"script"`
	Phases            []Phase                    `yaml:"phases"`
	Attacks           []AttackSpec               `yaml:"attacks"`
	Durability        component.DurabilityConfig `yaml:"durability"`
}

func DefaultConfig() Config {
	dur := component.DefaultDurabilityConfig()
	dur.Max = 200
	return Config{
		Name:              "Boss",
		MaxHealth:         500,
		DetectionRange:    10,
		AttackRange:       4,
		MoveSpeed:         3,
		AttackDamage:      20,
		AttackCooldown:    2,
		PreferredDistance: 3.5,
		DistanceTolerance: 0.5,
		IdleDwell:         0.5,
		DestroyDelay:      2,
		Width:             1.4,
		Height:            2.4,
		Phases: []Phase{
			{Name: "Phase 1", HealthThreshold: 0.7, AttackSpeed: 1.0, MoveSpeed: 1.0, Attacks: []int{0, 1}},
			{Name: "Phase 2", HealthThreshold: 0.3, AttackSpeed: 1.3, MoveSpeed: 1.2, Attacks: []int{0, 1, 2}},
		},
		Attacks: []AttackSpec{
			{Name: "slash", Duration: 0.9, Hits: []HitWindow{{Start: 0.25, End: 0.45}}},
			{Name: "thrust", Duration: 0.8, Hits: []HitWindow{{Start: 0.2, End: 0.4}}},
			{Name: "slam", Duration: 1.0, Hits: []HitWindow{{Start: 0.3, End: 0.5}}},
		},
		Durability: dur,
	}
}

// attack returns the spec for index, falling back to the first attack.
func (c Config) attack(index int) AttackSpec {
	if index >= 0 && index < len(c.Attacks) {
		return c.Attacks[index]
	}
	if len(c.Attacks) > 0 {
		return c.Attacks[0]
	}
	return AttackSpec{Duration: 0.9, Hits: []HitWindow{{Start: 0.25, End: 0.45}}}
}

// nextPhase returns the first phase after current whose threshold health has
// reached, or current when none has. Phases never regress.
func nextPhase(phases []Phase, current int, healthPercent float64) int {
	for i := current + 1; i < len(phases); i++ {
		if healthPercent <= phases[i].HealthThreshold {
			return i
		}
	}
	return current
}
