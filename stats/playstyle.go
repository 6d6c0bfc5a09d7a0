package stats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Playstyle is the build preset chosen once per run.
type Playstyle int

const (
	PlaystyleNone Playstyle = iota
	Light
	Heavy
	Guard
	Scavenger
)

var playstyleNames = map[Playstyle]string{
	PlaystyleNone: "None",
	Light:         "Light",
	Heavy:         "Heavy",
	Guard:         "Guard",
	Scavenger:     "Scavenger",
}

// Playstyles lists the selectable presets.
func Playstyles() []Playstyle {
	return []Playstyle{Light, Heavy, Guard, Scavenger}
}

func (p Playstyle) String() string {
	if name, ok := playstyleNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Playstyle(%d)", int(p))
}

func ParsePlaystyle(s string) (Playstyle, error) {
	key := normalizeName(s)
	for p, name := range playstyleNames {
		if normalizeName(name) == key {
			return p, nil
		}
	}
	return PlaystyleNone, fmt.Errorf("stats: unknown playstyle %q", s)
}

func (p *Playstyle) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParsePlaystyle(value.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Playstyle) MarshalYAML() (any, error) {
	return p.String(), nil
}

// DefaultPresets returns the built-in modifier table of every playstyle.
func DefaultPresets() map[Playstyle][]Modifier {
	pct := func(stat Type, v float64) Modifier { return NewModifier(stat, Percent, v) }
	return map[Playstyle][]Modifier{
		Light: {
			pct(AttackPower, -0.2),
			pct(AttackSpeed, 0.5),
			pct(MoveSpeed, 0.3),
			pct(Defense, -0.3),
			pct(DodgeDistance, 0.5),
			pct(PerfectDodgeWindow, 0.3),
			pct(SpecialResourceGain, 1.0),
			pct(SpecialAttackPower, 1.0),
		},
		Heavy: {
			pct(AttackPower, 0.5),
			pct(AttackSpeed, -0.3),
			pct(MoveSpeed, -0.2),
			pct(Defense, 0.5),
			pct(MaxHealth, 0.3),
			pct(GuardDamageReduction, 0.2),
			pct(DodgeDistance, -0.3),
		},
		Guard: {
			pct(PerfectGuardWindow, 0.5),
			pct(GuardDamageReduction, 0.3),
			pct(DurabilityDamage, 1.0),
			pct(Defense, 0.2),
			pct(AttackPower, -0.1),
		},
		Scavenger: {
			pct(ItemDropRate, 0.5),
			pct(GoldGain, 0.3),
			NewModifier(ShopDiscount, Flat, 0.15),
			pct(HealEfficiency, 0.2),
			pct(MaxHealth, -0.2),
			pct(AttackPower, -0.2),
		},
	}
}
