package stats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type identifies a player stat.
type Type int

const (
	MaxHealth Type = iota
	AttackPower
	Defense
	AttackSpeed
	MoveSpeed
	SprintMultiplier
	DodgeDistance
	DodgeCooldown
	GuardDamageReduction
	PerfectGuardWindow
	PerfectDodgeWindow
	InvincibilityDuration
	DurabilityDamage
	ExecutionDamage
	SpecialResourceMax
	SpecialResourceGain
	SpecialAttackPower
	ItemDropRate
	GoldGain
	HealEfficiency
	ShopDiscount

	typeCount
)

var typeNames = [typeCount]string{
	"MaxHealth",
	"AttackPower",
	"Defense",
	"AttackSpeed",
	"MoveSpeed",
	"SprintMultiplier",
	"DodgeDistance",
	"DodgeCooldown",
	"GuardDamageReduction",
	"PerfectGuardWindow",
	"PerfectDodgeWindow",
	"InvincibilityDuration",
	"DurabilityDamage",
	"ExecutionDamage",
	"SpecialResourceMax",
	"SpecialResourceGain",
	"SpecialAttackPower",
	"ItemDropRate",
	"GoldGain",
	"HealEfficiency",
	"ShopDiscount",
}

// Types returns every stat type in declaration order.
func Types() []Type {
	out := make([]Type, typeCount)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType accepts the canonical name in any case, with or without
// underscores ("MoveSpeed", "move_speed").
func ParseType(s string) (Type, error) {
	key := normalizeName(s)
	for i, name := range typeNames {
		if normalizeName(name) == key {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("stats: unknown stat %q", s)
}

func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// DefaultBases returns the base value of every stat before modifiers.
func DefaultBases() map[Type]float64 {
	return map[Type]float64{
		MaxHealth:             100,
		AttackPower:           10,
		Defense:               0,
		AttackSpeed:           1,
		MoveSpeed:             5,
		SprintMultiplier:      1.5,
		DodgeDistance:         3,
		DodgeCooldown:         0,
		GuardDamageReduction:  0.5,
		PerfectGuardWindow:    0.2,
		PerfectDodgeWindow:    0.15,
		InvincibilityDuration: 0.15,
		DurabilityDamage:      1,
		ExecutionDamage:       1,
		SpecialResourceMax:    100,
		SpecialResourceGain:   1,
		SpecialAttackPower:    2,
		ItemDropRate:          1,
		GoldGain:              1,
		HealEfficiency:        1,
		ShopDiscount:          0,
	}
}
