package stats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind is how a modifier combines into the final value.
type Kind int

const (
	Flat Kind = iota
	Percent
	Multiply
)

// Default priorities: every flat term is summed before percent terms, and
// multipliers apply last.
const (
	PriorityFlat     = 0
	PriorityPercent  = 100
	PriorityMultiply = 200
)

func (k Kind) String() string {
	switch k {
	case Flat:
		return "Flat"
	case Percent:
		return "Percent"
	case Multiply:
		return "Multiply"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) DefaultPriority() int {
	switch k {
	case Percent:
		return PriorityPercent
	case Multiply:
		return PriorityMultiply
	default:
		return PriorityFlat
	}
}

func ParseKind(s string) (Kind, error) {
	switch normalizeName(s) {
	case "flat", "":
		return Flat, nil
	case "percent", "percentadd":
		return Percent, nil
	case "multiply", "percentmult", "mult":
		return Multiply, nil
	}
	return 0, fmt.Errorf("stats: unknown modifier kind %q", s)
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseKind(value.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Modifier adjusts one stat. Modifiers compare by value: removing a modifier
// removes the first entry equal to it.
type Modifier struct {
	Stat     Type    `yaml:"stat"`
	Kind     Kind    `yaml:"kind"`
	Value    float64 `yaml:"value"`
	Priority int     `yaml:"priority"`
	Source   string  `yaml:"source,omitempty"`
}

// NewModifier builds a modifier with its kind's default priority.
func NewModifier(stat Type, kind Kind, value float64) Modifier {
	return Modifier{Stat: stat, Kind: kind, Value: value, Priority: kind.DefaultPriority()}
}

// WithSource tags a modifier with its origin (item id, buff name).
func (m Modifier) WithSource(source string) Modifier {
	m.Source = source
	return m
}

func (m Modifier) String() string {
	return fmt.Sprintf("%s %s %+g (p%d)", m.Stat, m.Kind, m.Value, m.Priority)
}

// UnmarshalYAML fills in the kind's default priority when none is given.
func (m *Modifier) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Stat     Type    `yaml:"stat"`
		Kind     Kind    `yaml:"kind"`
		Value    float64 `yaml:"value"`
		Priority *int    `yaml:"priority"`
		Source   string  `yaml:"source"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*m = NewModifier(raw.Stat, raw.Kind, raw.Value)
	if raw.Priority != nil {
		m.Priority = *raw.Priority
	}
	m.Source = raw.Source
	return nil
}
