// Package audio synthesises short combat cues and plays them through ebiten.
package audio

import (
	"fmt"
	"strings"

	"github.com/milk9111/groggy/actor"
	"gopkg.in/yaml.v3"
)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

var waveNames = []string{"sine", "square", "saw", "noise"}

func (w Wave) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return fmt.Sprintf("Wave(%d)", int(w))
	}
	return waveNames[w]
}

func (w *Wave) UnmarshalYAML(value *yaml.Node) error {
	for i, name := range waveNames {
		if strings.EqualFold(name, value.Value) {
			*w = Wave(i)
			return nil
		}
	}
	return fmt.Errorf("audio: unknown wave %q", value.Value)
}

// Tone is one enveloped note. Times are in seconds.
type Tone struct {
	Freq     float64 `yaml:"freq"`
	Duration float64 `yaml:"duration"`
	Attack   float64 `yaml:"attack"`
	Release  float64 `yaml:"release"`
	Wave     Wave    `yaml:"wave"`
}

// Cue is a sequence of tones played back to back. Layers are mixed over the
// sequence.
type Cue struct {
	Tones  []Tone  `yaml:"tones"`
	Layers []Tone  `yaml:"layers"`
	Volume float64 `yaml:"volume"`
}

// DefaultCues maps the animation triggers worth hearing to a cue.
func DefaultCues() map[string]Cue {
	return map[string]Cue{
		actor.TriggerHit: {
			Tones:  []Tone{{Freq: 140, Duration: 0.08, Attack: 0.005, Release: 0.05, Wave: Saw}},
			Volume: 0.5,
		},
		actor.TriggerParry: {
			Tones:  []Tone{{Freq: 1318.5, Duration: 0.18, Attack: 0.002, Release: 0.15, Wave: Sine}},
			Layers: []Tone{{Freq: 2637, Duration: 0.12, Attack: 0.002, Release: 0.1, Wave: Sine}},
			Volume: 0.6,
		},
		actor.TriggerDodge: {
			Tones:  []Tone{{Duration: 0.12, Attack: 0.02, Release: 0.08, Wave: Noise}},
			Volume: 0.25,
		},
		actor.TriggerExecution: {
			Tones: []Tone{
				{Freq: 220, Duration: 0.1, Attack: 0.005, Release: 0.04, Wave: Square},
				{Freq: 110, Duration: 0.3, Attack: 0.005, Release: 0.25, Wave: Square},
			},
			Volume: 0.5,
		},
		actor.TriggerGroggy: {
			Tones: []Tone{
				{Freq: 660, Duration: 0.08, Attack: 0.005, Release: 0.05, Wave: Sine},
				{Freq: 440, Duration: 0.08, Attack: 0.005, Release: 0.05, Wave: Sine},
				{Freq: 330, Duration: 0.16, Attack: 0.005, Release: 0.12, Wave: Sine},
			},
			Volume: 0.5,
		},
		actor.TriggerDeath: {
			Tones:  []Tone{{Freq: 90, Duration: 0.5, Attack: 0.01, Release: 0.4, Wave: Saw}},
			Volume: 0.5,
		},
	}
}
