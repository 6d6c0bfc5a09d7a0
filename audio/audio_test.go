package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/milk9111/groggy/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderLength(t *testing.T) {
	rate := beep.SampleRate(SampleRate)
	tests := []struct {
		name string
		cue  Cue
		want int
	}{
		{"single", Cue{Tones: []Tone{{Freq: 440, Duration: 0.1}}}, 4410},
		{"sequence", Cue{Tones: []Tone{{Freq: 440, Duration: 0.1}, {Freq: 220, Duration: 0.2}}}, 13230},
		{"long layer", Cue{Tones: []Tone{{Freq: 440, Duration: 0.1}}, Layers: []Tone{{Freq: 880, Duration: 0.3}}}, 13230},
		{"empty", Cue{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := Render(tt.cue, rate)
			assert.Len(t, pcm, tt.want*4)
		})
	}
}

func TestRenderIsAudible(t *testing.T) {
	pcm := Render(Cue{Tones: []Tone{{Freq: 440, Duration: 0.05, Wave: Square}}, Volume: 0.5}, beep.SampleRate(SampleRate))
	require.NotEmpty(t, pcm)
	nonZero := 0
	for _, b := range pcm {
		if b != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, len(pcm)/2)
}

func TestCueBankAsAnimator(t *testing.T) {
	bank := NewCueBank(nil, DefaultCues())
	var anim actor.Animator = actor.MultiAnimator{&actor.RecordingAnimator{}, bank}

	require.True(t, bank.Has(actor.TriggerParry))
	anim.SetTrigger(actor.TriggerParry)
	anim.SetTrigger("Unknown")
	assert.Equal(t, 1, bank.Plays(actor.TriggerParry))
	assert.Zero(t, bank.Plays("Unknown"))

	bank.SetMuted(true)
	anim.SetTrigger(actor.TriggerParry)
	assert.Equal(t, 1, bank.Plays(actor.TriggerParry))
}

func TestCueYAML(t *testing.T) {
	var cue Cue
	require.NoError(t, yaml.Unmarshal([]byte(`
tones:
  - {freq: 300, duration: 0.1, wave: square}
volume: 0.4
`), &cue))
	assert.Equal(t, Square, cue.Tones[0].Wave)
	assert.Equal(t, 0.4, cue.Volume)

	assert.Error(t, yaml.Unmarshal([]byte(`tones: [{wave: organ}]`), &cue))
}
