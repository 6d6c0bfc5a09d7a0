package audio

import (
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate matches the ebiten audio context the host creates.
const SampleRate = 44100

// CueBank renders every cue once and plays them on demand. It implements
// actor.Animator so it can sit next to a visual animator in a MultiAnimator.
type CueBank struct {
	ctx *audio.Context

	mu     sync.Mutex
	pcm    map[string][]byte
	muted  bool
	played map[string]int
}

// NewCueBank renders cues. A nil context renders without playing, which is
// what the terminal host and tests use.
func NewCueBank(ctx *audio.Context, cues map[string]Cue) *CueBank {
	b := &CueBank{
		ctx:    ctx,
		pcm:    make(map[string][]byte, len(cues)),
		played: make(map[string]int),
	}
	b.Load(cues)
	return b
}

// Load re-renders the bank from cues.
func (b *CueBank) Load(cues map[string]Cue) {
	pcm := make(map[string][]byte, len(cues))
	for name, cue := range cues {
		pcm[name] = Render(cue, beep.SampleRate(SampleRate))
	}
	b.mu.Lock()
	b.pcm = pcm
	b.mu.Unlock()
}

func (b *CueBank) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pcm[name]
	return ok
}

func (b *CueBank) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	b.mu.Unlock()
}

func (b *CueBank) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// Plays reports how often name was requested while unmuted.
func (b *CueBank) Plays(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.played[name]
}

// Play starts the cue for name. Unknown names are ignored.
func (b *CueBank) Play(name string) {
	b.mu.Lock()
	pcm, ok := b.pcm[name]
	muted := b.muted
	if ok && !muted {
		b.played[name]++
	}
	b.mu.Unlock()
	if !ok || muted || len(pcm) == 0 || b.ctx == nil {
		return
	}
	p := b.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	slog.Debug("cue played", "cue", name)
}

func (b *CueBank) SetTrigger(name string) {
	b.Play(name)
}

func (b *CueBank) SetFloat(string, float64) {}
