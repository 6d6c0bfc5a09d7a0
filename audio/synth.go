package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

type oscillator struct {
	freq     float64
	phase    float64
	total    int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(t Tone, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:  t.Freq,
		total: rate.N(seconds(t.Duration)),
		wave:  t.Wave,
		rate:  rate,
		rng:   rand.New(rand.NewPCG(uint64(t.Freq*1000), uint64(t.Duration*1e6))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * o.phase)
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Saw:
			v = 2 * (o.phase - 0.5)
		case Noise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i] = [2]float64{v, v}
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps volume up over attack and down over release.
type envelope struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, t Tone, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  rate.N(seconds(t.Attack)),
		release: rate.N(seconds(t.Release)),
		total:   rate.N(seconds(t.Duration)),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

func toneStreamer(t Tone, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(t, rate), t, rate)
}

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Streamer builds the beep graph of a cue.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	seq := make([]beep.Streamer, 0, len(c.Tones))
	for _, t := range c.Tones {
		seq = append(seq, toneStreamer(t, rate))
	}
	parts := []beep.Streamer{beep.Seq(seq...)}
	for _, t := range c.Layers {
		parts = append(parts, volume(toneStreamer(t, rate), 0.5))
	}
	v := c.Volume
	if v == 0 {
		v = 1
	}
	return volume(beep.Mix(parts...), v)
}

// Samples is the rendered length of a cue: its tone sequence or its longest
// layer, whichever is longer.
func (c Cue) Samples(rate beep.SampleRate) int {
	seq := 0
	for _, t := range c.Tones {
		seq += rate.N(seconds(t.Duration))
	}
	for _, t := range c.Layers {
		seq = max(seq, rate.N(seconds(t.Duration)))
	}
	return seq
}

// Render synthesises a cue into 16-bit little-endian stereo PCM.
func Render(c Cue, rate beep.SampleRate) []byte {
	total := c.Samples(rate)
	if total == 0 {
		return nil
	}
	s := beep.Take(total, c.Streamer(rate))
	out := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, ch := range frame {
				v := int16(max(-1, min(1, ch)) * math.MaxInt16)
				out = binary.LittleEndian.AppendUint16(out, uint16(v))
			}
		}
		if !ok {
			break
		}
	}
	// beep.Mix pads with silence; keep the exact length.
	if len(out) < total*4 {
		out = append(out, make([]byte, total*4-len(out))...)
	}
	return out[:total*4]
}
