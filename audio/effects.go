package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// waveforms map a phase in [0, 1) to an amplitude in [-1, 1]
var waveforms = [...]func(phase float64) float64{
	WaveSine: func(p float64) float64 { return math.Sin(2 * math.Pi * p) },
	WaveSaw:  func(p float64) float64 { return 2*p - 1 },
}

// voice is a dry tone: one waveform under a linear attack/sustain/release gain
type voice struct {
	wave  func(float64) float64
	step  float64 // phase advance per sample
	phase float64

	pos       int
	attack    int // samples of ramp-up
	releaseAt int // first sample of ramp-down
	end       int
}

// Voice renders t without reverb or volume; the stream lasts t.Duration()
func Voice(t Tone, rate beep.SampleRate) beep.Streamer {
	wave := waveforms[WaveSine]
	if t.Wave >= 0 && int(t.Wave) < len(waveforms) {
		wave = waveforms[t.Wave]
	}

	end := rate.N(t.Duration())
	attack := min(rate.N(t.Attack), end)
	release := min(rate.N(t.Release), end-attack)

	return &voice{
		wave:      wave,
		step:      t.Frequency / float64(rate),
		attack:    attack,
		releaseAt: end - release,
		end:       end,
	}
}

func (v *voice) gain() float64 {
	switch {
	case v.pos < v.attack:
		return float64(v.pos) / float64(v.attack)
	case v.pos >= v.releaseAt:
		return float64(v.end-v.pos) / float64(v.end-v.releaseAt)
	}
	return 1
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.end {
			return i, i > 0
		}
		x := v.wave(v.phase) * v.gain()
		samples[i] = [2]float64{x, x}

		v.phase += v.step
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// scale applies a linear volume; beep's Volume is logarithmic, and 0 maps to silent
func scale(s beep.Streamer, vol float64) beep.Streamer {
	v := &effects.Volume{Streamer: s, Base: 2, Silent: vol <= 0}
	if !v.Silent {
		v.Volume = math.Log2(vol)
	}
	return v
}

// Render builds the streamer for a tone at the given rate and master volume
// The stream ends on its own once the release (and any reverb tail) completes
func Render(t Tone, rate beep.SampleRate, master float64) beep.Streamer {
	s := Voice(t, rate)
	if t.Reverb != nil {
		s = NewReverb(s, *t.Reverb, rate)
	}
	return scale(s, t.Volume*master)
}

// Schroeder delay lengths in samples at 44.1kHz
var (
	combDelays    = [...]int{1557, 1617, 1491, 1422}
	allpassDelays = [...]int{225, 556}
)

const allpassGain = 0.5

type comb struct {
	buf      []float64
	idx      int
	feedback float64
}

func (c *comb) process(x float64) float64 {
	y := c.buf[c.idx]
	c.buf[c.idx] = x + y*c.feedback
	c.idx = (c.idx + 1) % len(c.buf)
	return y
}

type allpass struct {
	buf []float64
	idx int
}

func (a *allpass) process(x float64) float64 {
	d := a.buf[a.idx]
	y := d - allpassGain*x
	a.buf[a.idx] = x + allpassGain*d
	a.idx = (a.idx + 1) % len(a.buf)
	return y
}

// reverb mixes a Schroeder tail into a finite source
// The wet signal is shaped over Time by (1-p)^Decay, or p^Decay when reversed
type reverb struct {
	src     beep.Streamer
	srcDone bool
	combs   []comb
	allpass []allpass
	mix     float64
	decay   float64
	reverse bool

	tail     int // Wet envelope length in samples
	position int
	buf      [][2]float64
}

// NewReverb wraps s with a reverb tail; output lasts at least cfg.Time
func NewReverb(s beep.Streamer, cfg Reverb, rate beep.SampleRate) beep.Streamer {
	tail := rate.N(cfg.Time)
	if tail < 1 {
		tail = 1
	}
	scale := float64(rate) / 44100

	r := &reverb{
		src:     s,
		mix:     math.Max(0, math.Min(1, cfg.Mix)),
		decay:   cfg.Decay,
		reverse: cfg.Reverse,
		tail:    tail,
	}

	for _, d := range combDelays {
		n := max(1, int(float64(d)*scale))
		// Feedback giving a 60dB fall over the tail length
		fb := math.Pow(10, -3*float64(n)/float64(tail))
		r.combs = append(r.combs, comb{buf: make([]float64, n), feedback: fb})
	}
	for _, d := range allpassDelays {
		n := max(1, int(float64(d)*scale))
		r.allpass = append(r.allpass, allpass{buf: make([]float64, n)})
	}
	return r
}

func (r *reverb) wetGain() float64 {
	p := float64(r.position) / float64(r.tail)
	if p > 1 {
		p = 1
	}
	if r.reverse {
		return math.Pow(p, r.decay)
	}
	return math.Pow(1-p, r.decay)
}

func (r *reverb) Stream(samples [][2]float64) (n int, ok bool) {
	if cap(r.buf) < len(samples) {
		r.buf = make([][2]float64, len(samples))
	}
	dry := r.buf[:len(samples)]

	got := 0
	if !r.srcDone {
		got, ok = r.src.Stream(dry)
		// A short read ends the source; padding it would stretch the tone
		if !ok || got < len(dry) {
			r.srcDone = true
		}
	}
	for i := got; i < len(dry); i++ {
		dry[i] = [2]float64{}
	}

	for i := range samples {
		if r.srcDone && i >= got && r.position >= r.tail {
			return i, i > 0
		}

		in := (dry[i][0] + dry[i][1]) / 2
		var wet float64
		for c := range r.combs {
			wet += r.combs[c].process(in)
		}
		wet /= float64(len(r.combs))
		for a := range r.allpass {
			wet = r.allpass[a].process(wet)
		}
		wet *= r.wetGain()

		samples[i][0] = dry[i][0]*(1-r.mix) + wet*r.mix
		samples[i][1] = dry[i][1]*(1-r.mix) + wet*r.mix
		r.position++
	}
	return len(samples), true
}

func (r *reverb) Err() error { return r.src.Err() }
