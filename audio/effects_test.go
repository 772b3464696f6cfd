package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/offwall/constants"
)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if a := abs(buf[j][0]); a > peak {
				peak = a
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	return total, peak
}

// TestVoiceWaveforms verifies both waveforms stay in range on identical channels
func TestVoiceWaveforms(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSaw} {
		v := Voice(Tone{Wave: wave, Frequency: 440, StopAfter: 100 * time.Millisecond}, rate)

		samples := make([][2]float64, 100)
		n, ok := v.Stream(samples)
		if !ok || n != 100 {
			t.Fatalf("%s: expected 100 samples ok, got %d %v", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Errorf("%s: sample %d out of range: %f", wave, i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Errorf("%s: sample %d: expected identical channels", wave, i)
			}
		}
	}
}

// TestVoiceSawRises verifies an unshaped sawtooth starts at -1 and climbs
func TestVoiceSawRises(t *testing.T) {
	rate := beep.SampleRate(48000)
	v := Voice(Tone{Wave: WaveSaw, Frequency: constants.HitToneFrequency, StopAfter: 50 * time.Millisecond}, rate)

	samples := make([][2]float64, 50)
	n, _ := v.Stream(samples)

	if samples[0][0] != -1 {
		t.Errorf("Expected saw to start at -1, got %f", samples[0][0])
	}
	for i := 1; i < n; i++ {
		if samples[i][0] <= samples[i-1][0] {
			t.Errorf("Expected rising saw at sample %d", i)
			break
		}
	}
}

// TestVoiceDuration verifies the stream ends at the tone's duration
func TestVoiceDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := Tone{Frequency: 440, StopAfter: 10 * time.Millisecond}
	want := rate.N(tone.Duration())

	v := Voice(tone, rate)
	samples := make([][2]float64, want*2)
	if n, _ := v.Stream(samples); n != want {
		t.Errorf("Expected %d samples, got %d", want, n)
	}
	if n, ok := v.Stream(samples); ok || n != 0 {
		t.Errorf("Expected finished stream, got n=%d ok=%v", n, ok)
	}
}

// TestVoiceEnvelope verifies the gain ramps up over the attack and down over the release
func TestVoiceEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	tone := Tone{Attack: 10 * time.Millisecond, StopAfter: 20 * time.Millisecond, Release: 10 * time.Millisecond}
	v := Voice(tone, rate).(*voice)

	tests := []struct {
		pos  int
		want float64
	}{
		{0, 0},
		{5, 0.5},
		{10, 1},
		{19, 1},
		{20, 1},
		{25, 0.5},
	}
	for _, tt := range tests {
		v.pos = tt.pos
		if got := v.gain(); got != tt.want {
			t.Errorf("pos %d: expected gain %f, got %f", tt.pos, tt.want, got)
		}
	}
}

// TestWallTonePitch verifies the hit tone climbs with score
func TestWallTonePitch(t *testing.T) {
	tests := []struct {
		score int
		freq  float64
	}{
		{0, 30},
		{1, 36},
		{10, 90},
	}

	for _, tt := range tests {
		tone := WallTone(tt.score)
		if tone.Frequency != tt.freq {
			t.Errorf("score %d: expected %.0fHz, got %.0fHz", tt.score, tt.freq, tone.Frequency)
		}
		if tone.Wave != WaveSaw {
			t.Errorf("score %d: expected sawtooth, got %s", tt.score, tone.Wave)
		}
		if tone.Reverb != nil {
			t.Errorf("score %d: wall tone should be dry", tt.score)
		}
	}
}

// TestToneDuration verifies the stop delay and release add up
func TestToneDuration(t *testing.T) {
	if got := WallTone(0).Duration(); got != 150*time.Millisecond {
		t.Errorf("Expected 150ms wall tone, got %v", got)
	}
	if got := GrabTone().Duration(); got != 550*time.Millisecond {
		t.Errorf("Expected 550ms grab tone, got %v", got)
	}

	// Attack longer than the stop delay still completes
	tone := Tone{Attack: 80 * time.Millisecond, StopAfter: 50 * time.Millisecond, Release: 20 * time.Millisecond}
	if got := tone.Duration(); got != 100*time.Millisecond {
		t.Errorf("Expected 100ms, got %v", got)
	}
}

// TestRenderEndsOnItsOwn verifies tones stop without a timer
func TestRenderEndsOnItsOwn(t *testing.T) {
	rate := beep.SampleRate(constants.AudioSampleRate)
	tone := WallTone(3)

	total, peak := drain(Render(tone, rate, 1))
	if total != rate.N(tone.Duration()) {
		t.Errorf("Expected %d samples, got %d", rate.N(tone.Duration()), total)
	}
	if peak == 0 {
		t.Error("Expected audible output")
	}
}

// TestRenderReverbTail verifies the reverb extends the grab tone to the tail length
func TestRenderReverbTail(t *testing.T) {
	rate := beep.SampleRate(constants.AudioSampleRate)
	tone := GrabTone()

	total, _ := drain(Render(tone, rate, 1))
	if total != rate.N(constants.GrabReverbTime) {
		t.Errorf("Expected %d samples with tail, got %d", rate.N(constants.GrabReverbTime), total)
	}
}

// TestReverbShortTail verifies a short tail never truncates the source
func TestReverbShortTail(t *testing.T) {
	rate := beep.SampleRate(44100)
	dur := 100 * time.Millisecond
	src := Voice(Tone{Frequency: 200, StopAfter: dur}, rate)

	rev := NewReverb(src, Reverb{Time: 10 * time.Millisecond, Decay: 1, Mix: 0.5}, rate)
	total, _ := drain(rev)
	if total != rate.N(dur) {
		t.Errorf("Expected %d samples, got %d", rate.N(dur), total)
	}
}

// TestReverbLengthAcrossBuffers verifies the output is the longer of source and tail
// whatever buffer size the mixer asks for
func TestReverbLengthAcrossBuffers(t *testing.T) {
	rate := beep.SampleRate(1000)
	tests := []struct {
		name      string
		source    time.Duration
		tail      time.Duration
		wantTotal int
	}{
		{"tail shorter", 100 * time.Millisecond, 10 * time.Millisecond, 100},
		{"tail longer", 100 * time.Millisecond, 250 * time.Millisecond, 250},
	}

	for _, tt := range tests {
		for _, size := range []int{1, 7, 64, 99, 512} {
			src := Voice(Tone{Frequency: 50, StopAfter: tt.source}, rate)
			rev := NewReverb(src, Reverb{Time: tt.tail, Decay: 1, Mix: 0.5}, rate)

			total := 0
			buf := make([][2]float64, size)
			for i := 0; i < 10000; i++ {
				n, ok := rev.Stream(buf)
				total += n
				if !ok {
					break
				}
			}
			if total != tt.wantTotal {
				t.Errorf("%s, buffer %d: expected %d samples, got %d", tt.name, size, tt.wantTotal, total)
			}
		}
	}
}

// TestReverbWetEnvelope verifies reversed tails swell and forward tails fade
func TestReverbWetEnvelope(t *testing.T) {
	rate := beep.SampleRate(44100)
	cfg := Reverb{Time: time.Second, Decay: 0.8, Mix: 0.5}

	fwd := NewReverb(Voice(Tone{Frequency: 1, StopAfter: time.Millisecond}, rate), cfg, rate).(*reverb)
	cfg.Reverse = true
	rev := NewReverb(Voice(Tone{Frequency: 1, StopAfter: time.Millisecond}, rate), cfg, rate).(*reverb)

	if fwd.wetGain() != 1 || rev.wetGain() != 0 {
		t.Errorf("At start: expected fwd=1 rev=0, got fwd=%f rev=%f", fwd.wetGain(), rev.wetGain())
	}

	fwd.position = fwd.tail
	rev.position = rev.tail
	if fwd.wetGain() != 0 || rev.wetGain() != 1 {
		t.Errorf("At end: expected fwd=0 rev=1, got fwd=%f rev=%f", fwd.wetGain(), rev.wetGain())
	}
}

// TestRenderMasterVolumeZero verifies a zero master silences output
func TestRenderMasterVolumeZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	total, peak := drain(Render(WallTone(0), rate, 0))
	if total == 0 {
		t.Error("Expected silent samples to still be produced")
	}
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

// TestWaveTypeString verifies wave names
func TestWaveTypeString(t *testing.T) {
	if WaveSaw.String() != "sawtooth" || WaveType(99).String() != "unknown" {
		t.Errorf("Unexpected names: %s %s", WaveSaw, WaveType(99))
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
