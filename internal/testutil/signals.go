package testutil

import (
	"math"
	"math/rand"
)

// TimeTicks returns n uniformly spaced time tick values starting at zero
// with the given step in seconds.
func TimeTicks(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// LogFreqTicks returns n log-spaced frequency tick values in Hz, starting at
// base with perOctave ticks per octave.
func LogFreqTicks(n int, base, perOctave float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base * math.Pow(2, float64(i)/perOctave)
	}
	return out
}

// Ripple synthesizes a moving-ripple spectrogram: a non-negative surface
// whose intensity drifts at rateHz along time and ripples at cycOct along
// the log-frequency axis. times are in seconds; freqs in Hz. The result is
// row-major [time][freq] with values in [1-depth, 1+depth].
func Ripple(times, freqs []float64, rateHz, cycOct, depth float64) []float64 {
	out := make([]float64, len(times)*len(freqs))
	f0 := freqs[0]
	for ti, t := range times {
		for fi, f := range freqs {
			oct := math.Log2(f / f0)
			phase := 2 * math.Pi * (rateHz*t + cycOct*oct)
			out[ti*len(freqs)+fi] = 1 + depth*math.Cos(phase)
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}
