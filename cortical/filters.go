package cortical

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/haberdashPI/ShammaModel/internal/fftx"
)

// ErrUnknownKind reports a filter kind outside {low, band, high}.
var ErrUnknownKind = errors.New("cortical: unrecognized filter kind")

// FilterKind classifies a channel's response regime: whether the response
// saturates below its tuning magnitude, stays localized around it, or
// saturates above it.
type FilterKind int

const (
	KindLow FilterKind = iota
	KindBand
	KindHigh
)

// String returns the kind name.
func (k FilterKind) String() string {
	switch k {
	case KindLow:
		return "low"
	case KindBand:
		return "band"
	case KindHigh:
		return "high"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// askind reshapes the first length bins of a magnitude response for the
// given regime. Band-pass responses pass through unchanged. Low-pass sets
// the bins below the peak to a flat unit shelf; high-pass sets the bins
// above it. Unless skipNorm is set, the result is rescaled so its sum equals
// the pre-modification sum, preserving total filter energy across the
// regime change.
func askind(h []float64, length, peak int, kind FilterKind, skipNorm bool) ([]float64, error) {
	switch kind {
	case KindBand:
		return h, nil
	case KindLow, KindHigh:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	oldSum := floats.Sum(h[:length])
	if kind == KindLow {
		for i := 0; i < peak; i++ {
			h[i] = 1
		}
	} else {
		for i := peak + 1; i < length; i++ {
			h[i] = 1
		}
	}
	if !skipNorm {
		newSum := floats.Sum(h[:length])
		if newSum != 0 {
			floats.Scale(oldSum/newSum, h[:length])
		}
	}
	return h, nil
}

// rateFilter builds the complex transfer function for one temporal
// modulation channel. length is half the padded FFT length along the time
// axis; dt is the spectrogram's time step in seconds. The returned response
// covers all 2*length padded bins.
//
// The time-domain seed is a gammatone-like kernel h(t) = sin(2*pi*t) * t^2 *
// exp(-3.5 t) on the dimensionless axis t = n*dt*|rate|, mean-subtracted to
// zero its DC term. A negative rate is realized as the conjugate-symmetric
// companion of the positive-rate response, occupying the mirrored half of
// the spectrum, not an independently derived shape.
func rateFilter(rate float64, length int, dt float64, kind FilterKind, conjugate bool) ([]complex128, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: rate filter length %d", ErrBadValue, length)
	}

	h := make([]float64, length)
	for n := range h {
		t := float64(n) * dt * math.Abs(rate)
		h[n] = math.Sin(2*math.Pi*t) * t * t * math.Exp(-3.5*t)
	}
	mean := floats.Sum(h) / float64(length)
	for n := range h {
		h[n] -= mean
	}

	// Zero-pad to double length and keep the first half of the spectrum.
	padded := make([]complex128, 2*length)
	for n, v := range h {
		padded[n] = complex(v, 0)
	}
	plan := fftx.NewPlan(2 * length)
	plan.Forward(padded, padded)

	re := make([]float64, length)
	im := make([]float64, length)
	for i, c := range padded[:length] {
		re[i] = real(c)
		im[i] = imag(c)
	}
	mag := make([]float64, length)
	vecmath.Magnitude(mag, re, im)
	phase := make([]float64, length)
	for i := range phase {
		phase[i] = math.Atan2(im[i], re[i])
	}

	peak := argmax(mag)
	if mag[peak] > 0 {
		floats.Scale(1/mag[peak], mag)
	}
	mag, err := askind(mag, length, peak, kind, false)
	if err != nil {
		return nil, err
	}

	H := make([]complex128, 2*length)
	for i := range mag {
		c := cmplx.Rect(mag[i], phase[i])
		if conjugate {
			c = cmplx.Conj(c)
		}
		H[i] = c
	}

	if rate < 0 {
		// Conjugate-reversed copy of bins [1:], moving the response into the
		// mirrored half of the spectrum.
		half := append([]complex128(nil), H...)
		n := 2 * length
		for k := 1; k < n; k++ {
			H[k] = cmplx.Conj(half[n-k])
		}
		// The Nyquist bin has no mirror partner; carry its neighbor's
		// magnitude.
		H[length] = complex(cmplx.Abs(H[length+1]), 0)
	}
	return H, nil
}

// scaleFilter builds the real transfer function for one spectral modulation
// channel. length is half the padded FFT length along the frequency axis;
// samplesPerOctave is the spectrogram's log-frequency resolution. The
// response H(f) = f^2 * exp(1 - f^2) peaks at f = 1, where f is the bin
// frequency normalized by the channel's tuning scale.
func scaleFilter(scale float64, length int, samplesPerOctave float64, kind FilterKind) ([]float64, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: scale filter length %d", ErrBadValue, length)
	}
	h := make([]float64, length)
	c := samplesPerOctave / (2 * math.Abs(scale))
	for k := range h {
		f := float64(k) / float64(length) * c
		f2 := f * f
		h[k] = f2 * math.Exp(1-f2)
	}
	return askind(h, length, argmax(h), kind, false)
}

func argmax(v []float64) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}
