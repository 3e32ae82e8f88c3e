package cortical

import (
	"fmt"
	"math"

	"github.com/haberdashPI/ShammaModel/axarr"
	"github.com/haberdashPI/ShammaModel/units"
)

// classify picks the response regime for a channel magnitude against the
// axis bounds: at or below the low bound is low-pass, at or above the high
// bound is high-pass, in between is band-pass. Bounds of (-Inf, +Inf) leave
// every channel band-pass.
func classify(mag float64, b axarr.Bounds) FilterKind {
	switch {
	case mag <= b.Low:
		return KindLow
	case mag >= b.High:
		return KindHigh
	default:
		return KindBand
	}
}

// rateFilters builds one transfer function per rate channel, in spec order.
// padTime is the padded FFT length along the time axis; each response covers
// all padTime bins. Channels are classified by |rate| against the bounds.
func rateFilters(padTime int, spec FilterSpec, b axarr.Bounds, dt units.Duration, conjugate bool) ([][]complex128, error) {
	nt := padTime >> 1
	out := make([][]complex128, 0, len(spec.Values))
	for _, r := range spec.Values {
		kind := classify(math.Abs(r), b)
		h, err := rateFilter(r, nt, dt.Seconds(), kind, conjugate)
		if err != nil {
			return nil, fmt.Errorf("rate %v Hz: %w", r, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// scaleFilters builds one transfer function per scale channel, in spec
// order. padFreq is the padded FFT length along the frequency axis; each
// response covers the lower padFreq/2 bins. Channels are classified by their
// raw magnitude against the bounds.
func scaleFilters(padFreq int, spec FilterSpec, b axarr.Bounds, samplesPerOctave float64) ([][]float64, error) {
	nf := padFreq >> 1
	out := make([][]float64, 0, len(spec.Values))
	for _, s := range spec.Values {
		kind := classify(s, b)
		h, err := scaleFilter(s, nf, samplesPerOctave, kind)
		if err != nil {
			return nil, fmt.Errorf("scale %v cyc/oct: %w", s, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// timeStep returns the sample spacing of a uniformly ticked time axis.
func timeStep(ax axarr.Axis) (units.Duration, error) {
	if len(ax.Ticks) < 2 {
		return 0, fmt.Errorf("%w: time axis %q needs at least 2 ticks", ErrMissingAxis, ax.Name)
	}
	return units.S(ax.Ticks[1] - ax.Ticks[0]), nil
}

// freqResolution returns the number of ticks per octave of a log-spaced
// frequency axis.
func freqResolution(ax axarr.Axis) (float64, error) {
	if len(ax.Ticks) < 2 {
		return 0, fmt.Errorf("%w: frequency axis %q needs at least 2 ticks", ErrMissingAxis, ax.Name)
	}
	if ax.Ticks[0] <= 0 || ax.Ticks[1] <= ax.Ticks[0] {
		return 0, fmt.Errorf("%w: frequency axis %q is not log-spaced increasing", ErrBadValue, ax.Name)
	}
	return 1 / math.Log2(ax.Ticks[1]/ax.Ticks[0]), nil
}

// channelBounds resolves the classification thresholds for regenerating a
// bank during inversion: the bounds recorded on the decomposed axis if
// present, otherwise the bounds derived from the spec itself.
func channelBounds(ax axarr.Axis, spec FilterSpec) axarr.Bounds {
	if ax.Bounds != nil {
		return *ax.Bounds
	}
	return spec.bounds()
}
