package cortical

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/haberdashPI/ShammaModel/axarr"
	"github.com/haberdashPI/ShammaModel/units"
)

// Errors returned by spec construction and the transform entry points.
var (
	ErrBadAxisName    = errors.New("cortical: axis name missing role keyword")
	ErrBadValue       = errors.New("cortical: invalid channel value")
	ErrEmptySpec      = errors.New("cortical: spec has no channels")
	ErrMissingAxis    = errors.New("cortical: input missing required axis")
	ErrAxisCollision  = errors.New("cortical: output axis already present on input")
	ErrPartialInverse = errors.New("cortical: filter count does not match channel axis")
	ErrBadNorm        = errors.New("cortical: norm outside [0, 1]")
)

// Param identifies which modulation dimension a FilterSpec decomposes.
type Param int

const (
	// ParamScale selects spectral modulation channels (cycles/octave)
	// filtered along the frequency axis.
	ParamScale Param = iota

	// ParamRate selects temporal modulation channels (Hz, signed) filtered
	// along the time axis.
	ParamRate
)

// String returns the parameter name.
func (p Param) String() string {
	switch p {
	case ParamScale:
		return "scale"
	case ParamRate:
		return "rate"
	default:
		return fmt.Sprintf("Param(%d)", int(p))
	}
}

// FilterSpec describes one bank of modulation channels: the tuning values in
// bank order, whether every channel is forced to band-pass, and the name of
// the output axis the decomposition inserts.
type FilterSpec struct {
	Param    Param
	Values   []float64
	BandOnly bool
	AxisName string
}

// SpecOption configures a FilterSpec under construction.
type SpecOption func(*FilterSpec)

// WithBandOnly forces every channel of the bank to band-pass classification,
// regardless of its magnitude relative to the axis bounds.
func WithBandOnly() SpecOption {
	return func(s *FilterSpec) { s.BandOnly = true }
}

// WithAxisName overrides the name of the inserted output axis. The name must
// still contain the parameter's role keyword ("rate" or "scale"); renaming
// allows nested decompositions of an already decomposed array.
func WithAxisName(name string) SpecOption {
	return func(s *FilterSpec) { s.AxisName = name }
}

// NewRateSpec builds the spec for a bank of temporal modulation channels.
// Rates are signed: the magnitude tunes the channel, the sign selects the
// sweep direction. Zero rates are rejected.
func NewRateSpec(rates []units.Frequency, opts ...SpecOption) (FilterSpec, error) {
	s := FilterSpec{Param: ParamRate, AxisName: "rate"}
	for _, o := range opts {
		o(&s)
	}
	if len(rates) == 0 {
		return FilterSpec{}, fmt.Errorf("%w: rate list is empty", ErrEmptySpec)
	}
	if !strings.Contains(s.AxisName, "rate") {
		return FilterSpec{}, fmt.Errorf("%w: %q must contain \"rate\"", ErrBadAxisName, s.AxisName)
	}
	s.Values = make([]float64, len(rates))
	for i, r := range rates {
		v := r.Hertz()
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return FilterSpec{}, fmt.Errorf("%w: rate %v Hz", ErrBadValue, v)
		}
		s.Values[i] = v
	}
	return s, nil
}

// NewScaleSpec builds the spec for a bank of spectral modulation channels.
// Scales must be strictly positive.
func NewScaleSpec(scales []units.Scale, opts ...SpecOption) (FilterSpec, error) {
	s := FilterSpec{Param: ParamScale, AxisName: "scale"}
	for _, o := range opts {
		o(&s)
	}
	if len(scales) == 0 {
		return FilterSpec{}, fmt.Errorf("%w: scale list is empty", ErrEmptySpec)
	}
	if !strings.Contains(s.AxisName, "scale") {
		return FilterSpec{}, fmt.Errorf("%w: %q must contain \"scale\"", ErrBadAxisName, s.AxisName)
	}
	s.Values = make([]float64, len(scales))
	for i, sc := range scales {
		v := sc.CyclesPerOctave()
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return FilterSpec{}, fmt.Errorf("%w: scale %v cyc/oct", ErrBadValue, v)
		}
		s.Values[i] = v
	}
	return s, nil
}

// bounds derives the classification thresholds for the spec's channels:
// the smallest and largest channel magnitudes, or (-Inf, +Inf) under
// band-only mode so every channel classifies band-pass.
func (s FilterSpec) bounds() axarr.Bounds {
	if s.BandOnly {
		return axarr.Bounds{Low: math.Inf(-1), High: math.Inf(1)}
	}
	low, high := math.Inf(1), math.Inf(-1)
	for _, v := range s.Values {
		m := math.Abs(v)
		low = math.Min(low, m)
		high = math.Max(high, m)
	}
	return axarr.Bounds{Low: low, High: high}
}

// axis returns the output axis the decomposition inserts for this spec:
// ticks are the channel values in bank order, bounds are the classification
// thresholds.
func (s FilterSpec) axis() axarr.Axis {
	b := s.bounds()
	return axarr.Axis{
		Name:   s.AxisName,
		Ticks:  append([]float64(nil), s.Values...),
		Bounds: &b,
	}
}

// ComposedSpec pairs a scale bank and a rate bank for the joint
// spectrotemporal decomposition.
type ComposedSpec struct {
	Scale FilterSpec
	Rate  FilterSpec
}

// Compose pairs a scale spec with a rate spec.
func Compose(scale, rate FilterSpec) (ComposedSpec, error) {
	if scale.Param != ParamScale {
		return ComposedSpec{}, fmt.Errorf("%w: first argument must be a scale spec", ErrBadValue)
	}
	if rate.Param != ParamRate {
		return ComposedSpec{}, fmt.Errorf("%w: second argument must be a rate spec", ErrBadValue)
	}
	return ComposedSpec{Scale: scale, Rate: rate}, nil
}

// DefaultRates returns the standard rate channel list: half-octave steps
// from 2 to 32 Hz, both sweep directions. The slice is freshly allocated.
func DefaultRates() []units.Frequency {
	var out []units.Frequency
	for e := 1.0; e <= 5.0; e += 0.5 {
		out = append(out, units.Hz(-math.Pow(2, e)))
	}
	for e := 1.0; e <= 5.0; e += 0.5 {
		out = append(out, units.Hz(math.Pow(2, e)))
	}
	return out
}

// DefaultScales returns the standard scale channel list: half-octave steps
// from 0.25 to 8 cycles/octave. The slice is freshly allocated.
func DefaultScales() []units.Scale {
	var out []units.Scale
	for e := -2.0; e <= 3.0; e += 0.5 {
		out = append(out, units.CycOct(math.Pow(2, e)))
	}
	return out
}
