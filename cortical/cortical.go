package cortical

import (
	"fmt"

	"github.com/haberdashPI/ShammaModel/axarr"
)

// Role keywords used to locate the spectrogram axes by name.
const (
	TimeKeyword = "time"
	FreqKeyword = "freq"
)

// forwardAxes verifies x is a [time, freq] spectrogram and that none of the
// requested output axis names are already present, then returns the two
// axes. Callers decomposing an already decomposed array must rename the
// output axes via WithAxisName.
func forwardAxes(x *axarr.Array[float64], outNames ...string) (timeAx, freqAx axarr.Axis, err error) {
	if x.NumDims() != 2 {
		return timeAx, freqAx, fmt.Errorf("%w: input must be [time, freq], have %d dimensions",
			ErrMissingAxis, x.NumDims())
	}
	ti, ok := x.FindAxis(TimeKeyword)
	if !ok || ti != 0 {
		return timeAx, freqAx, fmt.Errorf("%w: no leading time axis", ErrMissingAxis)
	}
	fi, ok := x.FindAxis(FreqKeyword)
	if !ok || fi != 1 {
		return timeAx, freqAx, fmt.Errorf("%w: no trailing frequency axis", ErrMissingAxis)
	}
	for _, name := range outNames {
		if x.HasAxis(name) {
			return timeAx, freqAx, fmt.Errorf("%w: %q (rename the output axis to nest decompositions)",
				ErrAxisCollision, name)
		}
	}
	axes := x.Axes()
	return axes[0], axes[1], nil
}

// Apply decomposes a [time, freq] spectrogram along a single modulation
// dimension, producing a complex array with the spec's channel axis
// inserted between time and frequency.
func Apply(x *axarr.Array[float64], spec FilterSpec, opts ...Option) (*axarr.Array[complex128], error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	timeAx, freqAx, err := forwardAxes(x, spec.AxisName)
	if err != nil {
		return nil, err
	}

	shape := x.Shape()
	nT, nF := shape[0], shape[1]
	nC := len(spec.Values)
	out, err := axarr.New[complex128](axarr.Inserted(x.Axes(), 1, spec.axis())...)
	if err != nil {
		return nil, err
	}
	od := out.Data()

	switch spec.Param {
	case ParamScale:
		spo, err := freqResolution(freqAx)
		if err != nil {
			return nil, err
		}
		eng := newFIREngine(x.Data(), shape, []int{1})
		padF := eng.padDim(1)
		bank, err := scaleFilters(padF, spec, spec.bounds(), spo)
		if err != nil {
			return nil, err
		}
		for si, hs := range bank {
			res := eng.apply([][]complex128{zeroExtend(hs, padF)})
			for t := 0; t < nT; t++ {
				for f := 0; f < nF; f++ {
					od[(t*nC+si)*nF+f] = res[t*padF+f]
				}
			}
			cfg.report(si+1, nC)
		}

	case ParamRate:
		dt, err := timeStep(timeAx)
		if err != nil {
			return nil, err
		}
		eng := newFIREngine(x.Data(), shape, []int{0})
		bank, err := rateFilters(eng.padDim(0), spec, spec.bounds(), dt, false)
		if err != nil {
			return nil, err
		}
		for ri, h := range bank {
			res := eng.apply([][]complex128{h})
			for t := 0; t < nT; t++ {
				for f := 0; f < nF; f++ {
					od[(t*nC+ri)*nF+f] = res[t*nF+f]
				}
			}
			cfg.report(ri+1, nC)
		}

	default:
		return nil, fmt.Errorf("%w: param %v", ErrBadValue, spec.Param)
	}
	return out, nil
}

// ApplyComposed decomposes a [time, freq] spectrogram over the full
// scale x rate channel grid, producing a complex array with shape
// [time, scale, rate, freq].
func ApplyComposed(x *axarr.Array[float64], cs ComposedSpec, opts ...Option) (*axarr.Array[complex128], error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	timeAx, freqAx, err := forwardAxes(x, cs.Scale.AxisName, cs.Rate.AxisName)
	if err != nil {
		return nil, err
	}
	dt, err := timeStep(timeAx)
	if err != nil {
		return nil, err
	}
	spo, err := freqResolution(freqAx)
	if err != nil {
		return nil, err
	}

	shape := x.Shape()
	nT, nF := shape[0], shape[1]
	eng := newFIREngine(x.Data(), shape, []int{0, 1})
	padF := eng.padDim(1)

	rBank, err := rateFilters(eng.padDim(0), cs.Rate, cs.Rate.bounds(), dt, false)
	if err != nil {
		return nil, err
	}
	sBank, err := scaleFilters(padF, cs.Scale, cs.Scale.bounds(), spo)
	if err != nil {
		return nil, err
	}

	out, err := axarr.New[complex128](axarr.Inserted(x.Axes(), 1, cs.Scale.axis(), cs.Rate.axis())...)
	if err != nil {
		return nil, err
	}
	od := out.Data()
	nS, nR := len(sBank), len(rBank)
	total := nS * nR
	done := 0

	for si, hs := range sBank {
		hsExt := zeroExtend(hs, padF)
		for ri, hr := range rBank {
			res := eng.apply([][]complex128{hr, hsExt})
			for t := 0; t < nT; t++ {
				for f := 0; f < nF; f++ {
					od[((t*nS+si)*nR+ri)*nF+f] = res[t*padF+f]
				}
			}
			done++
			cfg.report(done, total)
		}
	}
	return out, nil
}

// inverseAxes verifies cr has a leading time axis, a trailing frequency
// axis, and exactly the named channel axes in order between them.
func inverseAxes(cr *axarr.Array[complex128], chanNames ...string) (timeAx, freqAx axarr.Axis, chanAxes []axarr.Axis, err error) {
	want := 2 + len(chanNames)
	if cr.NumDims() != want {
		return timeAx, freqAx, nil, fmt.Errorf("%w: decomposition must have %d dimensions, have %d",
			ErrMissingAxis, want, cr.NumDims())
	}
	ti, ok := cr.FindAxis(TimeKeyword)
	if !ok || ti != 0 {
		return timeAx, freqAx, nil, fmt.Errorf("%w: no leading time axis", ErrMissingAxis)
	}
	fi, ok := cr.FindAxis(FreqKeyword)
	if !ok || fi != want-1 {
		return timeAx, freqAx, nil, fmt.Errorf("%w: no trailing frequency axis", ErrMissingAxis)
	}
	axes := cr.Axes()
	for i, name := range chanNames {
		if axes[1+i].Name != name {
			return timeAx, freqAx, nil, fmt.Errorf("%w: dimension %d is %q, want %q",
				ErrMissingAxis, 1+i, axes[1+i].Name, name)
		}
	}
	return axes[0], axes[want-1], axes[1 : want-1], nil
}

// Invert reconstructs a real [time, freq] spectrogram from a single-axis
// decomposition produced by Apply with the same spec. Every channel of the
// spec must be present: partial inversion is not supported.
func Invert(cr *axarr.Array[complex128], spec FilterSpec, opts ...Option) (*axarr.Array[float64], error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	timeAx, freqAx, chanAxes, err := inverseAxes(cr, spec.AxisName)
	if err != nil {
		return nil, err
	}
	chanAx := chanAxes[0]
	nC := chanAx.Len()
	if len(spec.Values) != nC {
		return nil, fmt.Errorf("%w: spec has %d channels, axis %q has %d",
			ErrPartialInverse, len(spec.Values), chanAx.Name, nC)
	}

	nT, nF := timeAx.Len(), freqAx.Len()
	cum := newFFTCum(nT, nF)
	padT, padF := cum.grid()
	bounds := channelBounds(chanAx, spec)

	// Per-channel responses over the padded grid, matched to the forward
	// filters by conjugation.
	resps := make([][]complex128, nC)
	switch spec.Param {
	case ParamRate:
		dt, err := timeStep(timeAx)
		if err != nil {
			return nil, err
		}
		bank, err := rateFilters(padT, spec, bounds, dt, true)
		if err != nil {
			return nil, err
		}
		for ci, h := range bank {
			resp := make([]complex128, padT*padF)
			for t := 0; t < padT; t++ {
				row := resp[t*padF : (t+1)*padF]
				for f := range row {
					row[f] = h[t]
				}
			}
			resps[ci] = resp
		}
	case ParamScale:
		spo, err := freqResolution(freqAx)
		if err != nil {
			return nil, err
		}
		bank, err := scaleFilters(padF, spec, bounds, spo)
		if err != nil {
			return nil, err
		}
		for ci, hs := range bank {
			ext := zeroExtend(hs, padF)
			resp := make([]complex128, padT*padF)
			for t := 0; t < padT; t++ {
				copy(resp[t*padF:(t+1)*padF], ext)
			}
			resps[ci] = resp
		}
	default:
		return nil, fmt.Errorf("%w: param %v", ErrBadValue, spec.Param)
	}

	cd := cr.Data()
	slice := make([]complex128, nT*nF)
	for ci := 0; ci < nC; ci++ {
		for t := 0; t < nT; t++ {
			for f := 0; f < nF; f++ {
				slice[t*nF+f] = cd[(t*nC+ci)*nF+f]
			}
		}
		if err := cum.accumulate(slice, nT, nF, resps[ci]); err != nil {
			return nil, err
		}
		cfg.report(ci+1, nC)
	}

	data, err := cum.finalize(cfg.norm)
	if err != nil {
		return nil, err
	}
	outAxes, err := axarr.Removed(cr.Axes(), spec.AxisName)
	if err != nil {
		return nil, err
	}
	return axarr.FromData(data, outAxes...)
}

// InvertComposed reconstructs a real [time, freq] spectrogram from a joint
// [time, scale, rate, freq] decomposition produced by ApplyComposed with the
// same composed spec. Every channel of both banks must be present: partial
// inversion is not supported.
//
// The energy-weighted estimate is refined by a least-squares polish against
// the forward system (see WithRefineSteps), so a decomposition of a smooth
// surface reconstructs it closely rather than merely proportionally.
func InvertComposed(cr *axarr.Array[complex128], cs ComposedSpec, opts ...Option) (*axarr.Array[float64], error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	timeAx, freqAx, chanAxes, err := inverseAxes(cr, cs.Scale.AxisName, cs.Rate.AxisName)
	if err != nil {
		return nil, err
	}
	scaleAx, rateAx := chanAxes[0], chanAxes[1]
	nS, nR := scaleAx.Len(), rateAx.Len()
	if len(cs.Scale.Values) != nS {
		return nil, fmt.Errorf("%w: spec has %d scales, axis %q has %d",
			ErrPartialInverse, len(cs.Scale.Values), scaleAx.Name, nS)
	}
	if len(cs.Rate.Values) != nR {
		return nil, fmt.Errorf("%w: spec has %d rates, axis %q has %d",
			ErrPartialInverse, len(cs.Rate.Values), rateAx.Name, nR)
	}

	dt, err := timeStep(timeAx)
	if err != nil {
		return nil, err
	}
	spo, err := freqResolution(freqAx)
	if err != nil {
		return nil, err
	}

	nT, nF := timeAx.Len(), freqAx.Len()
	cum := newFFTCum(nT, nF)
	padT, padF := cum.grid()

	rAdj, err := rateFilters(padT, cs.Rate, channelBounds(rateAx, cs.Rate), dt, true)
	if err != nil {
		return nil, err
	}
	rFwd, err := rateFilters(padT, cs.Rate, channelBounds(rateAx, cs.Rate), dt, false)
	if err != nil {
		return nil, err
	}
	sBank, err := scaleFilters(padF, cs.Scale, channelBounds(scaleAx, cs.Scale), spo)
	if err != nil {
		return nil, err
	}
	sExt := make([][]complex128, nS)
	for si, hs := range sBank {
		sExt[si] = zeroExtend(hs, padF)
	}

	cd := cr.Data()
	slice := make([]complex128, nT*nF)
	resp := make([]complex128, padT*padF)
	total := nS * nR
	done := 0

	for si := range sBank {
		hsExt := sExt[si]
		for ri, hr := range rAdj {
			// Combined channel filter: rate response along time, extended
			// scale response along frequency.
			for t := 0; t < padT; t++ {
				row := resp[t*padF : (t+1)*padF]
				for f := range row {
					row[f] = hr[t] * hsExt[f]
				}
			}
			for t := 0; t < nT; t++ {
				for f := 0; f < nF; f++ {
					slice[t*nF+f] = cd[((t*nS+si)*nR+ri)*nF+f]
				}
			}
			if err := cum.accumulate(slice, nT, nF, resp); err != nil {
				return nil, err
			}
			done++
			cfg.report(done, total)
		}
	}

	data, err := cum.finalizeRaw(cfg.norm)
	if err != nil {
		return nil, err
	}

	// The energy-weighted estimate misplaces content the forward crop cut
	// off each channel's tail; polish it against the truncated system
	// before clamping.
	sys := newComposedSystem(nT, nF, rFwd, rAdj, sExt)
	data = sys.refine(data, cd, cfg.refineSteps)
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	outAxes, err := axarr.Removed(cr.Axes(), cs.Scale.AxisName, cs.Rate.AxisName)
	if err != nil {
		return nil, err
	}
	return axarr.FromData(data, outAxes...)
}
