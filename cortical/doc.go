// Package cortical computes and inverts a two-dimensional spectrotemporal
// decomposition of a time-frequency spectrogram, modeling the modulation
// tuning of auditory-cortex receptive fields.
//
// The decomposition splits a [time, freq] spectrogram into channels tuned to
// temporal modulation rates (Hz, signed for sweep direction) and spectral
// modulation scales (cycles/octave). Filtering happens in the frequency
// domain: the input is zero-padded and transformed once per filtered axis,
// every channel's transfer function is applied by multiplication, and the
// result is cropped back to the original extent.
//
// The package implements one fixed two-stage decomposition with specific
// filter shapes; it is not a general filter-design library.
//
// # Usage
//
// Build the channel specs once, then apply them:
//
//	rates, _ := cortical.NewRateSpec(cortical.DefaultRates())
//	scales, _ := cortical.NewScaleSpec(cortical.DefaultScales())
//	cs, _ := cortical.Compose(scales, rates)
//
//	cr, _ := cortical.ApplyComposed(spect, cs)          // [time, scale, rate, freq]
//	back, _ := cortical.InvertComposed(cr, cs)          // [time, freq]
//
// Single-axis decompositions use [Apply] and [Invert] with one spec.
//
// Inversion is an energy-weighted frequency-domain accumulation over all
// channels; the composed inverse then polishes that estimate with a few
// conjugate-gradient steps against the forward system, recovering content
// the per-channel cropping displaced. The round trip is a close correlate
// of the input, not an exact reproduction. Every channel must be present
// when inverting: partial inversion fails.
//
// All calls are synchronous and CPU-bound. Transform buffers and FFT plans
// live only for the duration of a call.
package cortical
