package cortical

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/haberdashPI/ShammaModel/internal/fftx"
)

// Contract errors raised by the inverse accumulation engine.
var (
	ErrExtentMismatch = errors.New("cortical: accumulator extent mismatch")
	ErrFinalized      = errors.New("cortical: accumulator already finalized")
)

// fftCum accumulates per-channel reconstructions and filter energy for the
// normalized inverse. Reconstruction happens in the frequency domain as an
// energy-weighted average rather than by inverting the ill-conditioned
// combined filter system.
//
// The accumulator is a two-state builder: any number of accumulate calls,
// then exactly one finalize. It is created fresh per inverse call and
// discarded afterwards.
type fftCum struct {
	nTime, nFreq int // original window
	padT, padF   int // padded grid

	z     []complex128 // staging buffer, zero outside the original window
	zSpec []complex128 // forward transform of z
	zCum  []complex128 // cumulative weighted signal
	hCum  []float64    // cumulative filter energy

	planT, planF *fftx.Plan

	// split-part scratch for the energy update
	reS, imS, powS []float64

	finalized bool
}

// newFFTCum creates an accumulator for channel slices with the given
// original time and frequency extents. The padded grid matches the forward
// engine's padding of both axes.
func newFFTCum(nTime, nFreq int) *fftCum {
	padT := 2 * fftx.GoodSize(nTime)
	padF := 2 * fftx.GoodSize(nFreq)
	n := padT * padF
	return &fftCum{
		nTime: nTime,
		nFreq: nFreq,
		padT:  padT,
		padF:  padF,
		z:     make([]complex128, n),
		zSpec: make([]complex128, n),
		zCum:  make([]complex128, n),
		hCum:  make([]float64, n),
		planT: fftx.NewPlan(padT),
		planF: fftx.NewPlan(padF),
		reS:   make([]float64, n),
		imS:   make([]float64, n),
		powS:  make([]float64, n),
	}
}

// grid returns the padded grid extents.
func (c *fftCum) grid() (padT, padF int) { return c.padT, c.padF }

// accumulate folds one channel's reconstruction into the running totals.
// slice is the channel's decomposed data, row-major [nTime][nFreq]; resp is
// the channel's generating transfer function over the full padded grid.
// The slice extents must exactly match the accumulator's recorded extents;
// a mismatch is a contract violation, never silently resized. Accumulation
// order does not matter: only the totals feed finalize.
func (c *fftCum) accumulate(slice []complex128, nTime, nFreq int, resp []complex128) error {
	if c.finalized {
		return fmt.Errorf("%w: accumulate after finalize", ErrFinalized)
	}
	if nTime != c.nTime || nFreq != c.nFreq {
		return fmt.Errorf("%w: slice is %dx%d, accumulator holds %dx%d",
			ErrExtentMismatch, nTime, nFreq, c.nTime, c.nFreq)
	}
	if len(slice) != nTime*nFreq {
		return fmt.Errorf("%w: slice has %d elements, want %d",
			ErrExtentMismatch, len(slice), nTime*nFreq)
	}
	if len(resp) != len(c.zCum) {
		return fmt.Errorf("%w: response has %d bins, grid has %d",
			ErrExtentMismatch, len(resp), len(c.zCum))
	}

	for t := 0; t < nTime; t++ {
		copy(c.z[t*c.padF:], slice[t*nFreq:(t+1)*nFreq])
	}
	copy(c.zSpec, c.z)
	shape := []int{c.padT, c.padF}
	c.planT.ForwardAxis(c.zSpec, shape, 0)
	c.planF.ForwardAxis(c.zSpec, shape, 1)

	// h_cum += |resp|^2
	for i, v := range resp {
		c.reS[i] = real(v)
		c.imS[i] = imag(v)
	}
	vecmath.Power(c.powS, c.reS, c.imS)
	floats.Add(c.hCum, c.powS)

	// z_cum += resp .* Z
	for i := range c.zCum {
		c.zCum[i] += resp[i] * c.zSpec[i]
	}
	return nil
}

// finalize performs the normalized energy-weighted reconstruction and
// returns the real [nTime][nFreq] result clamped to non-negative values.
// norm in [0, 1] controls the regularization: the accumulated energy is
// blended with its own maximum before division, preventing blow-up where
// the filter bank has near-zero coverage. The accumulator cannot be reused
// afterwards.
func (c *fftCum) finalize(norm float64) ([]float64, error) {
	out, err := c.finalizeRaw(norm)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		}
	}
	return out, nil
}

// finalizeRaw is finalize without the non-negativity clamp, for callers
// that post-process the reconstruction before clamping.
func (c *fftCum) finalizeRaw(norm float64) ([]float64, error) {
	if c.finalized {
		return nil, fmt.Errorf("%w: finalize called twice", ErrFinalized)
	}
	if norm < 0 || norm > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadNorm, norm)
	}
	c.finalized = true

	// The reconstruction takes twice the real part at the end; the spectral
	// DC column along frequency is its own mirror image, so double its
	// weight to avoid counting it twice.
	for t := 0; t < c.padT; t++ {
		c.hCum[t*c.padF] *= 2
	}

	ref := c.nFreq - 1
	oldSum := 0.0
	for t := 0; t < c.padT; t++ {
		oldSum += c.hCum[t*c.padF+ref]
	}

	// Convex blend with the peak energy, then restore the reference-bin
	// column sum so the blend does not change the overall gain.
	peak := floats.Max(c.hCum)
	for i, v := range c.hCum {
		c.hCum[i] = norm*v + (1-norm)*peak
	}
	newSum := 0.0
	for t := 0; t < c.padT; t++ {
		newSum += c.hCum[t*c.padF+ref]
	}
	if newSum != 0 {
		floats.Scale(oldSum/newSum, c.hCum)
	}

	// Per-bin weighted deconvolution.
	for i := range c.zCum {
		if c.hCum[i] != 0 {
			c.zCum[i] /= complex(c.hCum[i], 0)
		}
	}

	shape := []int{c.padT, c.padF}
	c.planT.InverseAxis(c.zCum, shape, 0)
	c.planF.InverseAxis(c.zCum, shape, 1)

	out := make([]float64, c.nTime*c.nFreq)
	for t := 0; t < c.nTime; t++ {
		for f := 0; f < c.nFreq; f++ {
			out[t*c.nFreq+f] = 2 * real(c.zCum[t*c.padF+f])
		}
	}
	return out, nil
}
