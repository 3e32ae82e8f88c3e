package cortical

import (
	"github.com/haberdashPI/ShammaModel/internal/fftx"
)

// firEngine applies a bank of frequency-domain transfer functions to one
// input, amortizing a single forward transform across every channel of the
// bank.
//
// Construction zero-pads the input along each target axis to the smallest
// even 5-smooth length at least twice the original extent (evenness keeps
// the half-spectrum filter construction exact), transforms once along each
// target axis, and retains the transformed buffer together with matching
// inverse plans.
type firEngine struct {
	shape    []int          // padded shape
	orig     []int          // original shape
	axes     []int          // transformed dimensions, ascending
	spectrum []complex128   // forward transform of the padded input
	plans    []*fftx.Plan   // one per transformed dimension
	work     []complex128   // per-apply workspace, reused across channels
}

// newFIREngine pads and transforms data (row-major, the given shape) along
// the target axes.
func newFIREngine(data []float64, shape []int, axes []int) *firEngine {
	e := &firEngine{
		orig: append([]int(nil), shape...),
		axes: append([]int(nil), axes...),
	}
	e.shape = append([]int(nil), shape...)
	for _, ax := range axes {
		e.shape[ax] = 2 * fftx.GoodSize(shape[ax])
	}
	n := 1
	for _, d := range e.shape {
		n *= d
	}
	e.spectrum = make([]complex128, n)
	e.work = make([]complex128, n)

	copyRealBlock(e.spectrum, e.shape, data, shape)

	e.plans = make([]*fftx.Plan, len(axes))
	for i, ax := range axes {
		e.plans[i] = fftx.NewPlan(e.shape[ax])
		e.plans[i].ForwardAxis(e.spectrum, e.shape, ax)
	}
	return e
}

// padDim returns the padded extent of the given dimension.
func (e *firEngine) padDim(axis int) int { return e.shape[axis] }

// apply multiplies the stored transform by one response per target axis
// (parallel to the engine's axes, each covering that axis's full padded
// extent), inverse-transforms, and returns the padded result. The caller
// keeps only the original index range. The returned buffer is reused by the
// next apply call.
func (e *firEngine) apply(hs [][]complex128) []complex128 {
	copy(e.work, e.spectrum)
	for i, ax := range e.axes {
		mulAxis(e.work, e.shape, ax, hs[i])
	}
	for i, ax := range e.axes {
		e.plans[i].InverseAxis(e.work, e.shape, ax)
	}
	return e.work
}

// mulAxis multiplies data elementwise by h broadcast along the given axis.
func mulAxis(data []complex128, shape []int, axis int, h []complex128) {
	fftx.Lines(shape, axis, func(start, stride int) {
		for i, v := range h {
			data[start+i*stride] *= v
		}
	})
}

// copyRealBlock writes src (row-major, srcShape) into the leading corner of
// dst (row-major, dstShape), leaving the padding zero.
func copyRealBlock(dst []complex128, dstShape []int, src []float64, srcShape []int) {
	dstStrides := fftx.Strides(dstShape)
	srcStrides := fftx.Strides(srcShape)
	var rec func(dim, dstOff, srcOff int)
	rec = func(dim, dstOff, srcOff int) {
		if dim == len(srcShape)-1 {
			for i := 0; i < srcShape[dim]; i++ {
				dst[dstOff+i] = complex(src[srcOff+i], 0)
			}
			return
		}
		for i := 0; i < srcShape[dim]; i++ {
			rec(dim+1, dstOff+i*dstStrides[dim], srcOff+i*srcStrides[dim])
		}
	}
	rec(0, 0, 0)
}

// zeroExtend returns the real response h as a complex vector of length n,
// zero in the upper bins. The single-sided extension confines the response
// to non-negative spectral modulation frequencies.
func zeroExtend(h []float64, n int) []complex128 {
	out := make([]complex128, n)
	for i, v := range h {
		out[i] = complex(v, 0)
	}
	return out
}
