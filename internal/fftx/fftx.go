// Package fftx wraps gonum's complex FFT with the transform geometry the
// filtering engines need: 5-smooth transform sizes and transforms applied
// along a single dimension of a dense row-major buffer.
package fftx

import "gonum.org/v1/gonum/dsp/fourier"

// GoodSize returns the smallest integer >= n whose prime factors are all in
// {2, 3, 5}. Transforms at such sizes stay on the FFT's fast mixed-radix
// paths.
func GoodSize(n int) int {
	if n <= 1 {
		return 1
	}
	for m := n; ; m++ {
		if smooth(m) {
			return m
		}
	}
}

func smooth(m int) bool {
	for _, p := range []int{2, 3, 5} {
		for m%p == 0 {
			m /= p
		}
	}
	return m == 1
}

// Strides returns the row-major strides for the given shape.
func Strides(shape []int) []int {
	s := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = stride
		stride *= shape[i]
	}
	return s
}

// Lines calls fn once for every 1-D line along the given axis of a dense
// row-major array with the given shape. fn receives the flat index of the
// line's first element and the stride between consecutive elements.
func Lines(shape []int, axis int, fn func(start, stride int)) {
	strides := Strides(shape)
	count := 1
	for i, d := range shape {
		if i != axis {
			count *= d
		}
	}
	idx := make([]int, len(shape))
	for c := 0; c < count; c++ {
		start := 0
		for i, j := range idx {
			if i != axis {
				start += j * strides[i]
			}
		}
		fn(start, strides[axis])
		for i := len(shape) - 1; i >= 0; i-- {
			if i == axis {
				continue
			}
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
}

// Plan holds a reusable complex FFT of a fixed length together with the
// scratch lines used for strided access. A Plan is not safe for concurrent
// use.
type Plan struct {
	n    int
	fft  *fourier.CmplxFFT
	line []complex128
	out  []complex128
}

// NewPlan creates a plan for transforms of length n.
func NewPlan(n int) *Plan {
	return &Plan{
		n:    n,
		fft:  fourier.NewCmplxFFT(n),
		line: make([]complex128, n),
		out:  make([]complex128, n),
	}
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Forward computes the forward transform of src into dst. Both must have
// length Len; dst and src may alias.
func (p *Plan) Forward(dst, src []complex128) {
	copy(p.line, src)
	p.fft.Coefficients(p.out, p.line)
	copy(dst, p.out)
}

// Inverse computes the normalized inverse transform of src into dst. Both
// must have length Len; dst and src may alias. gonum's inverse is
// unnormalized, so the result is scaled by 1/Len.
func (p *Plan) Inverse(dst, src []complex128) {
	copy(p.line, src)
	p.fft.Sequence(p.out, p.line)
	scale := complex(1/float64(p.n), 0)
	for i, v := range p.out {
		dst[i] = v * scale
	}
}

// ForwardAxis applies the forward transform in place along one axis of a
// dense row-major buffer. shape[axis] must equal Len.
func (p *Plan) ForwardAxis(data []complex128, shape []int, axis int) {
	p.transformAxis(data, shape, axis, p.Forward)
}

// InverseAxis applies the normalized inverse transform in place along one
// axis of a dense row-major buffer. shape[axis] must equal Len.
func (p *Plan) InverseAxis(data []complex128, shape []int, axis int) {
	p.transformAxis(data, shape, axis, p.Inverse)
}

func (p *Plan) transformAxis(data []complex128, shape []int, axis int, tf func(dst, src []complex128)) {
	gather := make([]complex128, p.n)
	Lines(shape, axis, func(start, stride int) {
		for i := range gather {
			gather[i] = data[start+i*stride]
		}
		tf(gather, gather)
		for i, v := range gather {
			data[start+i*stride] = v
		}
	})
}
