package cortical

import (
	"gonum.org/v1/gonum/floats"

	"github.com/haberdashPI/ShammaModel/internal/fftx"
)

// composedSystem is the composed decomposition as a matrix-free linear
// operator: forward maps a [time, freq] surface to the cropped channel
// slices, adjoint maps slices back through the conjugate responses.
//
// Cropping each channel to the original window discards the tail the padded
// convolution pushed past it, so the energy-weighted division in finalize
// only approximates the inverse of the truncated system. refine solves the
// truncated system itself, with finalize's estimate as the starting point.
type composedSystem struct {
	nT, nF     int
	padT, padF int

	rFwd, rAdj [][]complex128 // per rate channel, over all padT bins
	sExt       [][]complex128 // per scale channel, zero-extended to padF

	planT, planF *fftx.Plan
	spec, work   []complex128
}

func newComposedSystem(nT, nF int, rFwd, rAdj, sExt [][]complex128) *composedSystem {
	padT := 2 * fftx.GoodSize(nT)
	padF := 2 * fftx.GoodSize(nF)
	return &composedSystem{
		nT: nT, nF: nF, padT: padT, padF: padF,
		rFwd: rFwd, rAdj: rAdj, sExt: sExt,
		planT: fftx.NewPlan(padT),
		planF: fftx.NewPlan(padF),
		spec:  make([]complex128, padT*padF),
		work:  make([]complex128, padT*padF),
	}
}

// forward fills dst with the cropped channel slices of x, laid out like the
// data of an ApplyComposed result.
func (s *composedSystem) forward(x []float64, dst []complex128) {
	shape := []int{s.padT, s.padF}
	for i := range s.spec {
		s.spec[i] = 0
	}
	for t := 0; t < s.nT; t++ {
		for f := 0; f < s.nF; f++ {
			s.spec[t*s.padF+f] = complex(x[t*s.nF+f], 0)
		}
	}
	s.planT.ForwardAxis(s.spec, shape, 0)
	s.planF.ForwardAxis(s.spec, shape, 1)

	nS, nR := len(s.sExt), len(s.rFwd)
	for si := 0; si < nS; si++ {
		for ri := 0; ri < nR; ri++ {
			copy(s.work, s.spec)
			s.mulResponse(s.rFwd[ri], s.sExt[si])
			s.planT.InverseAxis(s.work, shape, 0)
			s.planF.InverseAxis(s.work, shape, 1)
			for t := 0; t < s.nT; t++ {
				for f := 0; f < s.nF; f++ {
					dst[((t*nS+si)*nR+ri)*s.nF+f] = s.work[t*s.padF+f]
				}
			}
		}
	}
}

// adjoint accumulates into dst the transpose-conjugate image of the channel
// slices in cr: each slice is re-padded, filtered by the conjugate
// responses, and the cropped real parts are summed over channels.
func (s *composedSystem) adjoint(cr []complex128, dst []float64) {
	shape := []int{s.padT, s.padF}
	for i := range dst {
		dst[i] = 0
	}
	nS, nR := len(s.sExt), len(s.rAdj)
	for si := 0; si < nS; si++ {
		for ri := 0; ri < nR; ri++ {
			for i := range s.work {
				s.work[i] = 0
			}
			for t := 0; t < s.nT; t++ {
				for f := 0; f < s.nF; f++ {
					s.work[t*s.padF+f] = cr[((t*nS+si)*nR+ri)*s.nF+f]
				}
			}
			s.planT.ForwardAxis(s.work, shape, 0)
			s.planF.ForwardAxis(s.work, shape, 1)
			s.mulResponse(s.rAdj[ri], s.sExt[si])
			s.planT.InverseAxis(s.work, shape, 0)
			s.planF.InverseAxis(s.work, shape, 1)
			for t := 0; t < s.nT; t++ {
				for f := 0; f < s.nF; f++ {
					dst[t*s.nF+f] += real(s.work[t*s.padF+f])
				}
			}
		}
	}
}

// mulResponse multiplies the work buffer by one channel's separable
// transfer function.
func (s *composedSystem) mulResponse(hr, hs []complex128) {
	for t := 0; t < s.padT; t++ {
		row := s.work[t*s.padF : (t+1)*s.padF]
		w := hr[t]
		for f := range row {
			row[f] *= w * hs[f]
		}
	}
}

// refine runs conjugate-gradient steps on the normal equations of the
// truncated system, starting from x0 and matching the observed slices cr in
// the least-squares sense. The returned surface is not clamped.
func (s *composedSystem) refine(x0 []float64, cr []complex128, steps int) []float64 {
	x := append([]float64(nil), x0...)
	if steps <= 0 {
		return x
	}

	resid := make([]complex128, len(cr))
	q := make([]complex128, len(cr))
	grad := make([]float64, len(x))
	dir := make([]float64, len(x))

	s.forward(x, resid)
	for i, v := range cr {
		resid[i] = v - resid[i]
	}
	s.adjoint(resid, grad)
	copy(dir, grad)
	gamma := floats.Dot(grad, grad)

	for k := 0; k < steps && gamma > 0; k++ {
		s.forward(dir, q)
		qq := 0.0
		for _, v := range q {
			qq += real(v)*real(v) + imag(v)*imag(v)
		}
		if qq == 0 {
			break
		}
		alpha := gamma / qq
		floats.AddScaled(x, alpha, dir)
		ca := complex(alpha, 0)
		for i, v := range q {
			resid[i] -= ca * v
		}
		s.adjoint(resid, grad)
		g2 := floats.Dot(grad, grad)
		floats.AddScaledTo(dir, grad, g2/gamma, dir)
		gamma = g2
	}
	return x
}
