package cortical_test

import (
	"fmt"
	"math"

	"github.com/haberdashPI/ShammaModel/axarr"
	"github.com/haberdashPI/ShammaModel/cortical"
	"github.com/haberdashPI/ShammaModel/units"
)

// Example decomposes a small moving-ripple spectrogram over a joint
// scale x rate grid and reconstructs it.
func Example() {
	const (
		nTime = 64
		nFreq = 32
		dt    = 0.01
		base  = 125.0
		spo   = 8.0
	)
	times := make([]float64, nTime)
	freqs := make([]float64, nFreq)
	for i := range times {
		times[i] = float64(i) * dt
	}
	for i := range freqs {
		freqs[i] = base * math.Pow(2, float64(i)/spo)
	}
	data := make([]float64, nTime*nFreq)
	for t := 0; t < nTime; t++ {
		for f := 0; f < nFreq; f++ {
			oct := float64(f) / spo
			data[t*nFreq+f] = 1 + 0.9*math.Cos(2*math.Pi*(4*times[t]+oct))
		}
	}
	x, err := axarr.FromData(data,
		axarr.Axis{Name: "time", Ticks: times},
		axarr.Axis{Name: "freq", Ticks: freqs},
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	rates, _ := cortical.NewRateSpec([]units.Frequency{
		units.Hz(-8), units.Hz(-2), units.Hz(2), units.Hz(8),
	})
	scales, _ := cortical.NewScaleSpec([]units.Scale{
		units.CycOct(0.5), units.CycOct(2),
	})
	cs, err := cortical.Compose(scales, rates)
	if err != nil {
		fmt.Println(err)
		return
	}

	cr, err := cortical.ApplyComposed(x, cs)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("decomposition:", cr.Shape())

	y, err := cortical.InvertComposed(cr, cs)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("reconstruction:", y.Shape())

	// Output:
	// decomposition: [64 2 4 32]
	// reconstruction: [64 32]
}
