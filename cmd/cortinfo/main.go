// Command cortinfo prints channel energies of a cortical decomposition.
//
// It synthesizes a moving-ripple spectrogram, decomposes it over a joint
// scale x rate channel grid, and prints the mean power captured by each
// channel, plus the correlation of the reconstructed spectrogram with the
// input.
//
// Usage:
//
//	cortinfo [flags]
//
// Examples:
//
//	cortinfo
//	cortinfo -rates -8,-4,4,8 -scales 0.5,2
//	cortinfo -ripple-rate 8 -ripple-scale 2 -norm 0.98
package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/haberdashPI/ShammaModel/axarr"
	"github.com/haberdashPI/ShammaModel/cortical"
	"github.com/haberdashPI/ShammaModel/units"
)

func main() {
	nTime := flag.Int("time", 128, "number of time frames")
	nFreq := flag.Int("freq", 64, "number of frequency bins")
	dt := flag.Float64("dt", 0.01, "time step in seconds")
	base := flag.Float64("base", 125, "lowest frequency bin in Hz")
	perOct := flag.Float64("per-octave", 12, "frequency bins per octave")
	rippleRate := flag.Float64("ripple-rate", 4, "drift rate of the test ripple in Hz")
	rippleScale := flag.Float64("ripple-scale", 1, "density of the test ripple in cycles/octave")
	depth := flag.Float64("depth", 0.9, "modulation depth of the test ripple")
	ratesFlag := flag.String("rates", "", "comma-separated rate channels in Hz (default: standard list)")
	scalesFlag := flag.String("scales", "", "comma-separated scale channels in cycles/octave (default: standard list)")
	norm := flag.Float64("norm", cortical.DefaultNorm, "inversion strength in [0, 1]")
	refine := flag.Int("refine", cortical.DefaultRefineSteps, "least-squares polish steps for the inverse (0 disables)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cortinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints per-channel power of a cortical decomposition of a test ripple.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cortinfo -rates -8,-4,4,8 -scales 0.5,2\n")
		fmt.Fprintf(os.Stderr, "  cortinfo -ripple-rate 8 -norm 0.98\n")
	}
	flag.Parse()

	rates, err := parseRates(*ratesFlag)
	if err != nil {
		fatal(err)
	}
	scales, err := parseScales(*scalesFlag)
	if err != nil {
		fatal(err)
	}

	x, err := ripple(*nTime, *nFreq, *dt, *base, *perOct, *rippleRate, *rippleScale, *depth)
	if err != nil {
		fatal(err)
	}

	rateSpec, err := cortical.NewRateSpec(rates)
	if err != nil {
		fatal(err)
	}
	scaleSpec, err := cortical.NewScaleSpec(scales)
	if err != nil {
		fatal(err)
	}
	cs, err := cortical.Compose(scaleSpec, rateSpec)
	if err != nil {
		fatal(err)
	}

	cr, err := cortical.ApplyComposed(x, cs)
	if err != nil {
		fatal(err)
	}

	printPower(cr, scaleSpec.Values, rateSpec.Values)

	y, err := cortical.InvertComposed(cr, cs,
		cortical.WithNorm(*norm), cortical.WithRefineSteps(*refine))
	if err != nil {
		fatal(err)
	}
	r := stat.Correlation(x.Data(), y.Data(), nil)
	fmt.Printf("\nround trip correlation: %.4f (norm %.2f)\n", r, *norm)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseRates(s string) ([]units.Frequency, error) {
	if s == "" {
		return cortical.DefaultRates(), nil
	}
	vals, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	out := make([]units.Frequency, len(vals))
	for i, v := range vals {
		out[i] = units.Hz(v)
	}
	return out, nil
}

func parseScales(s string) ([]units.Scale, error) {
	if s == "" {
		return cortical.DefaultScales(), nil
	}
	vals, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	out := make([]units.Scale, len(vals))
	for i, v := range vals {
		out[i] = units.CycOct(v)
	}
	return out, nil
}

func ripple(nTime, nFreq int, dt, base, perOct, rate, scale, depth float64) (*axarr.Array[float64], error) {
	times := make([]float64, nTime)
	for i := range times {
		times[i] = float64(i) * dt
	}
	freqs := make([]float64, nFreq)
	for i := range freqs {
		freqs[i] = base * math.Pow(2, float64(i)/perOct)
	}
	data := make([]float64, nTime*nFreq)
	for t := 0; t < nTime; t++ {
		for f := 0; f < nFreq; f++ {
			oct := float64(f) / perOct
			data[t*nFreq+f] = 1 + depth*math.Cos(2*math.Pi*(rate*times[t]+scale*oct))
		}
	}
	return axarr.FromData(data,
		axarr.Axis{Name: "time", Ticks: times},
		axarr.Axis{Name: "freq", Ticks: freqs},
	)
}

// printPower prints the mean squared magnitude per (scale, rate) channel,
// scales down the rows, rates across the columns.
func printPower(cr *axarr.Array[complex128], scales, rates []float64) {
	shape := cr.Shape()
	nT, nS, nR, nF := shape[0], shape[1], shape[2], shape[3]
	cd := cr.Data()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "scale \\ rate [Hz]\t")
	for _, r := range rates {
		fmt.Fprintf(tw, "%g\t", r)
	}
	fmt.Fprintln(tw)

	for si := 0; si < nS; si++ {
		fmt.Fprintf(tw, "%g cyc/oct\t", scales[si])
		for ri := 0; ri < nR; ri++ {
			var sum float64
			for t := 0; t < nT; t++ {
				for f := 0; f < nF; f++ {
					v := cd[((t*nS+si)*nR+ri)*nF+f]
					m := cmplx.Abs(v)
					sum += m * m
				}
			}
			fmt.Fprintf(tw, "%.4f\t", sum/float64(nT*nF))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
