package cortical

import (
	"math"
	"testing"

	"github.com/haberdashPI/ShammaModel/axarr"
	"github.com/haberdashPI/ShammaModel/units"
)

func TestClassifyAgainstBounds(t *testing.T) {
	b := axarr.Bounds{Low: 1, High: 4}
	cases := []struct {
		mag  float64
		want FilterKind
	}{
		{0.5, KindLow},
		{1, KindLow},  // at the low bound
		{2, KindBand}, // strictly inside
		{4, KindHigh}, // at the high bound
		{8, KindHigh},
	}
	for _, tc := range cases {
		if got := classify(tc.mag, b); got != tc.want {
			t.Errorf("classify(%v) = %v, want %v", tc.mag, got, tc.want)
		}
	}
}

func TestClassifyBandOnly(t *testing.T) {
	spec, err := NewRateSpec([]units.Frequency{units.Hz(-4), units.Hz(1), units.Hz(4)}, WithBandOnly())
	if err != nil {
		t.Fatalf("NewRateSpec: %v", err)
	}
	b := spec.bounds()
	if !math.IsInf(b.Low, -1) || !math.IsInf(b.High, 1) {
		t.Fatalf("band-only bounds = %+v, want (-Inf, +Inf)", b)
	}
	for _, mag := range []float64{0.001, 1, 4, 1000} {
		if got := classify(mag, b); got != KindBand {
			t.Errorf("classify(%v) = %v, want band under band-only", mag, got)
		}
	}
}

func TestSpecBounds(t *testing.T) {
	spec, err := NewRateSpec([]units.Frequency{units.Hz(-8), units.Hz(-2), units.Hz(2), units.Hz(8)})
	if err != nil {
		t.Fatalf("NewRateSpec: %v", err)
	}
	b := spec.bounds()
	if b.Low != 2 || b.High != 8 {
		t.Fatalf("bounds = %+v, want {2 8}", b)
	}
}

func TestRateFiltersOrderAndCount(t *testing.T) {
	values := []units.Frequency{units.Hz(4), units.Hz(-1), units.Hz(1), units.Hz(-4)}
	spec, err := NewRateSpec(values)
	if err != nil {
		t.Fatalf("NewRateSpec: %v", err)
	}
	const padTime = 128
	bank, err := rateFilters(padTime, spec, spec.bounds(), units.Ms(10), false)
	if err != nil {
		t.Fatalf("rateFilters: %v", err)
	}
	if len(bank) != len(values) {
		t.Fatalf("bank has %d channels, want %d", len(bank), len(values))
	}
	for i, h := range bank {
		if len(h) != padTime {
			t.Fatalf("channel %d has %d bins, want %d", i, len(h), padTime)
		}
	}
	// Spec order is preserved: channel 1 (-1 Hz) mirrors channel 2 (+1 Hz),
	// so its energy sits in the upper half while channel 2's sits below.
	if bank[1][padTime/4] != 0 {
		t.Fatalf("negative-rate channel has lower-half energy at bin %d", padTime/4)
	}
	if bank[2][padTime-padTime/4] != 0 {
		t.Fatalf("positive-rate channel has upper-half energy")
	}
}

func TestScaleFiltersOrderAndCount(t *testing.T) {
	values := []units.Scale{units.CycOct(2), units.CycOct(0.5), units.CycOct(1)}
	spec, err := NewScaleSpec(values)
	if err != nil {
		t.Fatalf("NewScaleSpec: %v", err)
	}
	const padFreq = 128
	bank, err := scaleFilters(padFreq, spec, spec.bounds(), 24)
	if err != nil {
		t.Fatalf("scaleFilters: %v", err)
	}
	if len(bank) != len(values) {
		t.Fatalf("bank has %d channels, want %d", len(bank), len(values))
	}
	for i, h := range bank {
		if len(h) != padFreq/2 {
			t.Fatalf("channel %d has %d bins, want %d", i, len(h), padFreq/2)
		}
	}
	// Spec order preserved: the first channel (2 cyc/oct) peaks higher than
	// the last (1 cyc/oct).
	if argmax(bank[0]) <= argmax(bank[2]) {
		t.Fatalf("peaks out of order: %d vs %d", argmax(bank[0]), argmax(bank[2]))
	}
}

func TestTimeStep(t *testing.T) {
	ax := axarr.Axis{Name: "time", Ticks: []float64{0, 0.01, 0.02}}
	dt, err := timeStep(ax)
	if err != nil {
		t.Fatalf("timeStep: %v", err)
	}
	if math.Abs(dt.Seconds()-0.01) > 1e-15 {
		t.Fatalf("dt = %v, want 0.01", dt.Seconds())
	}
	if _, err := timeStep(axarr.Axis{Name: "time", Ticks: []float64{0}}); err == nil {
		t.Fatal("single-tick axis accepted")
	}
}

func TestFreqResolution(t *testing.T) {
	// 24 ticks per octave.
	ticks := make([]float64, 4)
	for i := range ticks {
		ticks[i] = 440 * math.Pow(2, float64(i)/24)
	}
	ax := axarr.Axis{Name: "freq", Ticks: ticks}
	spo, err := freqResolution(ax)
	if err != nil {
		t.Fatalf("freqResolution: %v", err)
	}
	if math.Abs(spo-24) > 1e-9 {
		t.Fatalf("samples per octave = %v, want 24", spo)
	}
	if _, err := freqResolution(axarr.Axis{Name: "freq", Ticks: []float64{-1, 2}}); err == nil {
		t.Fatal("non-positive frequency ticks accepted")
	}
}

func TestChannelBoundsPrefersAxisRecord(t *testing.T) {
	spec, _ := NewScaleSpec([]units.Scale{units.CycOct(1), units.CycOct(2)})
	ax := spec.axis()
	ax.Bounds = &axarr.Bounds{Low: 0.25, High: 16}
	b := channelBounds(ax, spec)
	if b.Low != 0.25 || b.High != 16 {
		t.Fatalf("bounds = %+v, want axis record {0.25 16}", b)
	}
	ax.Bounds = nil
	b = channelBounds(ax, spec)
	if b.Low != 1 || b.High != 2 {
		t.Fatalf("bounds = %+v, want spec-derived {1 2}", b)
	}
}
