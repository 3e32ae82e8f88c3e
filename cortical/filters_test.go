package cortical

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestAskindBandIsIdentity(t *testing.T) {
	h := []float64{0.1, 0.4, 1.0, 0.3, 0.05}
	want := append([]float64(nil), h...)
	got, err := askind(h, len(h), 2, KindBand, false)
	if err != nil {
		t.Fatalf("askind: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("band kind modified bin %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAskindLowShelf(t *testing.T) {
	h := []float64{0.1, 0.4, 1.0, 0.3, 0.05}
	oldSum := floats.Sum(h)
	got, err := askind(h, len(h), 2, KindLow, false)
	if err != nil {
		t.Fatalf("askind: %v", err)
	}
	// Bins below the peak become a flat shelf; relative shape above the
	// peak is preserved.
	if got[0] != got[1] {
		t.Fatalf("low shelf not flat: %v vs %v", got[0], got[1])
	}
	if math.Abs(floats.Sum(got)-oldSum) > 1e-12 {
		t.Fatalf("energy sum changed: %v, want %v", floats.Sum(got), oldSum)
	}
}

func TestAskindHighShelf(t *testing.T) {
	h := []float64{0.1, 0.4, 1.0, 0.3, 0.05}
	oldSum := floats.Sum(h)
	got, err := askind(h, len(h), 2, KindHigh, false)
	if err != nil {
		t.Fatalf("askind: %v", err)
	}
	if got[3] != got[4] {
		t.Fatalf("high shelf not flat: %v vs %v", got[3], got[4])
	}
	if math.Abs(floats.Sum(got)-oldSum) > 1e-12 {
		t.Fatalf("energy sum changed: %v, want %v", floats.Sum(got), oldSum)
	}
}

func TestAskindSkipNormalization(t *testing.T) {
	h := []float64{0.1, 0.4, 1.0, 0.3, 0.05}
	got, err := askind(h, len(h), 2, KindLow, true)
	if err != nil {
		t.Fatalf("askind: %v", err)
	}
	if got[0] != 1 || got[1] != 1 {
		t.Fatalf("shelf bins = %v, %v, want 1, 1", got[0], got[1])
	}
}

func TestAskindUnknownKind(t *testing.T) {
	_, err := askind([]float64{1}, 1, 0, FilterKind(42), false)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("error = %v, want ErrUnknownKind", err)
	}
}

func TestRateFilterLengthAndPeak(t *testing.T) {
	const length = 64
	h, err := rateFilter(4, length, 0.01, KindBand, false)
	if err != nil {
		t.Fatalf("rateFilter: %v", err)
	}
	if len(h) != 2*length {
		t.Fatalf("len = %d, want %d", len(h), 2*length)
	}
	// Upper half stays zero for a positive rate.
	for k := length; k < 2*length; k++ {
		if h[k] != 0 {
			t.Fatalf("bin %d = %v, want 0 (positive rate is single-sided)", k, h[k])
		}
	}
	// Magnitude is normalized to a unit peak.
	peak := 0.0
	for _, v := range h {
		peak = math.Max(peak, cmplx.Abs(v))
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Fatalf("peak magnitude = %v, want 1", peak)
	}
}

func TestRateFilterHermitianMirror(t *testing.T) {
	const length = 32
	pos, err := rateFilter(2, length, 0.01, KindBand, false)
	if err != nil {
		t.Fatalf("rateFilter(+2): %v", err)
	}
	neg, err := rateFilter(-2, length, 0.01, KindBand, false)
	if err != nil {
		t.Fatalf("rateFilter(-2): %v", err)
	}
	n := 2 * length
	for k := 1; k < n; k++ {
		if k == length {
			continue // Nyquist bin is patched separately
		}
		want := cmplx.Conj(pos[n-k])
		if cmplx.Abs(neg[k]-want) > 1e-12 {
			t.Fatalf("bin %d: %v, want conj(pos[%d]) = %v", k, neg[k], n-k, want)
		}
	}
	wantNyq := complex(cmplx.Abs(neg[length+1]), 0)
	if cmplx.Abs(neg[length]-wantNyq) > 1e-12 {
		t.Fatalf("Nyquist bin = %v, want neighbor magnitude %v", neg[length], wantNyq)
	}
}

func TestRateFilterConjugate(t *testing.T) {
	const length = 32
	plain, _ := rateFilter(4, length, 0.01, KindBand, false)
	conj, _ := rateFilter(4, length, 0.01, KindBand, true)
	for k := range plain {
		if cmplx.Abs(conj[k]-cmplx.Conj(plain[k])) > 1e-12 {
			t.Fatalf("bin %d: %v, want %v", k, conj[k], cmplx.Conj(plain[k]))
		}
	}
}

func TestScaleFilterPeak(t *testing.T) {
	const (
		length = 64
		spo    = 24.0
	)
	h, err := scaleFilter(2, length, spo, KindBand)
	if err != nil {
		t.Fatalf("scaleFilter: %v", err)
	}
	if len(h) != length {
		t.Fatalf("len = %d, want %d", len(h), length)
	}
	// Peak sits where the normalized bin frequency crosses 1:
	// k = length * 2*scale/spo.
	peak := argmax(h)
	wantPeak := float64(length) * 2 * 2 / spo
	if math.Abs(float64(peak)-wantPeak) > 1 {
		t.Fatalf("peak at bin %d, want ~%.1f", peak, wantPeak)
	}
	if h[peak] < 0.95 || h[peak] > 1.0+1e-12 {
		t.Fatalf("peak value = %v, want ~1", h[peak])
	}
	for i, v := range h {
		if v < 0 {
			t.Fatalf("bin %d negative: %v", i, v)
		}
	}
}

func TestScaleFilterLowKindShelfs(t *testing.T) {
	h, err := scaleFilter(0.5, 64, 24, KindLow)
	if err != nil {
		t.Fatalf("scaleFilter: %v", err)
	}
	// Low-pass keeps the response from rolling off toward DC: the shelf
	// below the peak is flat.
	peak := argmax(h)
	for i := 1; i < peak; i++ {
		if math.Abs(h[i]-h[0]) > 1e-12 {
			t.Fatalf("shelf not flat at bin %d: %v vs %v", i, h[i], h[0])
		}
	}
}
