package units

import "testing"

func TestFrequencyConversion(t *testing.T) {
	if got := KHz(1.5).Hertz(); got != 1500 {
		t.Fatalf("KHz(1.5).Hertz() = %v, want 1500", got)
	}
	if got := Hz(250).Kilohertz(); got != 0.25 {
		t.Fatalf("Hz(250).Kilohertz() = %v, want 0.25", got)
	}
}

func TestDurationConversion(t *testing.T) {
	if got := Ms(10).Seconds(); got != 0.01 {
		t.Fatalf("Ms(10).Seconds() = %v, want 0.01", got)
	}
	if got := S(2).Millis(); got != 2000 {
		t.Fatalf("S(2).Millis() = %v, want 2000", got)
	}
}

func TestScaleMagnitude(t *testing.T) {
	if got := CycOct(0.5).CyclesPerOctave(); got != 0.5 {
		t.Fatalf("CycOct(0.5).CyclesPerOctave() = %v, want 0.5", got)
	}
}
