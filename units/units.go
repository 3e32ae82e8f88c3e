// Package units provides the unit-tagged scalar quantities used by the
// model: modulation rates in hertz, time steps in seconds, and spectral
// modulation scales in cycles per octave.
//
// Each quantity is a typed float64 holding its value in the base unit.
// Constructors exist for the common equivalent units (kHz, ms) and convert
// on construction, so extracting the raw magnitude is a plain accessor.
package units

// Frequency is a temporal modulation frequency stored in hertz.
type Frequency float64

// Hz constructs a Frequency from a value in hertz.
func Hz(v float64) Frequency { return Frequency(v) }

// KHz constructs a Frequency from a value in kilohertz.
func KHz(v float64) Frequency { return Frequency(v * 1000) }

// Hertz returns the raw magnitude in hertz.
func (f Frequency) Hertz() float64 { return float64(f) }

// Kilohertz returns the magnitude converted to kilohertz.
func (f Frequency) Kilohertz() float64 { return float64(f) / 1000 }

// Duration is a time interval stored in seconds.
type Duration float64

// S constructs a Duration from a value in seconds.
func S(v float64) Duration { return Duration(v) }

// Ms constructs a Duration from a value in milliseconds.
func Ms(v float64) Duration { return Duration(v / 1000) }

// Seconds returns the raw magnitude in seconds.
func (d Duration) Seconds() float64 { return float64(d) }

// Millis returns the magnitude converted to milliseconds.
func (d Duration) Millis() float64 { return float64(d) * 1000 }

// Scale is a spectral modulation frequency stored in cycles per octave.
type Scale float64

// CycOct constructs a Scale from a value in cycles per octave.
func CycOct(v float64) Scale { return Scale(v) }

// CyclesPerOctave returns the raw magnitude in cycles per octave.
func (s Scale) CyclesPerOctave() float64 { return float64(s) }
