package axarr

import (
	"errors"
	"testing"
)

func twoAxes() (Axis, Axis) {
	return Axis{Name: "time", Ticks: []float64{0, 1, 2}},
		Axis{Name: "freq", Ticks: []float64{100, 200}}
}

func TestNewShapeAndStrides(t *testing.T) {
	ta, fa := twoAxes()
	a, err := New[float64](ta, fa)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.NumDims() != 2 {
		t.Fatalf("NumDims = %d, want 2", a.NumDims())
	}
	if a.Dim(0) != 3 || a.Dim(1) != 2 {
		t.Fatalf("shape = %v, want [3 2]", a.Shape())
	}
	if a.Stride(0) != 2 || a.Stride(1) != 1 {
		t.Fatalf("strides = [%d %d], want [2 1]", a.Stride(0), a.Stride(1))
	}
	if len(a.Data()) != 6 {
		t.Fatalf("data length = %d, want 6", len(a.Data()))
	}
}

func TestAtSetRowMajor(t *testing.T) {
	ta, fa := twoAxes()
	a, _ := New[float64](ta, fa)
	a.Set(7, 2, 1)
	if a.Data()[5] != 7 {
		t.Fatalf("Set(2,1) wrote to flat index %v, want 5", a.Data())
	}
	if a.At(2, 1) != 7 {
		t.Fatalf("At(2,1) = %v, want 7", a.At(2, 1))
	}
}

func TestAxisLookup(t *testing.T) {
	ta, fa := twoAxes()
	fa.Bounds = &Bounds{Low: 1, High: 4}
	a, _ := New[complex128](ta, fa)

	i, ok := a.AxisIndex("freq")
	if !ok || i != 1 {
		t.Fatalf("AxisIndex(freq) = %d, %v", i, ok)
	}
	ax, err := a.Axis("freq")
	if err != nil {
		t.Fatalf("Axis(freq): %v", err)
	}
	if ax.Bounds == nil || ax.Bounds.High != 4 {
		t.Fatalf("bounds not preserved: %+v", ax.Bounds)
	}
	if _, err := a.Axis("rate"); !errors.Is(err, ErrUnknownAxis) {
		t.Fatalf("Axis(rate) error = %v, want ErrUnknownAxis", err)
	}
}

func TestFindAxisKeyword(t *testing.T) {
	a, _ := New[float64](
		Axis{Name: "logtime", Ticks: []float64{0}},
		Axis{Name: "freq", Ticks: []float64{1}},
	)
	if i, ok := a.FindAxis("time"); !ok || i != 0 {
		t.Fatalf("FindAxis(time) = %d, %v", i, ok)
	}
	if i, ok := a.FindAxis("freq"); !ok || i != 1 {
		t.Fatalf("FindAxis(freq) = %d, %v", i, ok)
	}
	if _, ok := a.FindAxis("rate"); ok {
		t.Fatal("FindAxis(rate) unexpectedly succeeded")
	}
}

func TestConstructionErrors(t *testing.T) {
	ta, fa := twoAxes()

	if _, err := New[float64](); !errors.Is(err, ErrNoAxes) {
		t.Fatalf("no axes: %v", err)
	}
	if _, err := New[float64](Axis{Name: "", Ticks: []float64{1}}); !errors.Is(err, ErrUnnamedAxis) {
		t.Fatalf("unnamed axis: %v", err)
	}
	if _, err := New[float64](Axis{Name: "time"}); !errors.Is(err, ErrEmptyAxis) {
		t.Fatalf("empty axis: %v", err)
	}
	if _, err := New[float64](ta, ta); !errors.Is(err, ErrDuplicateAxis) {
		t.Fatalf("duplicate axis: %v", err)
	}
	if _, err := FromData([]float64{1, 2, 3}, ta, fa); !errors.Is(err, ErrDataSize) {
		t.Fatalf("bad data size: %v", err)
	}
}

func TestInsertedRemoved(t *testing.T) {
	ta, fa := twoAxes()
	sc := Axis{Name: "scale", Ticks: []float64{0.5, 2}}
	rt := Axis{Name: "rate", Ticks: []float64{-4, 4}}

	ins := Inserted([]Axis{ta, fa}, 1, sc, rt)
	want := []string{"time", "scale", "rate", "freq"}
	for i, name := range want {
		if ins[i].Name != name {
			t.Fatalf("Inserted order = %v at %d, want %v", ins[i].Name, i, name)
		}
	}

	rem, err := Removed(ins, "scale", "rate")
	if err != nil {
		t.Fatalf("Removed: %v", err)
	}
	if len(rem) != 2 || rem[0].Name != "time" || rem[1].Name != "freq" {
		t.Fatalf("Removed = %v", rem)
	}
	if _, err := Removed(ins, "nope"); !errors.Is(err, ErrUnknownAxis) {
		t.Fatalf("Removed(nope) error = %v", err)
	}
}
