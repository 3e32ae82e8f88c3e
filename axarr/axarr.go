// Package axarr implements a dense N-dimensional array whose dimensions are
// addressed by name rather than position.
//
// Each dimension carries an [Axis]: a name, the ordered tick values along
// that dimension, and an optional [Bounds] record. Lookups are explicit map
// queries through [Array.AxisIndex]; no reflection or type-based dispatch is
// involved. Storage is row-major with precomputed strides, exposed through
// [Array.Data] for bulk numeric code.
package axarr

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by array construction and axis lookups.
var (
	ErrNoAxes        = errors.New("axarr: array requires at least one axis")
	ErrEmptyAxis     = errors.New("axarr: axis has no ticks")
	ErrUnnamedAxis   = errors.New("axarr: axis has no name")
	ErrDuplicateAxis = errors.New("axarr: duplicate axis name")
	ErrUnknownAxis   = errors.New("axarr: no such axis")
	ErrDataSize      = errors.New("axarr: data length does not match shape")
)

// Bounds records the magnitude thresholds attached to a decomposition axis.
// Values at or below Low classify as low-pass, at or above High as high-pass.
type Bounds struct {
	Low  float64
	High float64
}

// Axis describes one named dimension: its ordered tick values and an
// optional bounds record.
type Axis struct {
	Name   string
	Ticks  []float64
	Bounds *Bounds
}

// Len returns the number of ticks along the axis.
func (a Axis) Len() int { return len(a.Ticks) }

// Elem constrains the element types an Array can hold.
type Elem interface {
	~float64 | ~complex128
}

// Array is a dense row-major N-dimensional array with named axes.
type Array[T Elem] struct {
	axes    []Axis
	shape   []int
	strides []int
	index   map[string]int
	data    []T
}

// New allocates a zero-filled array with the given axes. The shape is taken
// from the tick count of each axis. Axis names must be non-empty and unique.
func New[T Elem](axes ...Axis) (*Array[T], error) {
	a, err := newMeta[T](axes)
	if err != nil {
		return nil, err
	}
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	a.data = make([]T, n)
	return a, nil
}

// FromData wraps an existing row-major data slice with the given axes.
// The slice is used directly, not copied.
func FromData[T Elem](data []T, axes ...Axis) (*Array[T], error) {
	a, err := newMeta[T](axes)
	if err != nil {
		return nil, err
	}
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: have %d elements, shape needs %d", ErrDataSize, len(data), n)
	}
	a.data = data
	return a, nil
}

func newMeta[T Elem](axes []Axis) (*Array[T], error) {
	if len(axes) == 0 {
		return nil, ErrNoAxes
	}
	a := &Array[T]{
		axes:    make([]Axis, len(axes)),
		shape:   make([]int, len(axes)),
		strides: make([]int, len(axes)),
		index:   make(map[string]int, len(axes)),
	}
	for i, ax := range axes {
		if ax.Name == "" {
			return nil, fmt.Errorf("%w: dimension %d", ErrUnnamedAxis, i)
		}
		if len(ax.Ticks) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyAxis, ax.Name)
		}
		if _, dup := a.index[ax.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAxis, ax.Name)
		}
		a.axes[i] = ax
		a.shape[i] = len(ax.Ticks)
		a.index[ax.Name] = i
	}
	stride := 1
	for i := len(axes) - 1; i >= 0; i-- {
		a.strides[i] = stride
		stride *= a.shape[i]
	}
	return a, nil
}

// NumDims returns the number of dimensions.
func (a *Array[T]) NumDims() int { return len(a.axes) }

// Shape returns a copy of the dimension extents.
func (a *Array[T]) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Dim returns the extent of dimension i.
func (a *Array[T]) Dim(i int) int { return a.shape[i] }

// Stride returns the row-major stride of dimension i.
func (a *Array[T]) Stride(i int) int { return a.strides[i] }

// Axes returns a copy of the axis metadata, in dimension order.
func (a *Array[T]) Axes() []Axis {
	return append([]Axis(nil), a.axes...)
}

// AxisIndex returns the dimension index of the axis with the given name.
func (a *Array[T]) AxisIndex(name string) (int, bool) {
	i, ok := a.index[name]
	return i, ok
}

// HasAxis reports whether an axis with the given name exists.
func (a *Array[T]) HasAxis(name string) bool {
	_, ok := a.index[name]
	return ok
}

// Axis returns the axis with the given name.
func (a *Array[T]) Axis(name string) (Axis, error) {
	i, ok := a.index[name]
	if !ok {
		return Axis{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
	}
	return a.axes[i], nil
}

// FindAxis returns the index of the first axis whose name contains the given
// role keyword, preferring an exact name match.
func (a *Array[T]) FindAxis(keyword string) (int, bool) {
	if i, ok := a.index[keyword]; ok {
		return i, true
	}
	for i, ax := range a.axes {
		if strings.Contains(ax.Name, keyword) {
			return i, true
		}
	}
	return 0, false
}

// Data returns the backing row-major slice.
func (a *Array[T]) Data() []T { return a.data }

// Offset returns the flat index of the given multi-dimensional index.
func (a *Array[T]) Offset(idx ...int) int {
	off := 0
	for i, j := range idx {
		off += j * a.strides[i]
	}
	return off
}

// At returns the element at the given multi-dimensional index.
func (a *Array[T]) At(idx ...int) T { return a.data[a.Offset(idx...)] }

// Set stores v at the given multi-dimensional index.
func (a *Array[T]) Set(v T, idx ...int) { a.data[a.Offset(idx...)] = v }

// Inserted returns a new axis list with extra axes spliced in at position
// pos. The input slices are not modified.
func Inserted(axes []Axis, pos int, extra ...Axis) []Axis {
	out := make([]Axis, 0, len(axes)+len(extra))
	out = append(out, axes[:pos]...)
	out = append(out, extra...)
	out = append(out, axes[pos:]...)
	return out
}

// Removed returns a new axis list with the named axes dropped. It is an
// error to name an axis that is not present.
func Removed(axes []Axis, names ...string) ([]Axis, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = false
	}
	out := make([]Axis, 0, len(axes))
	for _, ax := range axes {
		if _, ok := drop[ax.Name]; ok {
			drop[ax.Name] = true
			continue
		}
		out = append(out, ax)
	}
	for n, seen := range drop {
		if !seen {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, n)
		}
	}
	return out, nil
}
