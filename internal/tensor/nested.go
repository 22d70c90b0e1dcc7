package tensor

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a nested slice has a zero-length dimension.
var ErrEmpty = errors.New("tensor is empty")

// RaggedError reports a nested slice whose sub-slices disagree in length.
type RaggedError struct {
	Path     []int // Indices of the offending sub-slice
	Axis     int   // Axis whose length differs
	Expected int   // Length taken from the first sub-slice on that axis
	Actual   int
}

// Error implements the error interface.
func (e *RaggedError) Error() string {
	return fmt.Sprintf("ragged tensor at %v: axis %d has length %d, expected %d",
		e.Path, e.Axis, e.Actual, e.Expected)
}

// FromNested3 copies a [channel][row][col] nested slice into a contiguous tensor.
//
// The shape is taken from the first channel and first row. Every other channel and row
// must match it, otherwise a *RaggedError is returned.
func FromNested3(v [][][]float64) (*Tensor, error) {
	if len(v) == 0 || len(v[0]) == 0 || len(v[0][0]) == 0 {
		return nil, ErrEmpty
	}
	c, h, w := len(v), len(v[0]), len(v[0][0])

	t := Zeros(Shape{c, h, w})
	i := 0
	for ci, ch := range v {
		if len(ch) != h {
			return nil, &RaggedError{Path: []int{ci}, Axis: 1, Expected: h, Actual: len(ch)}
		}
		for hi, row := range ch {
			if len(row) != w {
				return nil, &RaggedError{Path: []int{ci, hi}, Axis: 2, Expected: w, Actual: len(row)}
			}
			i += copy(t.data[i:], row)
		}
	}
	return t, nil
}

// FromNested4 copies a 4D nested slice (for example [out][in][kh][kw] kernel weights)
// into a contiguous tensor. Validation follows FromNested3.
func FromNested4(v [][][][]float64) (*Tensor, error) {
	if len(v) == 0 || len(v[0]) == 0 || len(v[0][0]) == 0 || len(v[0][0][0]) == 0 {
		return nil, ErrEmpty
	}
	d0, d1, d2, d3 := len(v), len(v[0]), len(v[0][0]), len(v[0][0][0])

	t := Zeros(Shape{d0, d1, d2, d3})
	i := 0
	for a, va := range v {
		if len(va) != d1 {
			return nil, &RaggedError{Path: []int{a}, Axis: 1, Expected: d1, Actual: len(va)}
		}
		for b, vb := range va {
			if len(vb) != d2 {
				return nil, &RaggedError{Path: []int{a, b}, Axis: 2, Expected: d2, Actual: len(vb)}
			}
			for c, row := range vb {
				if len(row) != d3 {
					return nil, &RaggedError{Path: []int{a, b, c}, Axis: 3, Expected: d3, Actual: len(row)}
				}
				i += copy(t.data[i:], row)
			}
		}
	}
	return t, nil
}

// Nested3 returns a freshly allocated [d0][d1][d2] copy of a rank-3 tensor.
// Panics if the tensor is not rank 3.
func (t *Tensor) Nested3() [][][]float64 {
	if len(t.shape) != 3 {
		panic(fmt.Sprintf("tensor: Nested3 on rank-%d tensor", len(t.shape)))
	}
	d0, d1, d2 := t.shape[0], t.shape[1], t.shape[2]
	out := make([][][]float64, d0)
	i := 0
	for a := range out {
		out[a] = make([][]float64, d1)
		for b := range out[a] {
			out[a][b] = append([]float64(nil), t.data[i:i+d2]...)
			i += d2
		}
	}
	return out
}

// Nested4 returns a freshly allocated [d0][d1][d2][d3] copy of a rank-4 tensor.
// Panics if the tensor is not rank 4.
func (t *Tensor) Nested4() [][][][]float64 {
	if len(t.shape) != 4 {
		panic(fmt.Sprintf("tensor: Nested4 on rank-%d tensor", len(t.shape)))
	}
	d0, d1, d2, d3 := t.shape[0], t.shape[1], t.shape[2], t.shape[3]
	out := make([][][][]float64, d0)
	i := 0
	for a := range out {
		out[a] = make([][][]float64, d1)
		for b := range out[a] {
			out[a][b] = make([][]float64, d2)
			for c := range out[a][b] {
				out[a][b][c] = append([]float64(nil), t.data[i:i+d3]...)
				i += d3
			}
		}
	}
	return out
}
