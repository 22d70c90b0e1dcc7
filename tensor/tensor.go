// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"io"

	"github.com/born-ml/convolve/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 tensor.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{1, 4, 4})
//	t.Set(5, 0, 1, 2)
//	t.At(0, 1, 2) // 5
type Tensor = tensor.Tensor

// RaggedError reports nested slices whose lengths differ along an axis.
type RaggedError = tensor.RaggedError

// Stats summarizes tensor values.
type Stats = tensor.Stats

// ErrEmpty is returned when nested input has a zero-length axis.
var ErrEmpty = tensor.ErrEmpty

// New allocates a zero-filled tensor.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// Zeros creates a zero-filled tensor. It panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones. It panics on an invalid shape.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value. It panics on an invalid shape.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// FromSlice copies data into a new tensor of the given shape.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromFunc3 builds a [channels, height, width] tensor from f(c, h, w).
func FromFunc3(channels, height, width int, f func(c, h, w int) float64) (*Tensor, error) {
	return tensor.FromFunc3(channels, height, width, f)
}

// FromNested3 converts [c][h][w] slices, rejecting ragged input.
func FromNested3(v [][][]float64) (*Tensor, error) {
	return tensor.FromNested3(v)
}

// FromNested4 converts [o][i][h][w] slices, rejecting ragged input.
func FromNested4(v [][][][]float64) (*Tensor, error) {
	return tensor.FromNested4(v)
}

// Format prints a rank-3 tensor channel by channel under label.
func Format(w io.Writer, t *Tensor, label string) error {
	return tensor.Format(w, t, label)
}

// Summarize returns min, max, sum and mean of t.
func Summarize(t *Tensor) Stats {
	return tensor.Summarize(t)
}
