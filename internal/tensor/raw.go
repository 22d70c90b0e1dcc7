package tensor

import (
	"fmt"
)

// Tensor is a dense float64 tensor stored as one contiguous row-major buffer.
//
// Element (i0, i1, ..., in) lives at data[i0*stride[0] + i1*stride[1] + ... + in].
// For the 3D images used by the convolution engine that is
// index = (c*H + h)*W + w.
type Tensor struct {
	data   []float64
	shape  Shape
	stride []int
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("invalid shape: rank must be > 0")
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Tensor{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the backing buffer.
// WARNING: Direct access to underlying memory. Writes are visible to every holder of t.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Offset returns the flat buffer index of the given coordinates.
// Panics if the number of coordinates does not match the rank or any coordinate is out of range.
func (t *Tensor) Offset(idx ...int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: expected %d indices, got %d", len(t.shape), len(idx)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range [0, %d) on axis %d", v, t.shape[i], i))
		}
		off += v * t.stride[i]
	}
	return off
}

// At returns the element at the given coordinates.
func (t *Tensor) At(idx ...int) float64 {
	return t.data[t.Offset(idx...)]
}

// Set stores v at the given coordinates.
func (t *Tensor) Set(v float64, idx ...int) {
	t.data[t.Offset(idx...)] = v
}

// Clone returns a deep copy that shares no memory with t.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{
		data:   data,
		shape:  t.shape.Clone(),
		stride: append([]int(nil), t.stride...),
	}
}

// String returns a short description such as "Tensor(3x32x32)".
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s)", t.shape)
}
