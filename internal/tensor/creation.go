package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
// Panics if the shape is invalid.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err) // Callers pass known-good shapes
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{1, 3, 3, 3}, 1.0/9)
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor from a flat row-major slice.
// The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != t.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %s (%d elements)",
			len(data), shape, t.NumElements())
	}
	copy(t.data, data)
	return t, nil
}

// FromFunc3 creates a [channels, height, width] tensor with element (c, h, w) set to f(c, h, w).
//
// Example:
//
//	// Ramp image: c*100 + h*10 + w
//	img, _ := tensor.FromFunc3(3, 32, 32, func(c, h, w int) float64 {
//	    return float64(c*100 + h*10 + w)
//	})
func FromFunc3(channels, height, width int, f func(c, h, w int) float64) (*Tensor, error) {
	t, err := New(Shape{channels, height, width})
	if err != nil {
		return nil, err
	}
	i := 0
	for c := 0; c < channels; c++ {
		for h := 0; h < height; h++ {
			for w := 0; w < width; w++ {
				t.data[i] = f(c, h, w)
				i++
			}
		}
	}
	return t, nil
}
