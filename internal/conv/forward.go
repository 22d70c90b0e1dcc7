package conv

import (
	"fmt"

	"github.com/born-ml/convolve/internal/parallel"
	"github.com/born-ml/convolve/internal/tensor"
)

// Geometry describes how one input size maps to an output size.
type Geometry struct {
	InHeight  int
	InWidth   int
	OutHeight int
	OutWidth  int
	PadTop    int // Implicit zero rows before row 0
	PadLeft   int // Implicit zero columns before column 0
}

// ComputeGeometry derives output size and top/left padding for a height x width input.
// Height and width are handled independently, so non-square inputs are fine.
func ComputeGeometry(cfg Config, height, width int) (Geometry, error) {
	if height <= 0 || width <= 0 {
		return Geometry{}, &ShapeError{
			Field:   "input",
			Details: fmt.Sprintf("input image cannot be empty (height=%d, width=%d)", height, width),
		}
	}

	g := Geometry{
		InHeight:  height,
		InWidth:   width,
		OutHeight: OutputSize(height, cfg.KernelSize, cfg.Stride, cfg.Padding),
		OutWidth:  OutputSize(width, cfg.KernelSize, cfg.Stride, cfg.Padding),
	}
	if cfg.Padding == Same {
		g.PadTop = PaddingAmount(height, g.OutHeight, cfg.KernelSize, cfg.Stride)
		g.PadLeft = PaddingAmount(width, g.OutWidth, cfg.KernelSize, cfg.Stride)
	}

	if g.OutHeight <= 0 || g.OutWidth <= 0 {
		return Geometry{}, &ShapeError{
			Field: "output",
			Details: fmt.Sprintf("output dimensions non-positive (%dx%d): check kernel size %d, stride %d, input %dx%d",
				g.OutHeight, g.OutWidth, cfg.KernelSize, cfg.Stride, height, width),
		}
	}
	return g, nil
}

// Geometry derives the output geometry for a height x width input.
func (e *Engine) Geometry(height, width int) (Geometry, error) {
	return ComputeGeometry(e.cfg, height, width)
}

// OutputShape returns [out_channels, out_height, out_width] for a height x width input.
func (e *Engine) OutputShape(height, width int) (tensor.Shape, error) {
	g, err := e.Geometry(height, width)
	if err != nil {
		return nil, err
	}
	return tensor.Shape{e.cfg.OutChannels, g.OutHeight, g.OutWidth}, nil
}

// Forward convolves a [in_channels, height, width] tensor and returns a new
// [out_channels, out_height, out_width] tensor owned by the caller.
//
// Returns a *ShapeError if the input is empty, has the wrong rank or channel count,
// or if the derived output size is not positive.
func (e *Engine) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	if input == nil || input.NumElements() == 0 {
		return nil, &ShapeError{Field: "input", Details: "input image cannot be empty"}
	}
	if input.Rank() != 3 {
		return nil, &ShapeError{Field: "input", Details: "rank mismatch", Expected: 3, Actual: input.Rank()}
	}
	shape := input.Shape()
	if shape[0] != e.cfg.InChannels {
		return nil, &ShapeError{
			Field:    "input",
			Details:  "channel count mismatch",
			Expected: e.cfg.InChannels,
			Actual:   shape[0],
		}
	}

	g, err := e.Geometry(shape[1], shape[2])
	if err != nil {
		return nil, err
	}

	output := tensor.Zeros(tensor.Shape{e.cfg.OutChannels, g.OutHeight, g.OutWidth})
	e.accumulate(output.Data(), input.Data(), g)
	return output, nil
}

// ForwardNested is Forward for nested [channel][row][col] slices.
//
// All channels must share the first channel's height and every row its width;
// ragged input is rejected with a *ShapeError.
func (e *Engine) ForwardNested(input [][][]float64) ([][][]float64, error) {
	if len(input) == 0 || len(input[0]) == 0 || len(input[0][0]) == 0 {
		return nil, &ShapeError{Field: "input", Details: "input image cannot be empty"}
	}
	if len(input) != e.cfg.InChannels {
		return nil, &ShapeError{
			Field:    "input",
			Details:  "channel count mismatch",
			Expected: e.cfg.InChannels,
			Actual:   len(input),
		}
	}

	t, err := tensor.FromNested3(input)
	if err != nil {
		return nil, &ShapeError{Field: "input", Details: err.Error()}
	}
	out, err := e.Forward(t)
	if err != nil {
		return nil, err
	}
	return out.Nested3(), nil
}

// accumulate fills out row by row. Each cell is summed in ic, kh, kw order on a
// single goroutine, so splitting rows across workers does not change any result.
func (e *Engine) accumulate(out, in []float64, g Geometry) {
	k, s := e.cfg.KernelSize, e.cfg.Stride
	inC := e.cfg.InChannels
	h, w := g.InHeight, g.InWidth
	plane := h * w
	filter := inC * k * k

	parallel.ForGrid(e.cfg.OutChannels, g.OutHeight, func(oc, oh int) {
		row := out[(oc*g.OutHeight+oh)*g.OutWidth:][:g.OutWidth]
		kernel := e.weights[oc*filter:][:filter]

		for ow := range row {
			sum := 0.0
			for ic := 0; ic < inC; ic++ {
				for kh := 0; kh < k; kh++ {
					hIdx := oh*s + kh - g.PadTop
					rowIn := hIdx >= 0 && hIdx < h
					for kw := 0; kw < k; kw++ {
						wIdx := ow*s + kw - g.PadLeft

						// Every tap contributes; padding only replaces the sample with 0.
						v := 0.0
						if rowIn && wIdx >= 0 && wIdx < w {
							v = in[ic*plane+hIdx*w+wIdx]
						}
						sum += v * kernel[(ic*k+kh)*k+kw]
					}
				}
			}
			row[ow] = sum
		}
	}, e.par)
}
