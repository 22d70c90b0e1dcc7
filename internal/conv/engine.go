// Package conv implements a direct 2D cross-correlation engine ("convolution" in the
// machine-learning sense: the kernel is not flipped).
//
// An Engine maps an input image of shape [in_channels, height, width] to an output of shape
// [out_channels, out_height, out_width] using fixed kernel weights of shape
// [out_channels, in_channels, k, k]:
//
//	out[oc][oh][ow] = Σ_ic Σ_kh Σ_kw in[ic][oh*s+kh-padTop][ow*s+kw-padLeft] * w[oc][ic][kh][kw]
//
// Samples outside the input read as 0 (implicit zero padding). Padding is never
// materialized.
package conv

import (
	"fmt"

	"github.com/born-ml/convolve/internal/parallel"
	"github.com/born-ml/convolve/internal/tensor"
)

// Config holds the layer parameters. It is copied into the Engine and never changes.
type Config struct {
	KernelSize  int         // Square kernel side length
	Stride      int         // Step between windows, same on both axes
	Padding     PaddingMode // Valid (0) or Same (1)
	InChannels  int
	OutChannels int
}

// Validate checks the scalar parameters in order and returns the first violation.
func (c Config) Validate() error {
	switch {
	case c.KernelSize <= 0:
		return &ConfigError{Field: "kernel_size", Details: fmt.Sprintf("must be positive, got %d", c.KernelSize)}
	case c.Stride <= 0:
		return &ConfigError{Field: "stride", Details: fmt.Sprintf("must be positive, got %d", c.Stride)}
	case !c.Padding.IsValid():
		return &ConfigError{
			Field:   "padding_mode",
			Details: fmt.Sprintf("must be 0 (VALID) or 1 (SAME), got %d", int(c.Padding)),
		}
	case c.InChannels <= 0:
		return &ConfigError{Field: "input_channels", Details: fmt.Sprintf("must be positive, got %d", c.InChannels)}
	case c.OutChannels <= 0:
		return &ConfigError{Field: "output_channels", Details: fmt.Sprintf("must be positive, got %d", c.OutChannels)}
	}
	return nil
}

// WeightShape returns the expected kernel weight shape [out, in, k, k].
func (c Config) WeightShape() tensor.Shape {
	return tensor.Shape{c.OutChannels, c.InChannels, c.KernelSize, c.KernelSize}
}

// String returns a string representation of the layer.
func (c Config) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%s)",
		c.InChannels, c.OutChannels, c.KernelSize, c.Stride, c.Padding)
}

var weightDims = [4]string{"output channels", "input channels", "kernel rows", "kernel cols"}

// Engine is a configured convolution layer. It is immutable and safe for concurrent use.
type Engine struct {
	cfg     Config
	weights []float64 // [out][in][k][k], row-major, owned
	par     parallel.Config
}

// Option customizes an Engine.
type Option func(*Engine)

// WithParallel sets how Forward spreads output rows over goroutines.
// Results do not depend on this setting.
func WithParallel(cfg parallel.Config) Option {
	return func(e *Engine) {
		e.par = cfg
	}
}

// New creates an Engine from a config and a [out, in, k, k] weight tensor.
//
// The weights are copied; later changes to the caller's tensor do not affect the engine.
// On failure a *ConfigError is returned and no engine is created.
func New(cfg Config, weights *tensor.Tensor, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if weights == nil || weights.NumElements() == 0 {
		return nil, &ConfigError{Field: "weights", Details: "kernel weights cannot be empty"}
	}
	if weights.Rank() != 4 {
		return nil, &ConfigError{Field: "weights", Details: "rank mismatch", Expected: 4, Actual: weights.Rank()}
	}
	want := cfg.WeightShape()
	for i, name := range weightDims {
		if got := weights.Dim(i); got != want[i] {
			return nil, &ConfigError{
				Field:    fmt.Sprintf("weights dim %d", i),
				Details:  name + " mismatch",
				Expected: want[i],
				Actual:   got,
			}
		}
	}

	return newEngine(cfg, weights.Clone().Data(), opts), nil
}

// NewFromNested creates an Engine from nested [out][in][k][k] weights.
//
// Every sub-slice is checked, not only the first, so ragged weights are rejected.
func NewFromNested(cfg Config, weights [][][][]float64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkNestedWeights(cfg, weights); err != nil {
		return nil, err
	}
	t, err := tensor.FromNested4(weights)
	if err != nil {
		return nil, &ConfigError{Field: "weights", Details: err.Error()}
	}
	return newEngine(cfg, t.Data(), opts), nil
}

func newEngine(cfg Config, weights []float64, opts []Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		weights: weights,
		par:     parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func checkNestedWeights(cfg Config, w [][][][]float64) error {
	if len(w) == 0 {
		return &ConfigError{Field: "weights", Details: "kernel weights cannot be empty"}
	}
	if len(w) != cfg.OutChannels {
		return &ConfigError{Field: "weights", Details: "output channels mismatch", Expected: cfg.OutChannels, Actual: len(w)}
	}
	for oc, byIn := range w {
		if len(byIn) != cfg.InChannels {
			return &ConfigError{
				Field:    fmt.Sprintf("weights[%d]", oc),
				Details:  "input channels mismatch",
				Expected: cfg.InChannels,
				Actual:   len(byIn),
			}
		}
		for ic, rows := range byIn {
			if len(rows) != cfg.KernelSize {
				return &ConfigError{
					Field:    fmt.Sprintf("weights[%d][%d]", oc, ic),
					Details:  "kernel rows mismatch",
					Expected: cfg.KernelSize,
					Actual:   len(rows),
				}
			}
			for kh, row := range rows {
				if len(row) != cfg.KernelSize {
					return &ConfigError{
						Field:    fmt.Sprintf("weights[%d][%d][%d]", oc, ic, kh),
						Details:  "kernel cols mismatch",
						Expected: cfg.KernelSize,
						Actual:   len(row),
					}
				}
			}
		}
	}
	return nil
}

// Config returns the layer parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Weights returns a copy of the kernel weights as a [out, in, k, k] tensor.
func (e *Engine) Weights() *tensor.Tensor {
	t := tensor.Zeros(e.cfg.WeightShape())
	copy(t.Data(), e.weights)
	return t
}

// String returns a string representation of the layer.
func (e *Engine) String() string {
	return e.cfg.String()
}
