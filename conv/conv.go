// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package conv

import (
	"github.com/born-ml/convolve/internal/conv"
	"github.com/born-ml/convolve/internal/parallel"
	"github.com/born-ml/convolve/tensor"
)

// Engine is a configured, immutable convolution layer.
type Engine = conv.Engine

// Config holds kernel size, stride, padding mode and channel counts.
type Config = conv.Config

// Geometry describes input, output and padding sizes for one input.
type Geometry = conv.Geometry

// Option customizes an Engine.
type Option = conv.Option

// PaddingMode selects VALID (0) or SAME (1) border handling.
type PaddingMode = conv.PaddingMode

// Padding modes.
const (
	Valid PaddingMode = conv.Valid
	Same  PaddingMode = conv.Same
)

// ConfigError reports an invalid layer parameter or malformed weights.
type ConfigError = conv.ConfigError

// ShapeError reports an input that cannot be convolved.
type ShapeError = conv.ShapeError

// Sentinel errors for errors.Is.
var (
	ErrConfig = conv.ErrConfig
	ErrShape  = conv.ErrShape
)

// New creates an Engine from a [out, in, k, k] weight tensor. The weights are copied.
func New(cfg Config, weights *tensor.Tensor, opts ...Option) (*Engine, error) {
	return conv.New(cfg, weights, opts...)
}

// NewFromNested creates an Engine from [out][in][k][k] nested weights. The weights are copied.
func NewFromNested(cfg Config, weights [][][][]float64, opts ...Option) (*Engine, error) {
	return conv.NewFromNested(cfg, weights, opts...)
}

// Construct creates an Engine from positional parameters. padding is 0 for VALID and
// 1 for SAME; any other value is a *ConfigError.
//
// Example:
//
//	engine, err := conv.Construct(3, 2, 1, 3, 1, weights) // k=3, stride 2, SAME, 3 -> 1 channels
func Construct(kernelSize, stride, padding, inChannels, outChannels int, weights [][][][]float64) (*Engine, error) {
	cfg := Config{
		KernelSize:  kernelSize,
		Stride:      stride,
		Padding:     PaddingMode(padding),
		InChannels:  inChannels,
		OutChannels: outChannels,
	}
	return conv.NewFromNested(cfg, weights)
}

// ParsePaddingMode parses "valid", "same" (any case), "0" or "1".
func ParsePaddingMode(s string) (PaddingMode, error) {
	return conv.ParsePaddingMode(s)
}

// OutputSize returns the output length along one axis. It may be non-positive.
func OutputSize(inputDim, kernelSize, stride int, mode PaddingMode) int {
	return conv.OutputSize(inputDim, kernelSize, stride, mode)
}

// ComputeGeometry returns the output size and leading padding for a height x width input.
func ComputeGeometry(cfg Config, height, width int) (Geometry, error) {
	return conv.ComputeGeometry(cfg, height, width)
}

// WithWorkers spreads Forward over n goroutines. n <= 0 uses one per physical core.
func WithWorkers(n int) Option {
	cfg := parallel.DefaultConfig()
	if n > 0 {
		cfg.NumWorkers = n
		cfg.Enabled = n > 1
	}
	return conv.WithParallel(cfg)
}

// Sequential runs Forward on the calling goroutine.
func Sequential() Option {
	return conv.WithParallel(parallel.Sequential())
}

// BoxFilter returns weights of 1/(k*k) everywhere.
func BoxFilter(cfg Config) *tensor.Tensor {
	return conv.BoxFilter(cfg)
}

// Identity returns weights with a centre tap of 1 where output channel equals input channel.
func Identity(cfg Config) *tensor.Tensor {
	return conv.Identity(cfg)
}

// Xavier returns seeded uniform Glorot weights.
func Xavier(cfg Config, seed int64) *tensor.Tensor {
	return conv.Xavier(cfg, seed)
}
