// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package conv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convolve/conv"
	"github.com/born-ml/convolve/tensor"
)

func TestConstruct(t *testing.T) {
	weights := [][][][]float64{{
		{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
	}}
	engine, err := conv.Construct(3, 1, 1, 1, 1, weights)
	require.NoError(t, err)
	assert.Equal(t, conv.Same, engine.Config().Padding)

	in := [][][]float64{{{1, 2, 3}, {4, 5, 6}}}
	out, err := engine.ForwardNested(in)
	require.NoError(t, err)
	assert.Equal(t, in, out, "centre tap with SAME padding reproduces the input")

	// Weights are copied on construction.
	weights[0][0][1][1] = 2
	out, err = engine.ForwardNested(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestConstructErrors(t *testing.T) {
	box := [][][][]float64{{{{1}}}}

	tests := []struct {
		name  string
		build func() error
		field string
	}{
		{"kernel size", func() error { _, err := conv.Construct(0, 1, 0, 1, 1, box); return err }, "kernel_size"},
		{"stride", func() error { _, err := conv.Construct(1, -1, 0, 1, 1, box); return err }, "stride"},
		{"padding", func() error { _, err := conv.Construct(1, 1, 7, 1, 1, box); return err }, "padding_mode"},
		{"in channels", func() error { _, err := conv.Construct(1, 1, 0, 0, 1, box); return err }, "input_channels"},
		{"out channels", func() error { _, err := conv.Construct(1, 1, 0, 1, 0, box); return err }, "output_channels"},
		{"empty weights", func() error { _, err := conv.Construct(1, 1, 0, 1, 1, nil); return err }, "weights"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			var cfgErr *conv.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.ErrorIs(t, err, conv.ErrConfig)
		})
	}
}

func TestForwardShapeError(t *testing.T) {
	cfg := conv.Config{KernelSize: 1, Stride: 1, Padding: conv.Valid, InChannels: 2, OutChannels: 1}
	engine, err := conv.New(cfg, conv.BoxFilter(cfg), conv.Sequential())
	require.NoError(t, err)

	_, err = engine.Forward(tensor.Ones(tensor.Shape{3, 4, 4}))
	var shapeErr *conv.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.ErrorIs(t, err, conv.ErrShape)
	assert.Equal(t, 2, shapeErr.Expected)
	assert.Equal(t, 3, shapeErr.Actual)
}

func TestWorkersDoNotChangeResult(t *testing.T) {
	cfg := conv.Config{KernelSize: 3, Stride: 2, Padding: conv.Same, InChannels: 3, OutChannels: 4}
	weights := conv.Xavier(cfg, 42)
	img, err := tensor.FromFunc3(3, 17, 23, func(c, h, w int) float64 { return float64((c+1)*(h-w)) / 7 })
	require.NoError(t, err)

	seq, err := conv.New(cfg, weights, conv.Sequential())
	require.NoError(t, err)
	par, err := conv.New(cfg, weights, conv.WithWorkers(4))
	require.NoError(t, err)

	want, err := seq.Forward(img)
	require.NoError(t, err)
	got, err := par.Forward(img)
	require.NoError(t, err)
	assert.Equal(t, want.Data(), got.Data())
}

func TestGeometry(t *testing.T) {
	cfg := conv.Config{KernelSize: 2, Stride: 1, Padding: conv.Same, InChannels: 1, OutChannels: 1}
	g, err := conv.ComputeGeometry(cfg, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, conv.Geometry{InHeight: 3, InWidth: 3, OutHeight: 3, OutWidth: 3}, g)

	assert.Equal(t, 0, conv.OutputSize(2, 3, 2, conv.Valid))

	mode, err := conv.ParsePaddingMode("Same")
	require.NoError(t, err)
	assert.Equal(t, conv.Same, mode)
}
