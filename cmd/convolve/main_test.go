package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convolve/internal/config"
	"github.com/born-ml/convolve/internal/conv"
	"github.com/born-ml/convolve/internal/serialization"
)

func TestDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, demoCmd(&buf, nil))

	out := buf.String()
	assert.Contains(t, out, "Input Dimensions: 3x32x32")
	assert.Contains(t, out, "--- valid-stride1: Conv2D(in_channels=3, out_channels=1, kernel_size=3, stride=1, padding=VALID) ---")
	assert.Contains(t, out, "Output Image (Channels: 1, Height: 30, Width: 30)")
	assert.Contains(t, out, "Output Image (Channels: 1, Height: 16, Width: 16)")
	assert.Contains(t, out, "  333.00")

	buf.Reset()
	require.NoError(t, demoCmd(&buf, []string{"-quiet"}))
	assert.NotContains(t, buf.String(), "Output Image")
	assert.Contains(t, buf.String(), "Output Dimensions: 1x16x16")
}

func TestRunSaves(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	outPath := filepath.Join(dir, "out.safetensors")
	weightsPath := filepath.Join(dir, "weights.safetensors")

	data, err := config.Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o600))

	var buf bytes.Buffer
	err = runCmd(&buf, []string{"-config", cfgPath, "-save-output", outPath, "-save-weights", weightsPath})
	require.NoError(t, err)

	outputs, err := serialization.ReadSafeTensors(outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"output.same-stride2", "output.valid-stride1"}, outputs.Names())

	weights, err := serialization.ReadSafeTensors(weightsPath)
	require.NoError(t, err)
	w, err := weights.Tensor("valid-stride1.weight")
	require.NoError(t, err)
	assert.Equal(t, 1.0, w.At(0, 1, 1, 1))
}

func TestRunRequiresConfig(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, runCmd(&buf, nil))
}

// TestExecuteReportsLayerErrors keeps going after a layer fails.
func TestExecuteReportsLayerErrors(t *testing.T) {
	f := config.Default()
	f.Input.Height, f.Input.Width = 2, 2
	f.Layers[0].Name = "too-big"

	var buf bytes.Buffer
	err := execute(&buf, f, options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, conv.ErrShape)
	assert.Contains(t, buf.String(), "Error: conv: output: output dimensions non-positive")
	assert.Contains(t, buf.String(), "Output Dimensions: 1x1x1", "the SAME layer still runs")
}
