// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/born-ml/convolve/tensor"
)

// TestTensorAPI verifies the Tensor alias exposes the expected API.
func TestTensorAPI(t *testing.T) {
	x, err := tensor.New(tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", x.Shape())
	}
	if n := x.NumElements(); n != 6 {
		t.Errorf("NumElements() = %d, want 6", n)
	}

	x.Set(7, 1, 2)
	if got := x.Data()[5]; got != 7 {
		t.Errorf("Data()[5] = %v, want 7", got)
	}

	clone := x.Clone()
	clone.Set(0, 1, 2)
	if x.At(1, 2) != 7 {
		t.Error("Clone() must not share data")
	}
}

func TestFromNested3Ragged(t *testing.T) {
	_, err := tensor.FromNested3([][][]float64{{{1, 2}, {3}}})
	var ragged *tensor.RaggedError
	if !errors.As(err, &ragged) {
		t.Fatalf("expected *RaggedError, got %v", err)
	}
	if ragged.Axis != 2 || ragged.Expected != 2 || ragged.Actual != 1 {
		t.Errorf("unexpected ragged error: %+v", ragged)
	}

	if _, err := tensor.FromNested3(nil); !errors.Is(err, tensor.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestFormatAndSummarize(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	var buf bytes.Buffer
	if err := tensor.Format(&buf, x, "Output"); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Output (Channels: 1, Height: 2, Width: 2)\nChannel 0:\n") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}

	stats := tensor.Summarize(x)
	if stats.Min != 1 || stats.Max != 4 || stats.Sum != 10 || stats.Mean != 2.5 {
		t.Errorf("Summarize() = %+v", stats)
	}
}
