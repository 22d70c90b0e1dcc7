// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors consumed and produced by package conv.
//
// # Overview
//
// A Tensor is a contiguous row-major buffer plus a Shape. Images are rank 3
// ([channels, height, width]) and kernel weights are rank 4 ([out, in, k, k]):
//
//	img, _ := tensor.FromFunc3(3, 32, 32, func(c, h, w int) float64 {
//	    return float64(c*100 + h*10 + w)
//	})
//	img.At(2, 3, 4) // 234
//
// # Nested Slices
//
// FromNested3 and FromNested4 convert Go nested slices. Every sub-slice is checked,
// so a ragged input is reported as a *RaggedError naming the offending path:
//
//	_, err := tensor.FromNested3([][][]float64{{{1, 2}, {3}}})
//	// err: ragged tensor at [0 1]: axis 2 has length 1, expected 2
//
// # Printing
//
// Format writes a rank-3 tensor channel by channel with two decimals per value.
// Summarize reports min, max, sum and mean.
package tensor
