// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package conv provides a direct 2D cross-correlation layer.
//
// # Overview
//
// An Engine holds fixed kernel weights and maps a [in_channels, height, width] image to a
// [out_channels, out_height, out_width] output. It is the forward pass of a conv layer
// in the machine-learning sense: the kernel is not flipped, there is no bias and no
// activation.
//
//	cfg := conv.Config{KernelSize: 3, Stride: 1, Padding: conv.Valid, InChannels: 3, OutChannels: 1}
//	engine, err := conv.New(cfg, conv.BoxFilter(cfg))
//	if err != nil {
//	    return err
//	}
//	out, err := engine.Forward(img) // img is a [3, H, W] tensor
//
// # Padding
//
// VALID keeps only windows that fit inside the image:
//
//	out = floor((in - k) / stride) + 1
//
// SAME pads with implicit zeros so that out = ceil(in / stride). The total padding is
// (out-1)*stride + k - in; its floor half goes on the top and left edges and the
// remainder falls off the bottom and right edges, where samples read as zero.
//
// # Errors
//
// New and Construct return a *ConfigError (matching ErrConfig) for bad parameters or
// weights. Forward returns a *ShapeError (matching ErrShape) for input the engine cannot
// convolve, including images too small to produce any output.
//
// # Concurrency
//
// An Engine never changes after construction. Forward may be called from many goroutines,
// and its result does not depend on the number of workers.
package conv
