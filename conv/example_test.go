// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package conv_test

import (
	"fmt"
	"os"

	"github.com/born-ml/convolve/conv"
	"github.com/born-ml/convolve/tensor"
)

func ramp(c, h, w int) float64 {
	return float64(c*100 + h*10 + w)
}

// A 3x3 box filter summed over three channels.
func Example() {
	cfg := conv.Config{KernelSize: 3, Stride: 1, Padding: conv.Valid, InChannels: 3, OutChannels: 1}
	engine, err := conv.New(cfg, conv.BoxFilter(cfg))
	if err != nil {
		fmt.Println(err)
		return
	}

	img, _ := tensor.FromFunc3(3, 4, 4, ramp)
	out, err := engine.Forward(img)
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = tensor.Format(os.Stdout, out, "Output")
	// Output:
	// Output (Channels: 1, Height: 2, Width: 2)
	// Channel 0:
	//     333.00  336.00
	//     363.00  366.00
}

func ExampleEngine_OutputShape() {
	cfg := conv.Config{KernelSize: 3, Stride: 2, Padding: conv.Same, InChannels: 3, OutChannels: 1}
	engine, _ := conv.New(cfg, conv.BoxFilter(cfg))

	shape, _ := engine.OutputShape(32, 32)
	fmt.Println(shape)
	// Output: 1x16x16
}

func ExampleConstruct() {
	_, err := conv.Construct(3, 1, 2, 1, 1, nil)
	fmt.Println(err)
	// Output: conv: padding_mode: must be 0 (VALID) or 1 (SAME), got 2
}

func ExampleEngine_Forward_tooSmall() {
	cfg := conv.Config{KernelSize: 3, Stride: 1, Padding: conv.Valid, InChannels: 1, OutChannels: 1}
	engine, _ := conv.New(cfg, conv.BoxFilter(cfg))

	_, err := engine.Forward(tensor.Ones(tensor.Shape{1, 2, 2}))
	fmt.Println(err)
	// Output: conv: output: output dimensions non-positive (0x0): check kernel size 3, stride 1, input 2x2
}
