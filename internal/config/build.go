package config

import (
	"fmt"

	"github.com/born-ml/convolve/internal/conv"
	"github.com/born-ml/convolve/internal/serialization"
	"github.com/born-ml/convolve/internal/tensor"
)

// Stage is a layer together with its ready engine.
type Stage struct {
	Layer  Layer
	Engine *conv.Engine
}

// BuildWeights produces the [out, in, k, k] kernel for cfg according to the weights section.
func (f *File) BuildWeights(cfg conv.Config) (*tensor.Tensor, error) {
	switch f.Weights.Init {
	case InitBox:
		return conv.BoxFilter(cfg), nil
	case InitDemo:
		return demoWeights(cfg), nil
	case InitIdentity:
		return conv.Identity(cfg), nil
	case InitZeros:
		return tensor.Zeros(cfg.WeightShape()), nil
	case InitXavier:
		return conv.Xavier(cfg, f.Weights.Seed), nil
	case InitFile:
		name := f.Weights.Tensor
		if name == "" {
			name = serialization.WeightTensor
		}
		return loadTensor(f.Weights.File, name)
	default:
		return nil, fmt.Errorf("%w: unknown weights.init %q", ErrInvalid, f.Weights.Init)
	}
}

// demoWeights is a box blur where output channel 0 passes input channel 1 through unchanged.
func demoWeights(cfg conv.Config) *tensor.Tensor {
	w := conv.BoxFilter(cfg)
	if cfg.InChannels < 2 || cfg.KernelSize != 3 {
		return w
	}
	for kh := 0; kh < 3; kh++ {
		for kw := 0; kw < 3; kw++ {
			w.Set(0, 0, 1, kh, kw)
		}
	}
	w.Set(1, 0, 1, 1, 1)
	return w
}

// BuildInput produces the [channels, height, width] image described by the input section.
func (f *File) BuildInput(channels int) (*tensor.Tensor, error) {
	h, w := f.Input.Height, f.Input.Width
	switch f.Input.Pattern {
	case PatternRamp:
		return tensor.FromFunc3(channels, h, w, func(c, y, x int) float64 {
			return float64(c*100 + y*10 + x)
		})
	case PatternOnes:
		return tensor.FromFunc3(channels, h, w, func(int, int, int) float64 { return 1 })
	case PatternFile:
		name := f.Input.Tensor
		if name == "" {
			name = serialization.ImageTensor
		}
		return loadTensor(f.Input.File, name)
	default:
		return nil, fmt.Errorf("%w: unknown input.pattern %q", ErrInvalid, f.Input.Pattern)
	}
}

// Stages builds one engine per layer, sharing the parallel section.
func (f *File) Stages() ([]Stage, error) {
	par := f.ParallelConfig()
	stages := make([]Stage, 0, len(f.Layers))
	for _, l := range f.Layers {
		cfg, err := l.Config()
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name, err)
		}
		weights, err := f.BuildWeights(cfg)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name, err)
		}
		engine, err := conv.New(cfg, weights, conv.WithParallel(par))
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name, err)
		}
		stages = append(stages, Stage{Layer: l, Engine: engine})
	}
	return stages, nil
}

func loadTensor(path, name string) (*tensor.Tensor, error) {
	archive, err := serialization.ReadSafeTensors(path)
	if err != nil {
		return nil, err
	}
	return archive.Tensor(name)
}
