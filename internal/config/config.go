// Package config loads convolution run descriptions from YAML.
//
// A file lists one or more layers that share a weight initializer and an input image:
//
//	layers:
//	  - name: valid-s1
//	    kernel_size: 3
//	    stride: 1
//	    padding: valid
//	    input_channels: 3
//	    output_channels: 1
//	weights:
//	  init: box
//	input:
//	  height: 32
//	  width: 32
//	  pattern: ramp
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/convolve/internal/conv"
	"github.com/born-ml/convolve/internal/parallel"
)

// Weight initializers.
const (
	InitBox      = "box"      // 1/(k*k) everywhere
	InitDemo     = "demo"     // box, with input channel 1 of output channel 0 replaced by a centre tap
	InitIdentity = "identity" // 1 at the centre for matching channels
	InitZeros    = "zeros"
	InitXavier   = "xavier" // uniform Glorot, seeded
	InitFile     = "file"   // SafeTensors file
)

// Input patterns.
const (
	PatternRamp = "ramp" // c*100 + h*10 + w
	PatternOnes = "ones"
	PatternFile = "file"
)

// ErrInvalid is wrapped by every validation error in this package.
var ErrInvalid = errors.New("invalid config")

// File is the root of a YAML run description.
type File struct {
	Layers   []Layer  `yaml:"layers"`
	Weights  Weights  `yaml:"weights"`
	Input    Input    `yaml:"input"`
	Parallel Parallel `yaml:"parallel,omitempty"`
}

// Layer describes one convolution layer.
type Layer struct {
	Name           string `yaml:"name"`
	KernelSize     int    `yaml:"kernel_size"`
	Stride         int    `yaml:"stride"`
	Padding        string `yaml:"padding"` // valid | same | 0 | 1
	InputChannels  int    `yaml:"input_channels"`
	OutputChannels int    `yaml:"output_channels"`
}

// Weights selects how kernel weights are produced.
type Weights struct {
	Init   string `yaml:"init"`
	Seed   int64  `yaml:"seed,omitempty"`   // InitXavier
	File   string `yaml:"file,omitempty"`   // InitFile
	Tensor string `yaml:"tensor,omitempty"` // InitFile; defaults to "conv.weight"
}

// Input selects the image fed to every layer.
type Input struct {
	Height  int    `yaml:"height,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Pattern string `yaml:"pattern"`
	File    string `yaml:"file,omitempty"`   // PatternFile
	Tensor  string `yaml:"tensor,omitempty"` // PatternFile; defaults to "image"
}

// Parallel controls how Forward spreads work over goroutines.
type Parallel struct {
	Enabled *bool `yaml:"enabled,omitempty"` // nil means enabled when more than one core is available
	Workers int   `yaml:"workers,omitempty"` // 0 means one per physical core
}

// Default returns the two-layer demo: a 3x3 blur over a 3x32x32 ramp, first VALID with
// stride 1, then SAME with stride 2.
func Default() *File {
	return &File{
		Layers: []Layer{
			{Name: "valid-stride1", KernelSize: 3, Stride: 1, Padding: "valid", InputChannels: 3, OutputChannels: 1},
			{Name: "same-stride2", KernelSize: 3, Stride: 2, Padding: "same", InputChannels: 3, OutputChannels: 1},
		},
		Weights: Weights{Init: InitDemo},
		Input:   Input{Height: 32, Width: 32, Pattern: PatternRamp},
	}
}

// Load reads and validates a YAML file.
func Load(path string) (*File, error) {
	//nolint:gosec // G304: config path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

func (f *File) applyDefaults() {
	if f.Weights.Init == "" {
		f.Weights.Init = InitBox
	}
	if f.Input.Pattern == "" {
		f.Input.Pattern = PatternRamp
	}
	for i := range f.Layers {
		if f.Layers[i].Name == "" {
			f.Layers[i].Name = fmt.Sprintf("layer%d", i)
		}
		if f.Layers[i].Padding == "" {
			f.Layers[i].Padding = "valid"
		}
	}
}

// Validate checks every section. Layer parameters go through conv.Config.Validate so the
// error names the offending field.
func (f *File) Validate() error {
	if len(f.Layers) == 0 {
		return fmt.Errorf("%w: at least one layer is required", ErrInvalid)
	}
	for i, l := range f.Layers {
		if _, err := l.Config(); err != nil {
			return fmt.Errorf("%w: layers[%d] (%s): %w", ErrInvalid, i, l.Name, err)
		}
		// Every layer reads the same image.
		if l.InputChannels != f.Layers[0].InputChannels {
			return fmt.Errorf("%w: layers[%d] (%s): input_channels %d differs from layers[0] (%d)",
				ErrInvalid, i, l.Name, l.InputChannels, f.Layers[0].InputChannels)
		}
	}

	switch f.Weights.Init {
	case InitBox, InitDemo, InitIdentity, InitZeros, InitXavier:
	case InitFile:
		if f.Weights.File == "" {
			return fmt.Errorf("%w: weights.file is required when init is %q", ErrInvalid, InitFile)
		}
	default:
		return fmt.Errorf("%w: unknown weights.init %q", ErrInvalid, f.Weights.Init)
	}

	switch f.Input.Pattern {
	case PatternRamp, PatternOnes:
		if f.Input.Height <= 0 || f.Input.Width <= 0 {
			return fmt.Errorf("%w: input height and width must be positive, got %dx%d",
				ErrInvalid, f.Input.Height, f.Input.Width)
		}
	case PatternFile:
		if f.Input.File == "" {
			return fmt.Errorf("%w: input.file is required when pattern is %q", ErrInvalid, PatternFile)
		}
	default:
		return fmt.Errorf("%w: unknown input.pattern %q", ErrInvalid, f.Input.Pattern)
	}

	if f.Parallel.Workers < 0 {
		return fmt.Errorf("%w: parallel.workers must be >= 0, got %d", ErrInvalid, f.Parallel.Workers)
	}
	return nil
}

// Config converts the layer to a conv.Config and validates it.
func (l Layer) Config() (conv.Config, error) {
	mode, err := conv.ParsePaddingMode(l.Padding)
	if err != nil {
		return conv.Config{}, err
	}
	cfg := conv.Config{
		KernelSize:  l.KernelSize,
		Stride:      l.Stride,
		Padding:     mode,
		InChannels:  l.InputChannels,
		OutChannels: l.OutputChannels,
	}
	if err := cfg.Validate(); err != nil {
		return conv.Config{}, err
	}
	return cfg, nil
}

// ParallelConfig converts the parallel section.
func (f *File) ParallelConfig() parallel.Config {
	cfg := parallel.DefaultConfig()
	if f.Parallel.Workers > 0 {
		cfg.NumWorkers = f.Parallel.Workers
		cfg.Enabled = f.Parallel.Workers > 1
	}
	if f.Parallel.Enabled != nil {
		cfg.Enabled = *f.Parallel.Enabled
	}
	return cfg
}
