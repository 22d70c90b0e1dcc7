// Package main provides the convolve CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/klauspost/cpuid/v2"

	"github.com/born-ml/convolve/internal/config"
	"github.com/born-ml/convolve/internal/parallel"
	"github.com/born-ml/convolve/internal/serialization"
	"github.com/born-ml/convolve/internal/tensor"
)

const version = "v0.0.1-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("convolve: ")

	if len(os.Args) < 2 {
		usage(os.Stdout)
		return
	}

	var err error
	switch os.Args[1] {
	case "version":
		printVersion(os.Stdout)
	case "demo":
		err = demoCmd(os.Stdout, os.Args[2:])
	case "run":
		err = runCmd(os.Stdout, os.Args[2:])
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "convolve - direct 2D convolution engine")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                 Show version and host CPU")
	fmt.Fprintln(w, "  demo [-quiet]           Blur a 3x32x32 ramp with VALID/stride 1 and SAME/stride 2")
	fmt.Fprintln(w, "  run -config file.yaml   Run the layers described by a YAML file")
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "convolve %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "CPU: %s, %d physical cores, %d workers\n",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, parallel.Workers())
}

// options controls what execute prints and saves.
type options struct {
	print       bool   // Print every output tensor in full
	saveOutput  string // SafeTensors path for the outputs, empty to skip
	saveWeights string // SafeTensors path for the kernel weights, empty to skip
}

func demoCmd(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	quiet := fs.Bool("quiet", false, "print summaries instead of full output tensors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return execute(w, config.Default(), options{print: !*quiet})
}

func runCmd(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("config", "", "YAML run description (required)")
	printAll := fs.Bool("print", false, "print every output tensor in full")
	saveOutput := fs.String("save-output", "", "write outputs to this SafeTensors file")
	saveWeights := fs.String("save-weights", "", "write kernel weights to this SafeTensors file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		fs.Usage()
		return errors.New("run: -config is required")
	}

	f, err := config.Load(*path)
	if err != nil {
		return err
	}
	return execute(w, f, options{print: *printAll, saveOutput: *saveOutput, saveWeights: *saveWeights})
}

// execute runs every layer of f on the configured input. A layer whose forward pass
// fails is reported and skipped; the first such error is returned once all layers ran.
func execute(w io.Writer, f *config.File, opts options) error {
	stages, err := f.Stages()
	if err != nil {
		return err
	}
	input, err := f.BuildInput(stages[0].Engine.Config().InChannels)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Initializing convolution layers...")
	fmt.Fprintf(w, "Input Dimensions: %s\n", input.Shape())
	fmt.Fprintf(w, "Input: %s\n", tensor.Summarize(input))

	outputs := make(map[string]*tensor.Tensor, len(stages))
	weights := make(map[string]*tensor.Tensor, len(stages))
	var firstErr error
	for _, st := range stages {
		fmt.Fprintf(w, "\n--- %s: %s ---\n", st.Layer.Name, st.Engine)
		weights[st.Layer.Name+".weight"] = st.Engine.Weights()

		out, err := st.Engine.Forward(input)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("layer %s: %w", st.Layer.Name, err)
			}
			continue
		}
		outputs[serialization.OutputTensor+"."+st.Layer.Name] = out

		fmt.Fprintf(w, "Output Dimensions: %s\n", out.Shape())
		fmt.Fprintf(w, "Output: %s\n", tensor.Summarize(out))
		if opts.print {
			fmt.Fprintln(w)
			if err := tensor.Format(w, out, "Output Image"); err != nil {
				return err
			}
		}
	}

	meta := map[string]string{"generator": "convolve " + version}
	if opts.saveOutput != "" {
		if err := serialization.WriteSafeTensors(opts.saveOutput, outputs, meta); err != nil {
			return fmt.Errorf("save outputs: %w", err)
		}
		fmt.Fprintf(w, "\nSaved %d output tensors to %s\n", len(outputs), opts.saveOutput)
	}
	if opts.saveWeights != "" {
		if err := serialization.WriteSafeTensors(opts.saveWeights, weights, meta); err != nil {
			return fmt.Errorf("save weights: %w", err)
		}
		fmt.Fprintf(w, "Saved %d weight tensors to %s\n", len(weights), opts.saveWeights)
	}
	return firstErr
}
