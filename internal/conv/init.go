package conv

import (
	"math"
	"math/rand"

	"github.com/born-ml/convolve/internal/tensor"
)

// BoxFilter returns weights that average every k x k window of every input channel:
// all entries are 1/(k*k).
func BoxFilter(cfg Config) *tensor.Tensor {
	k := float64(cfg.KernelSize)
	return tensor.Full(cfg.WeightShape(), 1/(k*k))
}

// Identity returns weights with a single 1 at the kernel centre where the output channel
// equals the input channel, and 0 elsewhere.
//
// With k=1, stride 1 and VALID padding, output channel c reproduces input channel c.
func Identity(cfg Config) *tensor.Tensor {
	w := tensor.Zeros(cfg.WeightShape())
	centre := cfg.KernelSize / 2
	for c := 0; c < min(cfg.InChannels, cfg.OutChannels); c++ {
		w.Set(1, c, c, centre, centre)
	}
	return w
}

// Xavier (Glorot) initialization for weights.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))) with
// fan_in = in*k*k and fan_out = out*k*k. The same seed always gives the same weights.
func Xavier(cfg Config, seed int64) *tensor.Tensor {
	kk := cfg.KernelSize * cfg.KernelSize
	bound := math.Sqrt(6.0 / float64(cfg.InChannels*kk+cfg.OutChannels*kk))

	w := tensor.Zeros(cfg.WeightShape())
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(seed))
	data := w.Data()
	for i := range data {
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}
	return w
}
