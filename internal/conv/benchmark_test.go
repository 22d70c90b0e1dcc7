package conv

import (
	"math/rand"
	"testing"

	"github.com/born-ml/convolve/internal/parallel"
	"github.com/born-ml/convolve/internal/tensor"
)

func BenchmarkForward(b *testing.B) {
	cfg := Config{KernelSize: 3, Stride: 1, Padding: Same, InChannels: 3, OutChannels: 16}
	rng := rand.New(rand.NewSource(1))
	input := randomTensor(rng, tensor.Shape{3, 64, 64})

	for _, bc := range []struct {
		name string
		par  parallel.Config
	}{
		{"sequential", parallel.Sequential()},
		{"parallel", parallel.DefaultConfig()},
	} {
		b.Run(bc.name, func(b *testing.B) {
			e, err := New(cfg, Xavier(cfg, 1), WithParallel(bc.par))
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Forward(input); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
