package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxFilter(t *testing.T) {
	cfg := Config{KernelSize: 3, Stride: 1, InChannels: 2, OutChannels: 2}
	w := BoxFilter(cfg)

	assert.True(t, w.Shape().Equal(cfg.WeightShape()))
	for _, v := range w.Data() {
		assert.InDelta(t, 1.0/9, v, 1e-15)
	}
}

func TestIdentity(t *testing.T) {
	cfg := Config{KernelSize: 3, Stride: 1, InChannels: 2, OutChannels: 3}
	w := Identity(cfg)

	assert.Equal(t, 1.0, w.At(0, 0, 1, 1))
	assert.Equal(t, 1.0, w.At(1, 1, 1, 1))
	assert.Equal(t, 0.0, w.At(0, 1, 1, 1))
	assert.Equal(t, 0.0, w.At(0, 0, 0, 0))

	var ones int
	for _, v := range w.Data() {
		if v == 1 {
			ones++
		}
	}
	assert.Equal(t, 2, ones, "output channel 2 has no matching input channel")
}

func TestXavier(t *testing.T) {
	cfg := Config{KernelSize: 3, Stride: 1, InChannels: 4, OutChannels: 8}
	a := Xavier(cfg, 5)
	b := Xavier(cfg, 5)
	c := Xavier(cfg, 6)

	assert.Equal(t, a.Data(), b.Data(), "same seed, same weights")
	assert.NotEqual(t, a.Data(), c.Data())

	bound := math.Sqrt(6.0 / float64(4*9+8*9))
	for _, v := range a.Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}
}
