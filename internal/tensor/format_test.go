package tensor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	x, err := FromSlice([]float64{1, 2.5, -3, 40}, Shape{1, 2, 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, x, "Output"))

	want := "Output (Channels: 1, Height: 2, Width: 2)\n" +
		"Channel 0:\n" +
		"      1.00    2.50\n" +
		"     -3.00   40.00\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, nil, "Output"))
	assert.Equal(t, "Output is empty.\n", buf.String())
}

func TestFormatRejectsWrongRank(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Format(&buf, Ones(Shape{2, 2}), "x"))
}

func TestSummarize(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3, 6}, Shape{4})
	s := Summarize(x)

	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 6.0, s.Max)
	assert.Equal(t, 12.0, s.Sum)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, "min=1.0000 max=6.0000 sum=12.0000 mean=3.0000", s.String())
}
