package tensor

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

// Format writes a human-readable dump of a rank-3 [channel][row][col] tensor to w:
//
//	Output (Channels: 1, Height: 2, Width: 2)
//	Channel 0:
//	     1.00    2.00
//	     3.00    4.00
//
// A nil tensor is reported as "<label> is empty.".
func Format(w io.Writer, t *Tensor, label string) error {
	bw := bufio.NewWriter(w)
	if t == nil || t.NumElements() == 0 {
		fmt.Fprintf(bw, "%s is empty.\n", label)
		return bw.Flush()
	}
	if t.Rank() != 3 {
		return fmt.Errorf("format: expected rank-3 tensor, got rank %d", t.Rank())
	}

	c, h, wd := t.shape[0], t.shape[1], t.shape[2]
	fmt.Fprintf(bw, "%s (Channels: %d, Height: %d, Width: %d)\n", label, c, h, wd)
	i := 0
	for ci := 0; ci < c; ci++ {
		fmt.Fprintf(bw, "Channel %d:\n", ci)
		for hi := 0; hi < h; hi++ {
			bw.WriteString("  ")
			for wi := 0; wi < wd; wi++ {
				fmt.Fprintf(bw, "%8.2f", t.data[i])
				i++
			}
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Stats summarizes the values of a tensor.
type Stats struct {
	Min  float64
	Max  float64
	Sum  float64
	Mean float64
}

// Summarize computes min, max, sum and mean over all elements.
func Summarize(t *Tensor) Stats {
	sum := floats.Sum(t.data)
	return Stats{
		Min:  floats.Min(t.data),
		Max:  floats.Max(t.data),
		Sum:  sum,
		Mean: sum / float64(len(t.data)),
	}
}

// String formats the summary on one line.
func (s Stats) String() string {
	return fmt.Sprintf("min=%.4f max=%.4f sum=%.4f mean=%.4f", s.Min, s.Max, s.Sum, s.Mean)
}
