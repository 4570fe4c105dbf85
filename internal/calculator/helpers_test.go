package calculator

import (
	"math"
	"testing"
)

// wave builds a deterministic oscillating series around base.
func wave(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + 10*math.Sin(float64(i)/5) + float64(i%7) - 3
	}
	return out
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func firstDefined(t *testing.T, values []float64) int {
	t.Helper()
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}
