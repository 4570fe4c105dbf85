package calculator

import (
	"errors"
	"math"
)

var errPeriod = errors.New("period must be positive")

// undefined returns a slice of n NaNs.
func undefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// CalculateSMA computes the simple moving average of values over the given period.
// Positions before the first full window are NaN; a window containing NaN yields NaN.
func CalculateSMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	out := undefined(len(values))
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(period)
	}
	return out, nil
}

// CalculateEMA computes an exponential moving average with alpha = 2/(period+1).
// A leading NaN prefix in values is skipped: the seed is the SMA of the first
// period defined values and the recurrence runs from there.
func CalculateEMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	out := undefined(len(values))

	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	seedAt := start + period - 1
	if seedAt >= len(values) {
		return out, nil
	}

	sum := 0.0
	for i := start; i <= seedAt; i++ {
		sum += values[i]
	}
	out[seedAt] = sum / float64(period)

	alpha := 2.0 / float64(period+1)
	for i := seedAt + 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
