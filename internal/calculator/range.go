package calculator

import "math"

// RollingHigh returns the highest value of each trailing window of the given period.
func RollingHigh(values []float64, period int) ([]float64, error) {
	return rolling(values, period, math.Max)
}

// RollingLow returns the lowest value of each trailing window of the given period.
func RollingLow(values []float64, period int) ([]float64, error) {
	return rolling(values, period, math.Min)
}

func rolling(values []float64, period int, pick func(a, b float64) float64) ([]float64, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	out := undefined(len(values))
	for i := period - 1; i < len(values); i++ {
		v := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			v = pick(v, values[j])
		}
		out[i] = v
	}
	return out, nil
}
