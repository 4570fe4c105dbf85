package calculator

import "errors"

var errLength = errors.New("input series lengths differ")

// CalculateVWAP computes the cumulative volume-weighted average price from the
// first bar, using the typical price (high+low+close)/3. Positions where the
// cumulative volume is still zero are NaN.
func CalculateVWAP(highs, lows, closes, volumes []float64) ([]float64, error) {
	n := len(closes)
	if len(highs) != n || len(lows) != n || len(volumes) != n {
		return nil, errLength
	}
	out := undefined(n)
	var pv, vol float64
	for i := 0; i < n; i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		pv += typical * volumes[i]
		vol += volumes[i]
		if vol > 0 {
			out[i] = pv / vol
		}
	}
	return out, nil
}

// CalculateOBV computes on-balance volume starting at zero on the first bar.
func CalculateOBV(closes, volumes []float64) ([]float64, error) {
	n := len(closes)
	if len(volumes) != n {
		return nil, errLength
	}
	out := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			out[i] = out[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			out[i] = out[i-1] - volumes[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out, nil
}
