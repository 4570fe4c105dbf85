package calculator

import "math"

// Bands holds Bollinger Band series.
type Bands struct {
	Upper []float64
	Mid   []float64
	Lower []float64
}

// CalculateBollinger computes Bollinger Bands around SMA(period) at k standard
// deviations. The deviation is the population standard deviation of the window.
func CalculateBollinger(closes []float64, period int, k float64) (*Bands, error) {
	mid, err := CalculateSMA(closes, period)
	if err != nil {
		return nil, err
	}
	b := &Bands{Upper: undefined(len(closes)), Mid: mid, Lower: undefined(len(closes))}
	for i := period - 1; i < len(closes); i++ {
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mid[i]
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))
		b.Upper[i] = mid[i] + k*std
		b.Lower[i] = mid[i] - k*std
	}
	return b, nil
}
