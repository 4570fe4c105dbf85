package calculator

// Ichimoku holds the Tenkan-sen and Kijun-sen lines.
type Ichimoku struct {
	Tenkan []float64
	Kijun  []float64
}

// CalculateIchimoku computes the Tenkan (conversion) and Kijun (base) lines as
// the midpoint of the trailing high/low range over each period.
func CalculateIchimoku(highs, lows []float64, tenkanPeriod, kijunPeriod int) (*Ichimoku, error) {
	if len(highs) != len(lows) {
		return nil, errLength
	}
	tenkan, err := midpoint(highs, lows, tenkanPeriod)
	if err != nil {
		return nil, err
	}
	kijun, err := midpoint(highs, lows, kijunPeriod)
	if err != nil {
		return nil, err
	}
	return &Ichimoku{Tenkan: tenkan, Kijun: kijun}, nil
}

func midpoint(highs, lows []float64, period int) ([]float64, error) {
	hi, err := RollingHigh(highs, period)
	if err != nil {
		return nil, err
	}
	lo, err := RollingLow(lows, period)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(hi))
	for i := range hi {
		out[i] = (hi[i] + lo[i]) / 2
	}
	return out, nil
}
