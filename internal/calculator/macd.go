package calculator

import (
	"errors"
	"math"
)

// MACD holds the three aligned MACD output series.
type MACD struct {
	Value  []float64 // EMA(fast) - EMA(slow)
	Signal []float64 // EMA(signal) of Value
	Hist   []float64 // Value - Signal
}

// CalculateMACD computes MACD(fast, slow, signal) over closes.
// Value is defined from index slow-1, Signal and Hist from slow+signal-2.
func CalculateMACD(closes []float64, fast, slow, signal int) (*MACD, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, errPeriod
	}
	if fast >= slow {
		return nil, errors.New("fast period must be shorter than slow period")
	}
	emaFast, err := CalculateEMA(closes, fast)
	if err != nil {
		return nil, err
	}
	emaSlow, err := CalculateEMA(closes, slow)
	if err != nil {
		return nil, err
	}

	value := undefined(len(closes))
	for i := range closes {
		if math.IsNaN(emaFast[i]) || math.IsNaN(emaSlow[i]) {
			continue
		}
		value[i] = emaFast[i] - emaSlow[i]
	}

	sig, err := CalculateEMA(value, signal)
	if err != nil {
		return nil, err
	}
	hist := undefined(len(closes))
	for i := range closes {
		if !math.IsNaN(sig[i]) {
			hist[i] = value[i] - sig[i]
		}
	}
	return &MACD{Value: value, Signal: sig, Hist: hist}, nil
}
