package collector

import (
	"fmt"
	"math"
	"time"

	"CryptoPulse/internal/model"
)

// Normalize turns raw fetched bars into a validated Series.
// Rows without a close price are dropped and a missing volume counts as zero.
// Any remaining bar that breaks the OHLCV invariants or the strict time
// ordering fails with ErrInvalidBar; fewer than minLen bars fail with
// ErrInsufficientData.
func Normalize(symbol string, tf model.Timeframe, raw []model.OHLCV, minLen int) (*model.Series, error) {
	bars := make([]model.OHLCV, 0, len(raw))
	for _, b := range raw {
		if math.IsNaN(b.Close) {
			continue
		}
		if math.IsNaN(b.Volume) {
			b.Volume = 0
		}
		bars = append(bars, b)
	}

	for i, b := range bars {
		if err := validateBar(b); err != nil {
			return nil, fmt.Errorf("%w: bar %d (%s): %v", model.ErrInvalidBar, i, b.Time.Format(time.RFC3339), err)
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return nil, fmt.Errorf("%w: bar %d (%s) is not after %s", model.ErrInvalidBar, i,
				b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
	}

	if len(bars) < minLen {
		return nil, fmt.Errorf("%w: %s %s has %d bars, need %d", model.ErrInsufficientData, symbol, tf, len(bars), minLen)
	}
	return &model.Series{Symbol: symbol, Timeframe: tf, Bars: bars}, nil
}

func validateBar(b model.OHLCV) error {
	for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return fmt.Errorf("price %v is not a positive finite number", p)
		}
	}
	if math.IsInf(b.Volume, 0) || b.Volume < 0 {
		return fmt.Errorf("volume %v is negative or infinite", b.Volume)
	}
	if b.Low > math.Min(b.Open, b.Close) || math.Max(b.Open, b.Close) > b.High {
		return fmt.Errorf("range o=%v h=%v l=%v c=%v violates low <= open,close <= high", b.Open, b.High, b.Low, b.Close)
	}
	return nil
}
