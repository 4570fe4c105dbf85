package calculator

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cross-checks against TA-Lib at every position both implementations define.

func assertMatchesFrom(t *testing.T, name string, want, got []float64, from int) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := from; i < len(want); i++ {
		require.False(t, math.IsNaN(got[i]), "%s undefined at %d", name, i)
		assert.InDelta(t, want[i], got[i], 1e-6, "%s at %d", name, i)
	}
}

func TestTalibCrossCheck_SMA(t *testing.T) {
	closes := wave(250, 1000)
	got, err := CalculateSMA(closes, 20)
	require.NoError(t, err)
	assertMatchesFrom(t, "SMA(20)", talib.Sma(closes, 20), got, 19)
}

func TestTalibCrossCheck_EMA(t *testing.T) {
	closes := wave(250, 1000)
	for _, period := range []int{9, 21, 50} {
		got, err := CalculateEMA(closes, period)
		require.NoError(t, err)
		assertMatchesFrom(t, "EMA", talib.Ema(closes, period), got, period-1)
	}
}

func TestTalibCrossCheck_RSI(t *testing.T) {
	closes := wave(250, 1000)
	got, err := CalculateRSI(closes, 14)
	require.NoError(t, err)
	assertMatchesFrom(t, "RSI(14)", talib.Rsi(closes, 14), got, 14)
}

func TestTalibCrossCheck_Bollinger(t *testing.T) {
	closes := wave(250, 1000)
	b, err := CalculateBollinger(closes, 20, 2)
	require.NoError(t, err)

	upper, mid, lower := talib.BBands(closes, 20, 2, 2, talib.SMA)
	assertMatchesFrom(t, "BBU", upper, b.Upper, 19)
	assertMatchesFrom(t, "BBM", mid, b.Mid, 19)
	assertMatchesFrom(t, "BBL", lower, b.Lower, 19)
}
