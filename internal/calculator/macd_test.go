package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMACD_IsEMADifference(t *testing.T) {
	closes := wave(120, 250)
	m, err := CalculateMACD(closes, 12, 26, 9)
	require.NoError(t, err)

	fast, err := CalculateEMA(closes, 12)
	require.NoError(t, err)
	slow, err := CalculateEMA(closes, 26)
	require.NoError(t, err)

	assert.Equal(t, 25, firstDefined(t, m.Value))
	for i := 25; i < len(closes); i++ {
		assert.Equal(t, fast[i]-slow[i], m.Value[i], "index %d", i)
	}
}

func TestCalculateMACD_SignalAndHistogram(t *testing.T) {
	closes := wave(120, 250)
	m, err := CalculateMACD(closes, 12, 26, 9)
	require.NoError(t, err)

	assert.Equal(t, 33, firstDefined(t, m.Signal))
	assert.Equal(t, 33, firstDefined(t, m.Hist))

	seed := 0.0
	for _, v := range m.Value[25:34] {
		seed += v
	}
	assert.InDelta(t, seed/9, m.Signal[33], 1e-9)

	for i := 33; i < len(closes); i++ {
		assert.InDelta(t, m.Value[i]-m.Signal[i], m.Hist[i], 1e-12)
	}
}

func TestCalculateMACD_Validation(t *testing.T) {
	_, err := CalculateMACD(wave(50, 10), 26, 12, 9)
	assert.Error(t, err)
	_, err = CalculateMACD(wave(50, 10), 12, 26, 0)
	assert.Error(t, err)
}

func TestCalculateMACD_ShortSeriesUndefined(t *testing.T) {
	m, err := CalculateMACD(wave(30, 10), 12, 26, 9)
	require.NoError(t, err)
	assert.Equal(t, 25, firstDefined(t, m.Value))
	assert.Equal(t, -1, firstDefined(t, m.Signal))
	assert.True(t, math.IsNaN(m.Hist[29]))
}
