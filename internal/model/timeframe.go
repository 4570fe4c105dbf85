package model

import (
	"fmt"
	"time"
)

// Timeframe is the bar interval requested from the data source.
type Timeframe string

const (
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe1d  Timeframe = "1d"
)

// Timeframes lists the supported intervals in ascending order.
var Timeframes = []Timeframe{Timeframe5m, Timeframe15m, Timeframe1h, Timeframe1d}

// TimeframeClass groups timeframes that share an indicator set.
type TimeframeClass string

const (
	ClassShort  TimeframeClass = "short"
	ClassMedium TimeframeClass = "medium"
	ClassLong   TimeframeClass = "long"
)

// Lookback is how much history a data source is asked for.
// Range follows the Yahoo chart convention; Bars is used by count-based sources.
type Lookback struct {
	Range string
	Bars  int
}

var timeframeInfo = map[Timeframe]struct {
	class    TimeframeClass
	lookback Lookback
	duration time.Duration
}{
	Timeframe5m:  {ClassShort, Lookback{Range: "1d", Bars: 288}, 5 * time.Minute},
	Timeframe15m: {ClassShort, Lookback{Range: "5d", Bars: 480}, 15 * time.Minute},
	Timeframe1h:  {ClassMedium, Lookback{Range: "1mo", Bars: 720}, time.Hour},
	Timeframe1d:  {ClassLong, Lookback{Range: "max", Bars: 1000}, 24 * time.Hour},
}

// ParseTimeframe validates a timeframe string.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if _, ok := timeframeInfo[tf]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, s)
	}
	return tf, nil
}

// Class returns the indicator-set class of the timeframe.
func (tf Timeframe) Class() (TimeframeClass, error) {
	info, ok := timeframeInfo[tf]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, string(tf))
	}
	return info.class, nil
}

// Lookback returns the history window requested for the timeframe.
func (tf Timeframe) Lookback() Lookback {
	return timeframeInfo[tf].lookback
}

// Duration returns the bar length, or 0 for an unknown timeframe.
func (tf Timeframe) Duration() time.Duration {
	return timeframeInfo[tf].duration
}
