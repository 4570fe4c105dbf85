// Package selector maps timeframe classes to the indicators computed for them.
package selector

import (
	"fmt"

	"CryptoPulse/internal/model"
)

// Kind identifies an indicator function in the calculator package.
type Kind string

const (
	KindSMA       Kind = "SMA"
	KindEMA       Kind = "EMA"
	KindRSI       Kind = "RSI"
	KindMACD      Kind = "MACD"
	KindBollinger Kind = "BOLLINGER"
	KindVWAP      Kind = "VWAP"
	KindOBV       Kind = "OBV"
	KindIchimoku  Kind = "ICHIMOKU"
)

// Indicator is one parameterized indicator invocation.
// Period is used by SMA, EMA, RSI and Bollinger; Fast/Slow/Signal by MACD
// and Ichimoku (Fast=Tenkan, Slow=Kijun); K by Bollinger.
type Indicator struct {
	Kind   Kind
	Period int
	Fast   int
	Slow   int
	Signal int
	K      float64
}

func SMA(n int) Indicator { return Indicator{Kind: KindSMA, Period: n} }
func EMA(n int) Indicator { return Indicator{Kind: KindEMA, Period: n} }
func RSI(n int) Indicator { return Indicator{Kind: KindRSI, Period: n} }
func MACD(fast, slow, signal int) Indicator {
	return Indicator{Kind: KindMACD, Fast: fast, Slow: slow, Signal: signal}
}
func Bollinger(n int, k float64) Indicator { return Indicator{Kind: KindBollinger, Period: n, K: k} }
func VWAP() Indicator                      { return Indicator{Kind: KindVWAP} }
func OBV() Indicator                       { return Indicator{Kind: KindOBV} }
func Ichimoku(tenkan, kijun int) Indicator {
	return Indicator{Kind: KindIchimoku, Fast: tenkan, Slow: kijun}
}

// Name returns a display name such as "EMA(9)" or "MACD(12,26,9)".
func (ind Indicator) Name() string {
	switch ind.Kind {
	case KindSMA, KindEMA, KindRSI:
		return fmt.Sprintf("%s(%d)", ind.Kind, ind.Period)
	case KindMACD:
		return fmt.Sprintf("MACD(%d,%d,%d)", ind.Fast, ind.Slow, ind.Signal)
	case KindBollinger:
		return fmt.Sprintf("BOLLINGER(%d,%g)", ind.Period, ind.K)
	case KindIchimoku:
		return fmt.Sprintf("ICHIMOKU(%d,%d)", ind.Fast, ind.Slow)
	default:
		return string(ind.Kind)
	}
}

// Columns returns the derived column names the indicator produces.
func (ind Indicator) Columns() []string {
	switch ind.Kind {
	case KindSMA:
		return []string{model.SMAColumn(ind.Period)}
	case KindEMA:
		return []string{model.EMAColumn(ind.Period)}
	case KindRSI:
		return []string{model.RSIColumn(ind.Period)}
	case KindMACD:
		return []string{model.ColMACD, model.ColMACDSignal, model.ColMACDHist}
	case KindBollinger:
		return []string{model.ColBBUpper, model.ColBBMid, model.ColBBLower}
	case KindVWAP:
		return []string{model.ColVWAP}
	case KindOBV:
		return []string{model.ColOBV}
	case KindIchimoku:
		return []string{model.ColTenkan, model.ColKijun}
	default:
		return nil
	}
}

// Lookback is the number of bars needed before the indicator's last value is defined.
func (ind Indicator) Lookback() int {
	switch ind.Kind {
	case KindSMA, KindEMA, KindBollinger:
		return ind.Period
	case KindRSI:
		return ind.Period + 1
	case KindMACD:
		return ind.Slow + ind.Signal - 1
	case KindIchimoku:
		return max(ind.Fast, ind.Slow)
	default:
		return 1
	}
}

// Baseline periods used by the core RSI/SMA rule; every set computes them.
const (
	BaselineRSIPeriod = 14
	BaselineSMAPeriod = 20
)

// MinSeriesLength is the floor applied to every set's minimum length.
const MinSeriesLength = 20

// Set is the ordered list of indicators computed for one timeframe class.
type Set struct {
	Class      model.TimeframeClass
	Indicators []Indicator
}

// Sets is the indicator table. It is never mutated.
var Sets = map[model.TimeframeClass]Set{
	model.ClassShort: {
		Class: model.ClassShort,
		Indicators: []Indicator{
			EMA(9), EMA(21), RSI(BaselineRSIPeriod), SMA(BaselineSMAPeriod),
			MACD(12, 26, 9), Bollinger(20, 2), VWAP(),
		},
	},
	model.ClassMedium: {
		Class: model.ClassMedium,
		Indicators: []Indicator{
			EMA(20), EMA(50), RSI(BaselineRSIPeriod), SMA(BaselineSMAPeriod),
			MACD(12, 26, 9), Ichimoku(9, 26), OBV(),
		},
	},
	model.ClassLong: {
		Class: model.ClassLong,
		Indicators: []Indicator{
			SMA(50), SMA(200), RSI(BaselineRSIPeriod), SMA(BaselineSMAPeriod),
			MACD(12, 26, 9), OBV(),
		},
	},
}

// Select returns the indicator set for a timeframe class.
func Select(class model.TimeframeClass) (Set, error) {
	set, ok := Sets[class]
	if !ok {
		return Set{}, fmt.Errorf("%w: class %q", model.ErrUnsupportedTimeframe, string(class))
	}
	return set, nil
}

// SelectByName accepts either a timeframe ("5m", "1h", ...) or a class name
// ("short", "medium", "long").
func SelectByName(name string) (Set, error) {
	if set, ok := Sets[model.TimeframeClass(name)]; ok {
		return set, nil
	}
	tf, err := model.ParseTimeframe(name)
	if err != nil {
		return Set{}, err
	}
	return ForTimeframe(tf)
}

// ForTimeframe returns the indicator set for a timeframe.
func ForTimeframe(tf model.Timeframe) (Set, error) {
	class, err := tf.Class()
	if err != nil {
		return Set{}, err
	}
	return Select(class)
}

// MinBars returns how many bars a series needs for every indicator in the set
// to be defined at the last position.
func (s Set) MinBars() int {
	n := MinSeriesLength
	for _, ind := range s.Indicators {
		n = max(n, ind.Lookback())
	}
	return n
}

// Columns returns all derived column names the set produces, in order.
func (s Set) Columns() []string {
	var cols []string
	for _, ind := range s.Indicators {
		cols = append(cols, ind.Columns()...)
	}
	return cols
}
