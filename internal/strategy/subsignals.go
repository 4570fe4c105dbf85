package strategy

import (
	"fmt"

	"CryptoPulse/internal/model"
)

// subSignals builds the diagnostic conditions for the timeframe class.
// Missing values are recorded on l and reported by the caller.
func subSignals(class model.TimeframeClass, l *latest) ([]model.SubSignal, error) {
	switch class {
	case model.ClassShort:
		return []model.SubSignal{
			compare("EMA 9/21", l.get(model.EMAColumn(9)), l.get(model.EMAColumn(21)),
				"EMA9 above EMA21 (bullish)", "EMA9 below EMA21 (bearish)"),
			compare("VWAP", l.close, l.get(model.ColVWAP),
				"Price above VWAP (bullish)", "Price below VWAP (bearish)"),
			rsiHealth(l.get(model.RSIColumn(14))),
			compare("MACD", l.get(model.ColMACD), 0,
				"MACD above zero (bullish momentum)", "MACD below zero (bearish momentum)"),
		}, nil
	case model.ClassMedium:
		return []model.SubSignal{
			compare("EMA 20/50", l.get(model.EMAColumn(20)), l.get(model.EMAColumn(50)),
				"EMA20 above EMA50 (uptrend)", "EMA20 below EMA50 (downtrend)"),
			macdCross(l),
			compare("Ichimoku", l.get(model.ColTenkan), l.get(model.ColKijun),
				"Tenkan above Kijun (bullish)", "Tenkan below Kijun (bearish)"),
		}, nil
	case model.ClassLong:
		return []model.SubSignal{
			compare("SMA 50/200", l.get(model.SMAColumn(50)), l.get(model.SMAColumn(200)),
				"SMA50 above SMA200 (bull market)", "SMA50 below SMA200 (bear market)"),
			rsiHealth(l.get(model.RSIColumn(14))),
		}, nil
	default:
		return nil, fmt.Errorf("%w: class %q", model.ErrUnsupportedTimeframe, string(class))
	}
}

func compare(name string, a, b float64, above, below string) model.SubSignal {
	if a > b {
		return model.SubSignal{Name: name, Label: above, Favorable: true}
	}
	return model.SubSignal{Name: name, Label: below, Favorable: false}
}

func rsiHealth(rsi float64) model.SubSignal {
	s := model.SubSignal{Name: "RSI"}
	switch {
	case rsi >= 70:
		s.Label = fmt.Sprintf("RSI %.1f overbought", rsi)
	case rsi <= 30:
		s.Label = fmt.Sprintf("RSI %.1f oversold", rsi)
	default:
		s.Label = fmt.Sprintf("RSI %.1f healthy", rsi)
		s.Favorable = true
	}
	return s
}

// macdCross marks a crossover as fresh when the previous bar was on the other side.
func macdCross(l *latest) model.SubSignal {
	val := l.get(model.ColMACD)
	sig := l.get(model.ColMACDSignal)
	s := compare("MACD cross", val, sig, "MACD above signal (bullish cross)", "MACD below signal (bearish cross)")

	pv, ok1 := l.prev(model.ColMACD)
	ps, ok2 := l.prev(model.ColMACDSignal)
	if ok1 && ok2 && (pv > ps) != s.Favorable {
		s.Label += ", fresh"
	}
	return s
}
