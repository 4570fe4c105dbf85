package strategy

import (
	"fmt"

	"CryptoPulse/internal/model"
	"CryptoPulse/internal/selector"
)

// RSI thresholds for the baseline rule.
const (
	StrongBuyRSI  = 35.0
	BuyRSI        = 40.0
	StrongSellRSI = 65.0
	SellRSI       = 60.0
)

// Signals maps each decision to its presentation attributes.
var Signals = map[model.SignalType]model.Signal{
	model.SignalStrongBuy:  {Type: model.SignalStrongBuy, Label: "Strong Buy", Color: "green", Severity: 2},
	model.SignalBuy:        {Type: model.SignalBuy, Label: "Buy", Color: "lightgreen", Severity: 1},
	model.SignalNeutral:    {Type: model.SignalNeutral, Label: "Neutral / Wait", Color: "gray", Severity: 0},
	model.SignalSell:       {Type: model.SignalSell, Label: "Sell", Color: "orange", Severity: -1},
	model.SignalStrongSell: {Type: model.SignalStrongSell, Label: "Strong Sell", Color: "red", Severity: -2},
}

// Rules is evaluated top-down; the first match wins.
var Rules = []struct {
	Signal model.SignalType
	Match  func(rsi, close, sma float64) bool
}{
	{model.SignalStrongBuy, func(rsi, close, sma float64) bool { return rsi < StrongBuyRSI && close > sma }},
	{model.SignalBuy, func(rsi, _, _ float64) bool { return rsi < BuyRSI }},
	{model.SignalStrongSell, func(rsi, close, sma float64) bool { return rsi > StrongSellRSI && close < sma }},
	{model.SignalSell, func(rsi, _, _ float64) bool { return rsi > SellRSI }},
}

// Classify applies the baseline rule table to the latest RSI, close and SMA.
func Classify(rsi, close, sma float64) model.Signal {
	for _, r := range Rules {
		if r.Match(rsi, close, sma) {
			return Signals[r.Signal]
		}
	}
	return Signals[model.SignalNeutral]
}

// Evaluate computes the trade signal for the latest bar of a snapshot.
// It fails with ErrInsufficientHistory when any value it needs is undefined.
func Evaluate(snap *model.Snapshot) (*model.TradeSignal, error) {
	if snap == nil || snap.Series == nil || snap.Series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", model.ErrInsufficientHistory)
	}
	v := newLatest(snap)

	rsi := v.get(model.RSIColumn(selector.BaselineRSIPeriod))
	sma := v.get(model.SMAColumn(selector.BaselineSMAPeriod))
	subs, err := subSignals(snap.Class, v)
	if err != nil {
		return nil, err
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	return &model.TradeSignal{
		Signal:     Classify(rsi, v.close, sma),
		SubSignals: subs,
		Close:      v.close,
		RSI:        rsi,
		SMA:        sma,
	}, nil
}

// latest reads last-bar values and remembers which ones were undefined.
type latest struct {
	d       *model.Derived
	close   float64
	missing []string
}

func newLatest(snap *model.Snapshot) *latest {
	return &latest{d: snap.Derived, close: snap.Series.Last().Close}
}

func (l *latest) get(col string) float64 {
	if l.d == nil {
		l.missing = append(l.missing, col)
		return 0
	}
	v, ok := l.d.Last(col)
	if !ok {
		l.missing = append(l.missing, col)
	}
	return v
}

// prev returns the value one bar before the last, if defined.
func (l *latest) prev(col string) (float64, bool) {
	if l.d == nil {
		return 0, false
	}
	return l.d.At(col, l.d.Len()-2)
}

func (l *latest) err() error {
	if len(l.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: undefined at last bar: %v", model.ErrInsufficientHistory, l.missing)
}
