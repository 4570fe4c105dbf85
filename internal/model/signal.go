package model

import "time"

// SignalType is the categorical trading decision for the latest bar.
type SignalType string

const (
	SignalStrongBuy  SignalType = "STRONG_BUY"
	SignalBuy        SignalType = "BUY"
	SignalNeutral    SignalType = "NEUTRAL"
	SignalSell       SignalType = "SELL"
	SignalStrongSell SignalType = "STRONG_SELL"
)

// Signal pairs a decision with its presentation attributes.
type Signal struct {
	Type     SignalType
	Label    string
	Color    string
	Severity int // +2 strong buy .. -2 strong sell
}

// SubSignal is a named diagnostic condition shown next to the main signal.
type SubSignal struct {
	Name      string
	Label     string
	Favorable bool
}

// TradeSignal is the final output of the strategy engine.
type TradeSignal struct {
	Signal     Signal
	SubSignals []SubSignal
	Close      float64
	RSI        float64
	SMA        float64
}

// Snapshot is one pipeline run's enriched data: the series and its derived columns.
type Snapshot struct {
	Series  *Series
	Class   TimeframeClass
	Derived *Derived
}

// Sentiment is the market-wide fear & greed reading; display only.
type Sentiment struct {
	Value          int
	Classification string
	Timestamp      time.Time
}

// Analysis is everything produced by a single evaluation.
type Analysis struct {
	ID          string
	Symbol      string
	Timeframe   Timeframe
	Snapshot    *Snapshot
	Signal      *TradeSignal
	Sentiment   *Sentiment // nil when unavailable
	EvaluatedAt time.Time
}
