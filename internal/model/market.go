package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is a validated, ascending sequence of bars for one symbol and timeframe.
type Series struct {
	Symbol    string
	Timeframe Timeframe
	Bars      []OHLCV
	FetchedAt time.Time
}

func (s *Series) Len() int { return len(s.Bars) }

// Last returns the most recent bar. The series must not be empty.
func (s *Series) Last() OHLCV { return s.Bars[len(s.Bars)-1] }

func (s *Series) Closes() []float64 {
	return s.column(func(b OHLCV) float64 { return b.Close })
}

func (s *Series) Highs() []float64 {
	return s.column(func(b OHLCV) float64 { return b.High })
}

func (s *Series) Lows() []float64 {
	return s.column(func(b OHLCV) float64 { return b.Low })
}

func (s *Series) Volumes() []float64 {
	return s.column(func(b OHLCV) float64 { return b.Volume })
}

func (s *Series) column(get func(OHLCV) float64) []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = get(b)
	}
	return out
}
