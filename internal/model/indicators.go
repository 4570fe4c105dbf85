package model

import (
	"fmt"
	"math"
	"strings"
)

// Column names for indicator outputs that are not parameterized by a period.
const (
	ColMACD       = "MACD_VAL"
	ColMACDSignal = "MACD_SIG"
	ColMACDHist   = "MACD_HIST"
	ColBBUpper    = "BBU"
	ColBBMid      = "BBM"
	ColBBLower    = "BBL"
	ColVWAP       = "VWAP"
	ColOBV        = "OBV"
	ColTenkan     = "TENKAN"
	ColKijun      = "KIJUN"
)

func SMAColumn(period int) string { return fmt.Sprintf("SMA_%d", period) }
func EMAColumn(period int) string { return fmt.Sprintf("EMA_%d", period) }
func RSIColumn(period int) string { return fmt.Sprintf("RSI_%d", period) }

// reserved holds the source bar fields; derived columns may never shadow them.
var reserved = map[string]bool{
	"TIME": true, "OPEN": true, "HIGH": true, "LOW": true, "CLOSE": true, "VOLUME": true,
}

// Derived holds indicator output columns aligned index-for-index with a Series.
// Undefined positions are NaN. Columns are append-only.
type Derived struct {
	n     int
	cols  map[string][]float64
	order []string
}

// NewDerived creates an empty set of columns for a series of length n.
func NewDerived(n int) *Derived {
	return &Derived{n: n, cols: make(map[string][]float64)}
}

// Add appends a new column. It fails if the name is taken, shadows a bar field,
// or the length differs from the series.
func (d *Derived) Add(name string, values []float64) error {
	if reserved[strings.ToUpper(name)] {
		return fmt.Errorf("%w: %s is a bar field", ErrColumnExists, name)
	}
	if _, ok := d.cols[name]; ok {
		return fmt.Errorf("%w: %s", ErrColumnExists, name)
	}
	if len(values) != d.n {
		return fmt.Errorf("column %s has %d values, series has %d", name, len(values), d.n)
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	d.cols[name] = cp
	d.order = append(d.order, name)
	return nil
}

// Column returns a copy of the named column.
func (d *Derived) Column(name string) ([]float64, bool) {
	v, ok := d.cols[name]
	if !ok {
		return nil, false
	}
	cp := make([]float64, len(v))
	copy(cp, v)
	return cp, true
}

// At returns the value at index i; ok is false when the column is missing,
// i is out of range, or the value is undefined.
func (d *Derived) At(name string, i int) (float64, bool) {
	v, ok := d.cols[name]
	if !ok || i < 0 || i >= len(v) || math.IsNaN(v[i]) {
		return 0, false
	}
	return v[i], true
}

// Last is At for the final position.
func (d *Derived) Last(name string) (float64, bool) {
	return d.At(name, d.n-1)
}

// Names returns column names in insertion order.
func (d *Derived) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d *Derived) Len() int { return d.n }
