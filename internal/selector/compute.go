package selector

import (
	"context"
	"fmt"

	"CryptoPulse/internal/calculator"
	"CryptoPulse/internal/model"

	"golang.org/x/sync/errgroup"
)

// Compute runs one indicator over the series and returns its columns by name.
func (ind Indicator) Compute(s *model.Series) (map[string][]float64, error) {
	closes := s.Closes()
	switch ind.Kind {
	case KindSMA:
		v, err := calculator.CalculateSMA(closes, ind.Period)
		return single(model.SMAColumn(ind.Period), v, err)
	case KindEMA:
		v, err := calculator.CalculateEMA(closes, ind.Period)
		return single(model.EMAColumn(ind.Period), v, err)
	case KindRSI:
		v, err := calculator.CalculateRSI(closes, ind.Period)
		return single(model.RSIColumn(ind.Period), v, err)
	case KindMACD:
		m, err := calculator.CalculateMACD(closes, ind.Fast, ind.Slow, ind.Signal)
		if err != nil {
			return nil, err
		}
		return map[string][]float64{
			model.ColMACD:       m.Value,
			model.ColMACDSignal: m.Signal,
			model.ColMACDHist:   m.Hist,
		}, nil
	case KindBollinger:
		b, err := calculator.CalculateBollinger(closes, ind.Period, ind.K)
		if err != nil {
			return nil, err
		}
		return map[string][]float64{
			model.ColBBUpper: b.Upper,
			model.ColBBMid:   b.Mid,
			model.ColBBLower: b.Lower,
		}, nil
	case KindVWAP:
		v, err := calculator.CalculateVWAP(s.Highs(), s.Lows(), closes, s.Volumes())
		return single(model.ColVWAP, v, err)
	case KindOBV:
		v, err := calculator.CalculateOBV(closes, s.Volumes())
		return single(model.ColOBV, v, err)
	case KindIchimoku:
		ich, err := calculator.CalculateIchimoku(s.Highs(), s.Lows(), ind.Fast, ind.Slow)
		if err != nil {
			return nil, err
		}
		return map[string][]float64{
			model.ColTenkan: ich.Tenkan,
			model.ColKijun:  ich.Kijun,
		}, nil
	default:
		return nil, fmt.Errorf("unknown indicator kind %q", ind.Kind)
	}
}

func single(name string, v []float64, err error) (map[string][]float64, error) {
	if err != nil {
		return nil, err
	}
	return map[string][]float64{name: v}, nil
}

// Compute evaluates every indicator in the set concurrently and assembles the
// derived columns in table order. Identical invocations are computed once;
// distinct invocations writing the same column fail with ErrColumnExists.
func (s Set) Compute(ctx context.Context, series *model.Series) (*model.Derived, error) {
	indicators := s.unique()
	results := make([]map[string][]float64, len(indicators))

	g, _ := errgroup.WithContext(ctx)
	for i, ind := range indicators {
		i, ind := i, ind
		g.Go(func() error {
			cols, err := ind.Compute(series)
			if err != nil {
				return fmt.Errorf("compute %s: %w", ind.Name(), err)
			}
			results[i] = cols
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	derived := model.NewDerived(series.Len())
	for i, ind := range indicators {
		for _, name := range ind.Columns() {
			if err := derived.Add(name, results[i][name]); err != nil {
				return nil, fmt.Errorf("add %s: %w", ind.Name(), err)
			}
		}
	}
	return derived, nil
}

func (s Set) unique() []Indicator {
	seen := make(map[Indicator]bool, len(s.Indicators))
	out := make([]Indicator, 0, len(s.Indicators))
	for _, ind := range s.Indicators {
		if seen[ind] {
			continue
		}
		seen[ind] = true
		out = append(out, ind)
	}
	return out
}
