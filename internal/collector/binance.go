package collector

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"CryptoPulse/internal/model"

	"github.com/adshao/go-binance/v2"
)

// BinanceFetcher implements Fetcher using Binance spot klines.
type BinanceFetcher struct {
	Client *binance.Client
}

// NewBinanceFetcher creates a fetcher for public market data; no API key is needed.
func NewBinanceFetcher(proxyURL string) *BinanceFetcher {
	client := binance.NewClient("", "")
	client.HTTPClient = newHTTPClient(proxyURL)
	return &BinanceFetcher{Client: client}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// BinanceSymbol converts "BTC-USD" style symbols to Binance pairs ("BTCUSDT").
func BinanceSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if base, quote, ok := strings.Cut(s, "-"); ok {
		if quote == "USD" {
			quote = "USDT"
		}
		return base + quote
	}
	return s
}

// FetchBars downloads the most recent klines for the timeframe.
func (f *BinanceFetcher) FetchBars(ctx context.Context, symbol string, tf model.Timeframe) ([]model.OHLCV, error) {
	klines, err := f.Client.NewKlinesService().
		Symbol(BinanceSymbol(symbol)).
		Interval(string(tf)).
		Limit(tf.Lookback().Bars).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: binance klines %s: %v", model.ErrFetch, symbol, err)
	}

	bars := make([]model.OHLCV, 0, len(klines))
	for i, k := range klines {
		bar, err := klineToBar(k)
		if err != nil {
			return nil, fmt.Errorf("%w: binance kline %d: %v", model.ErrFetch, i, err)
		}
		bars = append(bars, bar)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func klineToBar(k *binance.Kline) (model.OHLCV, error) {
	var vals [5]float64
	for i, s := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("parse %q: %w", s, err)
		}
		vals[i] = v
	}
	return model.OHLCV{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
