package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"CryptoPulse/internal/model"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAnalyzer returns the queued signal types in order per target.
type scriptedAnalyzer struct {
	mu      sync.Mutex
	signals map[string][]model.SignalType
	calls   []string
}

func (a *scriptedAnalyzer) Analyze(_ context.Context, symbol, timeframe string) (*model.Analysis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := symbol + " " + timeframe
	a.calls = append(a.calls, key)

	queue := a.signals[key]
	if len(queue) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", model.ErrFetch, key)
	}
	sig := queue[0]
	a.signals[key] = queue[1:]

	tf, err := model.ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	return &model.Analysis{
		ID:        fmt.Sprintf("%s-%d", key, len(a.calls)),
		Symbol:    symbol,
		Timeframe: tf,
		Snapshot:  &model.Snapshot{Series: &model.Series{}, Class: model.ClassShort},
		Signal:    &model.TradeSignal{Signal: model.Signal{Type: sig, Label: string(sig)}},
	}, nil
}

type captureSender struct {
	mu   sync.Mutex
	sent []string
}

func (c *captureSender) SendWithRetry(_ context.Context, text string, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

type captureRecorder struct{ ids []string }

func (r *captureRecorder) RecordAnalysis(a *model.Analysis) error {
	r.ids = append(r.ids, a.ID)
	return nil
}
func (r *captureRecorder) Close() error { return nil }

func newScheduler(an Analyzer, targets ...Target) (*Scheduler, *captureSender, *captureRecorder) {
	logger, _ := test.NewNullLogger()
	sender := &captureSender{}
	rec := &captureRecorder{}
	return NewScheduler(context.Background(), an, sender, rec, targets, logger), sender, rec
}

func TestRunNow_NotifiesOnChange(t *testing.T) {
	an := &scriptedAnalyzer{signals: map[string][]model.SignalType{
		"BTC-USD 1h": {model.SignalBuy, model.SignalBuy, model.SignalStrongBuy, model.SignalNeutral, model.SignalSell},
	}}
	s, sender, rec := newScheduler(an, Target{"BTC-USD", "1h"})

	for i := 0; i < 5; i++ {
		s.RunNow()
	}

	assert.Len(t, rec.ids, 5)
	require.Len(t, sender.sent, 3)
	assert.Contains(t, sender.sent[0], "Signal: BUY")
	assert.Contains(t, sender.sent[1], "Signal: STRONG_BUY")
	assert.Contains(t, sender.sent[2], "Signal: SELL")
}

func TestRunNow_NotifyNeutral(t *testing.T) {
	an := &scriptedAnalyzer{signals: map[string][]model.SignalType{
		"ETH-USD 1d": {model.SignalNeutral, model.SignalSell, model.SignalNeutral},
	}}
	s, sender, _ := newScheduler(an, Target{"ETH-USD", "1d"})
	s.NotifyNeutral = true

	s.RunNow()
	s.RunNow()
	s.RunNow()
	assert.Len(t, sender.sent, 3)
}

func TestRunNow_FailureDoesNotStopOtherTargets(t *testing.T) {
	an := &scriptedAnalyzer{signals: map[string][]model.SignalType{
		"ETH-USD 5m": {model.SignalBuy},
	}}
	s, sender, rec := newScheduler(an, Target{"BTC-USD", "5m"}, Target{"ETH-USD", "5m"})

	s.RunNow()
	assert.Equal(t, []string{"BTC-USD 5m", "ETH-USD 5m"}, an.calls)
	assert.Len(t, rec.ids, 1)
	assert.Len(t, sender.sent, 1)
}

func TestRunNow_WithoutNotifier(t *testing.T) {
	an := &scriptedAnalyzer{signals: map[string][]model.SignalType{"BTC-USD 1h": {model.SignalBuy}}}
	logger, _ := test.NewNullLogger()
	s := NewScheduler(context.Background(), an, nil, nil, []Target{{"BTC-USD", "1h"}}, logger)
	assert.NotPanics(t, s.RunNow)
}

func TestRegister(t *testing.T) {
	s, _, _ := newScheduler(&scriptedAnalyzer{})
	assert.NoError(t, s.Register("0 */15 * * * *"))
	assert.Error(t, s.Register("not a cron"))
}

func TestHandleCommand(t *testing.T) {
	an := &scriptedAnalyzer{signals: map[string][]model.SignalType{"BTC-USD 1h": {model.SignalStrongSell}}}
	s, _, rec := newScheduler(an)
	s.Symbols = []string{"BTC-USD", "ETH-USD"}
	ctx := context.Background()

	reply := s.HandleCommand(ctx, "/signal btc-usd 1h")
	assert.Contains(t, reply, "Signal: STRONG_SELL")
	assert.Len(t, rec.ids, 1)

	assert.Contains(t, s.HandleCommand(ctx, "/signal DOGE-USD 1h"), "Unknown symbol DOGE-USD")
	assert.Contains(t, s.HandleCommand(ctx, "/signal BTC-USD"), "Usage")
	assert.Contains(t, s.HandleCommand(ctx, "/signal ETH-USD 1h"), "FETCH_ERROR")
	assert.Contains(t, s.HandleCommand(ctx, "/help"), "/signal SYMBOL TIMEFRAME")
	assert.Contains(t, s.HandleCommand(ctx, "hello"), "Commands:")
}
