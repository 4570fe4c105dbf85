package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"CryptoPulse/internal/model"
	"CryptoPulse/internal/notifier"
	"CryptoPulse/internal/recorder"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Analyzer runs one evaluation.
type Analyzer interface {
	Analyze(ctx context.Context, symbol, timeframe string) (*model.Analysis, error)
}

// Sender delivers a report to the user.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Target is one watched (symbol, timeframe) pair.
type Target struct {
	Symbol    string
	Timeframe string
}

func (t Target) String() string { return t.Symbol + " " + t.Timeframe }

// Scheduler periodically evaluates the configured targets.
type Scheduler struct {
	Cron          *cron.Cron
	Analyzer      Analyzer
	Notifier      Sender // nil disables notifications
	Recorder      recorder.Recorder
	Targets       []Target
	Symbols       []string // allowed in chat commands; empty allows any
	NotifyNeutral bool
	Logger        *logrus.Logger
	Ctx           context.Context

	mu   sync.Mutex
	last map[Target]model.SignalType
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an Analyzer, sender Sender, rec recorder.Recorder, targets []Target, logger *logrus.Logger) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Notifier: sender,
		Recorder: rec,
		Targets:  targets,
		Logger:   logger,
		Ctx:      ctx,
		last:     make(map[Target]model.SignalType),
	}
}

// Register adds the evaluation job on the given cron spec (with seconds field).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.WithField("targets", len(s.Targets)).Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow evaluates every target once, sequentially.
func (s *Scheduler) RunNow() {
	for _, t := range s.Targets {
		if s.Ctx.Err() != nil {
			return
		}
		s.evaluate(t)
	}
}

func (s *Scheduler) evaluate(t Target) {
	log := s.Logger.WithField("target", t.String())

	a, err := s.Analyzer.Analyze(s.Ctx, t.Symbol, t.Timeframe)
	if err != nil {
		log.WithError(err).Error("scheduled evaluation failed")
		return
	}
	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.WithError(err).Error("record analysis")
	}
	if s.changed(t, a.Signal.Signal.Type) {
		s.trySend(notifier.FormatReport(a))
	}
}

// changed remembers sig as the latest signal for t and reports whether a
// notification is due. A move to NEUTRAL is silent unless NotifyNeutral is set.
func (s *Scheduler) changed(t Target, sig model.SignalType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, seen := s.last[t]
	s.last[t] = sig
	if seen && prev == sig {
		return false
	}
	if sig == model.SignalNeutral && !s.NotifyNeutral {
		return false
	}
	return true
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	cmd, args := notifier.ParseCommand(command)
	switch cmd {
	case "/signal":
		if len(args) != 2 {
			return "Usage: /signal SYMBOL TIMEFRAME\n\n" + notifier.FormatHelp(s.Symbols)
		}
		symbol := strings.ToUpper(args[0])
		if !s.allowed(symbol) {
			return fmt.Sprintf("Unknown symbol %s.\n\n%s", symbol, notifier.FormatHelp(s.Symbols))
		}
		a, err := s.Analyzer.Analyze(ctx, symbol, args[1])
		if err != nil {
			return notifier.FormatError(symbol, args[1], err)
		}
		if err := s.Recorder.RecordAnalysis(a); err != nil {
			s.Logger.WithError(err).Error("record analysis")
		}
		return notifier.FormatReport(a)
	default:
		return notifier.FormatHelp(s.Symbols)
	}
}

func (s *Scheduler) allowed(symbol string) bool {
	if len(s.Symbols) == 0 {
		return true
	}
	for _, sym := range s.Symbols {
		if strings.EqualFold(sym, symbol) {
			return true
		}
	}
	return false
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.WithError(err).Error("send notification")
	}
}
