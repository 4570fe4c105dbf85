package cmd

import (
	"os/signal"
	"syscall"

	"CryptoPulse/internal/metrics"
	"CryptoPulse/internal/notifier"
	"CryptoPulse/internal/scheduler"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Evaluate the configured targets on a cron schedule",
	Long: `Run until interrupted, evaluating every watch target on watch.cron.
Each evaluation is recorded when database.sqlite_path is set; a Telegram
message is sent when a target's signal changes. With telegram.polling the
bot also answers /signal SYMBOL TIMEFRAME and /help.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	logger.Info("CryptoPulse starting")

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy, logger)
		sender = tn
	} else {
		logger.Warn("telegram not configured, signal changes are only logged")
	}

	targets := make([]scheduler.Target, len(cfg.Watch.Targets))
	for i, t := range cfg.Watch.Targets {
		targets[i] = scheduler.Target{Symbol: t.Symbol, Timeframe: t.Timeframe}
	}

	sched := scheduler.NewScheduler(ctx, a.analyzer, sender, a.recorder, targets, logger)
	sched.Symbols = cfg.Analysis.Symbols
	sched.NotifyNeutral = cfg.Watch.NotifyNeutral
	if err := sched.Register(cfg.Watch.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, a.registry, logger); err != nil {
				logger.WithError(err).Error("metrics server")
			}
		}()
	}

	if tn != nil && cfg.Telegram.Polling {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	if cfg.Watch.RunOnStart {
		logger.Info("run_on_start enabled, evaluating targets now")
		go sched.RunNow()
	}

	logger.WithField("cron", cfg.Watch.Cron).Info("CryptoPulse is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping")
	return nil
}
