package cmd

import (
	"fmt"
	"strings"

	"CryptoPulse/internal/notifier"

	"github.com/spf13/cobra"
)

var (
	analyzeSymbol    string
	analyzeTimeframe string
	analyzeRecord    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate one symbol on one timeframe and print the report",
	Long: `Fetch candles, compute the timeframe's indicator set and print the
synthesized signal with its sub-signals.

Timeframes: 5m, 15m (short), 1h (medium), 1d (long).

Examples:
  cryptopulse analyze --symbol BTC-USD --timeframe 1h
  cryptopulse analyze -s ETH-USD -t 1d`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeSymbol, "symbol", "s", "", "symbol to analyze (default analysis.default_symbol)")
	analyzeCmd.Flags().StringVarP(&analyzeTimeframe, "timeframe", "t", "", "timeframe: 5m, 15m, 1h or 1d (default analysis.default_timeframe)")
	analyzeCmd.Flags().BoolVar(&analyzeRecord, "record", false, "also write the result to the SQLite journal")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	symbol := strings.ToUpper(analyzeSymbol)
	if symbol == "" {
		symbol = cfg.Analysis.DefaultSymbol
	}
	timeframe := analyzeTimeframe
	if timeframe == "" {
		timeframe = cfg.Analysis.DefaultTimeframe
	}

	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.analyzer.Analyze(cmd.Context(), symbol, timeframe)
	if err != nil {
		return fmt.Errorf("analyze %s %s: %w", symbol, timeframe, err)
	}
	if analyzeRecord {
		if err := a.recorder.RecordAnalysis(res); err != nil {
			logger.WithError(err).Warn("record analysis")
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), notifier.FormatReport(res))
	return nil
}
