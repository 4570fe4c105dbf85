package cmd

import (
	"fmt"
	"os"
	"strings"

	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cryptopulse",
	Short: "Technical-analysis trading signals for crypto markets",
	Long: `CryptoPulse evaluates OHLCV candles for a crypto symbol on a chosen
timeframe, computes the indicator set for that timeframe class and
synthesizes a STRONG_BUY / BUY / NEUTRAL / SELL / STRONG_SELL signal.

Examples:
  cryptopulse analyze --symbol BTC-USD --timeframe 1h
  cryptopulse watch
  cryptopulse config init`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if category := model.ErrorCategory(err); category != "INTERNAL" {
			fmt.Fprintf(os.Stderr, "error [%s]: %v\n", category, err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return config.DefaultPath
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
