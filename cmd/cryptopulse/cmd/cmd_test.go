package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile, analyzeSymbol, analyzeTimeframe, analyzeRecord, configForce = "", "", "", false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = run(t, "config", "init", "--config", path)
	assert.Error(t, err)

	out, err = run(t, "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestAnalyze_MockProvider(t *testing.T) {
	t.Setenv("DATA_PROVIDER", "mock")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SQLITE_PATH", "")
	path := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := run(t, "analyze", "--config", path, "--symbol", "btc-usd", "--timeframe", "1d")
	require.NoError(t, err)
	assert.Contains(t, out, "BTC-USD 1d")
	assert.Contains(t, out, "Signal:")
}

func TestAnalyze_UnsupportedTimeframe(t *testing.T) {
	t.Setenv("DATA_PROVIDER", "mock")
	t.Setenv("REDIS_ADDR", "")
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := run(t, "analyze", "--config", path, "--timeframe", "4h")
	assert.Error(t, err)
}
