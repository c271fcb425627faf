package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("missing.yaml")
	require.NoError(t, err)

	assert.Equal(t, "KRW=X", cfg.DataSource.RateSymbol)
	assert.Equal(t, "DX-Y.NYB", cfg.DataSource.DXYSymbol)
	assert.Equal(t, 252, cfg.Analysis.Window)
	assert.Equal(t, 1_000_000.0, cfg.Analysis.Amount)
	assert.Equal(t, 0.002, cfg.Analysis.FeeRate)
	assert.Equal(t, 72*time.Hour, cfg.Cache.MaxAge)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateTelegram())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  window: 126
  amount: 500000
  fee_rate: 0
cache:
  max_age: 1h
telegram:
  bot_token: file-token
`), 0o644))

	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("ANALYSIS_WINDOW", "504")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 504, cfg.Analysis.Window)
	assert.Equal(t, 500000.0, cfg.Analysis.Amount)
	assert.Equal(t, 0.0, cfg.Analysis.FeeRate)
	assert.Equal(t, time.Hour, cfg.Cache.MaxAge)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.NoError(t, cfg.ValidateTelegram())
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("missing.yaml")
	require.NoError(t, err)

	cfg.Analysis.Window = 100
	assert.Error(t, cfg.Validate())

	cfg.Analysis.Window = 504
	cfg.Analysis.Amount = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_NegativeFeeRateRejected(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  fee_rate: -0.01\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, -0.01, cfg.Analysis.FeeRate)
	assert.Error(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
