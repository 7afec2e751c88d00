package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "STORE_DRIVER", "STORE_PATH",
	"STORE_INITIAL_BALANCE", "DATABASE_URL", "REDIS_URL", "REDIS_KEY",
	"INTEREST_RATE", "FEES_AMOUNT", "TRANSFER_COUNTERPARTY_PATH",
	"JOURNAL_PATH", "JOURNAL_CAPACITY",
}

// cleanEnv clears the config variables and restores a clean slate after the
// test, including values godotenv set behind the test's back.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		for _, k := range configKeys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "balance.json", cfg.Store.Path)
	assert.Equal(t, money.MustParse("1000.00"), cfg.Store.InitialBalance)
	assert.True(t, decimal.RequireFromString("0.02").Equal(cfg.Interest.Rate))
	assert.Equal(t, money.MustParse("5.00"), cfg.Fees.Amount)
	assert.Equal(t, "accountsystem:balance", cfg.Redis.Key)
	assert.Empty(t, cfg.Transfer.CounterpartyPath)
	assert.Empty(t, cfg.Log.Format)
	assert.Equal(t, "[accountsystem]", cfg.Log.Prefix)
	assert.Empty(t, cfg.Journal.Path)
	assert.Equal(t, 1000, cfg.Journal.Capacity)
}

func TestLoad_FromEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("STORE_INITIAL_BALANCE", "12.5")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("INTEREST_RATE", "0.035")
	t.Setenv("FEES_AMOUNT", "1.99")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("JOURNAL_PATH", "/var/lib/acct/history.jsonl")
	t.Setenv("JOURNAL_CAPACITY", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, int64(1250), cfg.Store.InitialBalance.Cents())
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, "0.035", cfg.Interest.Rate.String())
	assert.Equal(t, money.MustParse("1.99"), cfg.Fees.Amount)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/lib/acct/history.jsonl", cfg.Journal.Path)
	assert.Equal(t, 50, cfg.Journal.Capacity)
}

func TestLoad_EnvFile(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"STORE_DRIVER=json\nSTORE_PATH=/tmp/acct.json\nAPP_ENV=test\n"), 0o600))

	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	// process environment wins over the file
	t.Setenv("APP_ENV", "production")

	cfg, err := Load("missing.env", "test.env")
	require.NoError(t, err)
	assert.Equal(t, DriverJSON, cfg.Store.Driver)
	assert.Equal(t, "/tmp/acct.json", cfg.Store.Path)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "STORE_DRIVER", "sqlite"},
		{"negative balance", "STORE_INITIAL_BALANCE", "-1.00"},
		{"negative rate", "INTEREST_RATE", "-0.01"},
		{"negative fee", "FEES_AMOUNT", "-5"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad app env", "APP_ENV", "staging"},
		{"bad db url", "DATABASE_URL", "not a url"},
		{"zero journal capacity", "JOURNAL_CAPACITY", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)

			cfg, err := Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_UnparsableValue(t *testing.T) {
	cleanEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("STORE_INITIAL_BALANCE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_INITIAL_BALANCE")
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrInvalidConfig)
}

func TestFindEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("X=1\n"), 0o600))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	found, err := FindEnvFile("")
	require.NoError(t, err)
	data, err := os.ReadFile(found)
	require.NoError(t, err)
	assert.Equal(t, "X=1\n", string(data))

	_, err = FindEnvFile("nope.env")
	assert.ErrorIs(t, err, os.ErrNotExist)

	abs := filepath.Join(dir, ".env")
	found, err = FindEnvFile(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, found)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "re****/0/0", maskValue("redis://localhost:6379/0/0"))
}
