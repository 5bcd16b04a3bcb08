package config

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
    t.Helper()
    p := filepath.Join(t.TempDir(), name)
    require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
    return p
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
    cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
    require.NoError(t, err)
    require.Equal(t, Default(), cfg)
    require.NoError(t, cfg.Validate())
}

func TestLoad_JSON(t *testing.T) {
    p := writeFile(t, "config.json", `{"server":{"port":"9090"},"titan":{"url":"https://titan.example"},"cache":{"ttl_sec":5}}`)
    cfg, err := Load(p)
    require.NoError(t, err)
    require.Equal(t, "9090", cfg.Server.Port)
    require.Equal(t, 10, cfg.Server.RequestTimeoutSec)
    require.Equal(t, "https://titan.example", cfg.Titan.URL)
    require.Equal(t, 5, cfg.Cache.TTLSeconds)
}

func TestLoad_YAMLExpandsEnv(t *testing.T) {
    t.Setenv("TEST_DFLOW_KEY", "secret")
    p := writeFile(t, "config.yaml", "dflow:\n  api_key: ${TEST_DFLOW_KEY}\nlog:\n  format: text\n")
    cfg, err := Load(p)
    require.NoError(t, err)
    require.Equal(t, "secret", cfg.DFlow.APIKey)
    require.Equal(t, "https://quote-api.dflow.net/quote", cfg.DFlow.Endpoint)
    require.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_BadFile(t *testing.T) {
    _, err := Load(writeFile(t, "config.json", "{"))
    require.ErrorContains(t, err, "parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
    t.Setenv("PORT", "3000")
    t.Setenv("REQUEST_TIMEOUT_SEC", "4")
    t.Setenv("DFLOW_API_KEY", "k")
    t.Setenv("TITAN_API_URL", "https://titan.example")
    t.Setenv("COINGECKO_ID", "solana")
    t.Setenv("PRICE_CACHE_TTL_SEC", "0")
    t.Setenv("REDIS_ADDR", "localhost:6379")
    t.Setenv("REDIS_DB", "2")
    t.Setenv("DEFAULT_SLIPPAGE_BPS", "100")
    t.Setenv("LOG_LEVEL", "debug")

    cfg, err := Load(writeFile(t, "config.json", `{"server":{"port":"9090"}}`))
    require.NoError(t, err)
    require.Equal(t, "3000", cfg.Server.Port)
    require.Equal(t, 4, cfg.Server.RequestTimeoutSec)
    require.Equal(t, "k", cfg.DFlow.APIKey)
    require.Equal(t, "https://titan.example", cfg.Titan.URL)
    require.Equal(t, "solana", cfg.CoinGecko.CoinID)
    require.Zero(t, cfg.Cache.TTLSeconds)
    require.Equal(t, "localhost:6379", cfg.Redis.Addr)
    require.Equal(t, 2, cfg.Redis.DB)
    require.Equal(t, 100, cfg.Quote.DefaultSlippageBps)
    require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_IgnoresUnparsableEnvNumbers(t *testing.T) {
    t.Setenv("REQUEST_TIMEOUT_SEC", "soon")
    cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
    require.NoError(t, err)
    require.Equal(t, 10, cfg.Server.RequestTimeoutSec)
}

func TestValidate(t *testing.T) {
    cfg := Default()
    cfg.Server.Port = "http"
    cfg.Server.RequestTimeoutSec = 0
    cfg.Quote.DefaultSlippageBps = 20_000
    err := cfg.Validate()
    require.ErrorContains(t, err, "server.port")
    require.ErrorContains(t, err, "request_timeout_sec")
    require.ErrorContains(t, err, "default_slippage_bps")
}

func TestLoadDotEnv(t *testing.T) {
    p := writeFile(t, ".env", "ZOFF_TEST_FROM_DOTENV=yes\n")
    t.Setenv("ZOFF_TEST_FROM_DOTENV", "")
    os.Unsetenv("ZOFF_TEST_FROM_DOTENV")

    require.NoError(t, LoadDotEnv(p))
    require.Equal(t, "yes", os.Getenv("ZOFF_TEST_FROM_DOTENV"))

    require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
