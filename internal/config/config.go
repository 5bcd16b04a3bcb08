package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    "github.com/joho/godotenv"
    "gopkg.in/yaml.v3"
)

type Server struct {
    Port              string `json:"port" yaml:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
}

type Jupiter struct {
    Endpoint string `json:"endpoint" yaml:"endpoint"`
}

type Raydium struct {
    Endpoint  string `json:"endpoint" yaml:"endpoint"`
    TxVersion string `json:"tx_version" yaml:"tx_version"`
}

// DFlow is skipped entirely when APIKey is empty.
type DFlow struct {
    APIKey   string `json:"api_key" yaml:"api_key"`
    Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// Titan is skipped entirely when URL is empty.
type Titan struct {
    URL string `json:"url" yaml:"url"`
}

type CoinGecko struct {
    Endpoint   string `json:"endpoint" yaml:"endpoint"`
    CoinID     string `json:"coin_id" yaml:"coin_id"`
    VsCurrency string `json:"vs_currency" yaml:"vs_currency"`
    APIKey     string `json:"api_key" yaml:"api_key"`
}

type Cache struct {
    TTLSeconds int `json:"ttl_sec" yaml:"ttl_sec"`
    MaxItems   int `json:"max_items" yaml:"max_items"`
}

// Redis replaces the in-memory price cache when Addr is set.
type Redis struct {
    Addr     string `json:"addr" yaml:"addr"`
    Password string `json:"password" yaml:"password"`
    DB       int    `json:"db" yaml:"db"`
}

type Quote struct {
    DefaultSlippageBps int `json:"default_slippage_bps" yaml:"default_slippage_bps"`
}

type Log struct {
    Level  string `json:"level" yaml:"level"`
    Format string `json:"format" yaml:"format"`
}

type Config struct {
    Server    Server    `json:"server" yaml:"server"`
    Jupiter   Jupiter   `json:"jupiter" yaml:"jupiter"`
    Raydium   Raydium   `json:"raydium" yaml:"raydium"`
    DFlow     DFlow     `json:"dflow" yaml:"dflow"`
    Titan     Titan     `json:"titan" yaml:"titan"`
    CoinGecko CoinGecko `json:"coingecko" yaml:"coingecko"`
    Cache     Cache     `json:"cache" yaml:"cache"`
    Redis     Redis     `json:"redis" yaml:"redis"`
    Quote     Quote     `json:"quote" yaml:"quote"`
    Log       Log       `json:"log" yaml:"log"`
}

func Default() Config {
    return Config{
        Server:  Server{Port: "8080", RequestTimeoutSec: 10},
        Jupiter: Jupiter{Endpoint: "https://api.jup.ag/swap/v1/quote"},
        Raydium: Raydium{
            Endpoint:  "https://transaction-v1.raydium.io/compute/swap-base-in",
            TxVersion: "V0",
        },
        DFlow: DFlow{Endpoint: "https://quote-api.dflow.net/quote"},
        CoinGecko: CoinGecko{
            Endpoint:   "https://api.coingecko.com/api/v3",
            CoinID:     "jito-staked-sol",
            VsCurrency: "usd",
        },
        Cache: Cache{TTLSeconds: 60, MaxItems: 256},
        Quote: Quote{DefaultSlippageBps: 50},
        Log:   Log{Level: "info", Format: "json"},
    }
}

// LoadDotEnv loads .env files into the process environment. Variables
// already set win; a missing file is not an error.
func LoadDotEnv(files ...string) error {
    if len(files) == 0 { files = []string{".env"} }
    for _, f := range files {
        if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
            return fmt.Errorf("load %s: %w", f, err)
        }
    }
    return nil
}

// Load reads config from path. JSON by default; .yaml and .yml files are
// parsed as YAML after ${VAR} expansion. If path is empty, config.json or
// config.yaml in the working directory is used when present. Environment
// variables override file values.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        for _, p := range []string{"config.json", "config.yaml", "config.yml"} {
            if _, err := os.Stat(p); err == nil { path = p; break }
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := decode(path, b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
    switch strings.ToLower(filepath.Ext(path)) {
    case ".yaml", ".yml":
        return yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), cfg)
    default:
        return json.Unmarshal(b, cfg)
    }
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 { cfg.Server.RequestTimeoutSec = x }

    if v := os.Getenv("JUPITER_ENDPOINT"); v != "" { cfg.Jupiter.Endpoint = v }
    if v := os.Getenv("RAYDIUM_ENDPOINT"); v != "" { cfg.Raydium.Endpoint = v }
    if v := os.Getenv("DFLOW_API_KEY"); v != "" { cfg.DFlow.APIKey = v }
    if v := os.Getenv("DFLOW_ENDPOINT"); v != "" { cfg.DFlow.Endpoint = v }
    if v := os.Getenv("TITAN_API_URL"); v != "" { cfg.Titan.URL = v }

    if v := os.Getenv("COINGECKO_ENDPOINT"); v != "" { cfg.CoinGecko.Endpoint = v }
    if v := os.Getenv("COINGECKO_ID"); v != "" { cfg.CoinGecko.CoinID = v }
    if v := os.Getenv("COINGECKO_API_KEY"); v != "" { cfg.CoinGecko.APIKey = v }

    if x, ok := envInt("PRICE_CACHE_TTL_SEC"); ok && x >= 0 { cfg.Cache.TTLSeconds = x }
    if x, ok := envInt("PRICE_CACHE_MAX_ITEMS"); ok && x > 0 { cfg.Cache.MaxItems = x }

    if v := os.Getenv("REDIS_ADDR"); v != "" { cfg.Redis.Addr = v }
    if v := os.Getenv("REDIS_PASSWORD"); v != "" { cfg.Redis.Password = v }
    if x, ok := envInt("REDIS_DB"); ok && x >= 0 { cfg.Redis.DB = x }

    if x, ok := envInt("DEFAULT_SLIPPAGE_BPS"); ok { cfg.Quote.DefaultSlippageBps = x }

    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
    if v := os.Getenv("LOG_FORMAT"); v != "" { cfg.Log.Format = v }
}

func envInt(key string) (int, bool) {
    v := strings.TrimSpace(os.Getenv(key))
    if v == "" { return 0, false }
    x, err := strconv.Atoi(v)
    if err != nil { return 0, false }
    return x, true
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
    var errs []error
    if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || p > 65535 {
        errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
    }
    if c.Server.RequestTimeoutSec <= 0 {
        errs = append(errs, fmt.Errorf("server.request_timeout_sec must be positive, got %d", c.Server.RequestTimeoutSec))
    }
    if s := c.Quote.DefaultSlippageBps; s < 0 || s > 10_000 {
        errs = append(errs, fmt.Errorf("quote.default_slippage_bps must be within 0..10000, got %d", s))
    }
    if c.Cache.TTLSeconds < 0 {
        errs = append(errs, fmt.Errorf("cache.ttl_sec must not be negative, got %d", c.Cache.TTLSeconds))
    }
    if c.Jupiter.Endpoint == "" || c.Raydium.Endpoint == "" || c.CoinGecko.Endpoint == "" {
        errs = append(errs, errors.New("jupiter, raydium and coingecko endpoints are required"))
    }
    return errors.Join(errs...)
}
