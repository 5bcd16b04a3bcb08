package main

import (
    "context"
    "log"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "strconv"
    "syscall"
    "time"

    "zoff/internal/aggregate"
    "zoff/internal/cache"
    "zoff/internal/config"
    "zoff/internal/httpx"
    "zoff/internal/logger"
    "zoff/internal/pricehistory"
    "zoff/internal/provider"
    "zoff/internal/provider/dflow"
    "zoff/internal/provider/jupiter"
    "zoff/internal/provider/raydium"
    "zoff/internal/provider/titan"
)

func main() {
    if err := config.LoadDotEnv(); err != nil { log.Fatalf("dotenv: %v", err) }
    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil { log.Fatalf("config: %v", err) }
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    lg := logger.New(cfg.Log.Level, cfg.Log.Format)
    slog.SetDefault(lg)

    timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
    httpClient := httpx.New(timeout)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    store, closeStore := newStore(ctx, cfg, lg)
    defer closeStore()

    a := &api{
        quotes: aggregate.New(lg, timeout, buildFetchers(cfg, httpClient)...),
        prices: &cache.History{
            Source:       newPriceClient(cfg, httpClient),
            Store:        store,
            TTL:          time.Duration(cfg.Cache.TTLSeconds) * time.Second,
            FetchTimeout: timeout,
            Logger:       lg,
        },
        defaultSlippage: strconv.Itoa(cfg.Quote.DefaultSlippageBps),
        log:             lg,
    }

    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           a.routes(),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      timeout + 10*time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        lg.Info("server listening", "port", cfg.Server.Port,
            "dflow", cfg.DFlow.APIKey != "", "titan", cfg.Titan.URL != "", "redis", cfg.Redis.Addr != "")
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

// buildFetchers returns every platform fetcher. dFlow and Titan stay in the
// list without credentials; they report themselves unconfigured per call.
func buildFetchers(cfg config.Config, hc provider.HTTPClient) []provider.Fetcher {
    return []provider.Fetcher{
        jupiter.New(jupiter.Config{Endpoint: cfg.Jupiter.Endpoint}, hc),
        raydium.New(raydium.Config{Endpoint: cfg.Raydium.Endpoint, TxVersion: cfg.Raydium.TxVersion}, hc),
        dflow.New(dflow.Config{Endpoint: cfg.DFlow.Endpoint, APIKey: cfg.DFlow.APIKey}, hc),
        titan.New(titan.Config{URL: cfg.Titan.URL}, hc),
    }
}

func newPriceClient(cfg config.Config, hc provider.HTTPClient) *pricehistory.Client {
    return pricehistory.New(pricehistory.Config{
        Endpoint:   cfg.CoinGecko.Endpoint,
        CoinID:     cfg.CoinGecko.CoinID,
        VsCurrency: cfg.CoinGecko.VsCurrency,
        APIKey:     cfg.CoinGecko.APIKey,
    }, hc)
}

// newStore picks Redis when configured and reachable, memory otherwise.
func newStore(ctx context.Context, cfg config.Config, lg *slog.Logger) (cache.Store, func()) {
    if cfg.Redis.Addr != "" {
        r, err := cache.NewRedis(ctx, cache.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
        if err == nil {
            return r, func() { _ = r.Close() }
        }
        lg.Warn("redis unavailable, using in-memory price cache", "error", err)
    }
    return cache.NewMemory(cfg.Cache.MaxItems), func() {}
}
