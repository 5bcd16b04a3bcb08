package cache

import (
    "context"
    "encoding/json"
    "log/slog"
    "time"

    "golang.org/x/sync/singleflight"

    "zoff/internal/pricehistory"
)

// History caches price series per lookback window for TTL.
// Concurrent misses for the same window share one upstream call.
type History struct {
    Source pricehistory.Source
    Store  Store
    TTL    time.Duration
    // FetchTimeout bounds a shared upstream call; zero means DefaultFetchTimeout.
    FetchTimeout time.Duration
    Logger       *slog.Logger

    sf singleflight.Group
}

// DefaultFetchTimeout bounds a shared upstream call when FetchTimeout is unset.
const DefaultFetchTimeout = 30 * time.Second

func historyKey(days string) string { return "price:" + days }

// History returns a cached series when fresh, otherwise asks Source.
// Store failures are logged and bypassed; upstream errors are never cached.
func (h *History) History(ctx context.Context, days string) (pricehistory.Series, error) {
    if h.Store == nil || h.TTL <= 0 {
        return h.Source.History(ctx, days)
    }
    key := historyKey(days)
    if s, ok := h.lookup(ctx, key); ok {
        return s, nil
    }

    // The shared call is detached from each caller's cancellation; callers
    // stop waiting on their own ctx.
    ch := h.sf.DoChan(key, func() (any, error) {
        timeout := h.FetchTimeout
        if timeout <= 0 { timeout = DefaultFetchTimeout }
        fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
        defer cancel()

        s, err := h.Source.History(fctx, days)
        if err != nil {
            return nil, err
        }
        if b, err := json.Marshal(s); err == nil {
            if err := h.Store.Set(fctx, key, b, h.TTL); err != nil {
                h.warn("cache set failed", key, err)
            }
        }
        return s, nil
    })
    select {
    case <-ctx.Done():
        return pricehistory.Series{}, ctx.Err()
    case r := <-ch:
        if r.Err != nil {
            return pricehistory.Series{}, r.Err
        }
        return r.Val.(pricehistory.Series), nil
    }
}

func (h *History) lookup(ctx context.Context, key string) (pricehistory.Series, bool) {
    b, ok, err := h.Store.Get(ctx, key)
    if err != nil {
        h.warn("cache get failed", key, err)
        return pricehistory.Series{}, false
    }
    if !ok {
        return pricehistory.Series{}, false
    }
    var s pricehistory.Series
    if err := json.Unmarshal(b, &s); err != nil {
        h.warn("cache entry unreadable", key, err)
        return pricehistory.Series{}, false
    }
    return s, true
}

func (h *History) warn(msg, key string, err error) {
    if h.Logger != nil {
        h.Logger.Warn(msg, "key", key, "error", err)
    }
}
