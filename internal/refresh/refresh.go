// Package refresh runs a task now and then on a fixed interval until the
// owning context ends.
package refresh

import (
    "context"
    "time"
)

// Loop calls fn immediately and then every interval. It returns when ctx
// is done; the ticker is released on return. An fn call in flight is not
// interrupted by Loop itself, fn should watch ctx.
func Loop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
    if ctx.Err() != nil {
        return
    }
    fn(ctx)
    if interval <= 0 {
        return
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            fn(ctx)
        }
    }
}
