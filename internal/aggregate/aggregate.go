package aggregate

import (
    "context"
    "fmt"
    "log/slog"
    "sort"
    "strings"
    "sync"
    "time"

    "cosmossdk.io/math"

    "zoff/internal/provider"
    "zoff/internal/token"
)

// DefaultTimeout bounds every upstream quote call.
const DefaultTimeout = 10 * time.Second

// DefaultSlippageBps is used when a request carries none.
const DefaultSlippageBps = "50"

// MissingParamError lists required request parameters that were absent.
type MissingParamError struct {
    Names []string
}

func (e *MissingParamError) Error() string {
    return "Missing required params: " + strings.Join(e.Names, ", ")
}

// InvalidParamError is a present parameter with an unusable value.
type InvalidParamError struct {
    Name   string
    Value  string
    Reason string
}

func (e *InvalidParamError) Error() string {
    return fmt.Sprintf("Invalid param %s=%q: %s", e.Name, e.Value, e.Reason)
}

// Validate rejects a request before any upstream call is made.
// It fills in the default slippage when empty.
func Validate(req *provider.SwapRequest) error {
    var missing []string
    if req.InputMint == "" { missing = append(missing, "inputMint") }
    if req.OutputMint == "" { missing = append(missing, "outputMint") }
    if req.Amount == "" { missing = append(missing, "amount") }
    if len(missing) > 0 {
        return &MissingParamError{Names: missing}
    }

    if err := token.ValidateMint(req.InputMint); err != nil {
        return &InvalidParamError{Name: "inputMint", Value: req.InputMint, Reason: "not a base58 public key"}
    }
    if err := token.ValidateMint(req.OutputMint); err != nil {
        return &InvalidParamError{Name: "outputMint", Value: req.OutputMint, Reason: "not a base58 public key"}
    }
    if n, ok := math.NewIntFromString(req.Amount); !ok || !n.IsPositive() {
        return &InvalidParamError{Name: "amount", Value: req.Amount, Reason: "must be a positive integer in smallest units"}
    }

    if req.SlippageBps == "" {
        req.SlippageBps = DefaultSlippageBps
    }
    bps, ok := math.NewIntFromString(req.SlippageBps)
    if !ok || bps.IsNegative() || bps.GT(math.NewInt(10_000)) {
        return &InvalidParamError{Name: "slippageBps", Value: req.SlippageBps, Reason: "must be an integer between 0 and 10000"}
    }
    return nil
}

// Aggregator fans a swap request out to every fetcher.
type Aggregator struct {
    Fetchers []provider.Fetcher
    // Timeout bounds each fetcher call; zero means DefaultTimeout.
    Timeout time.Duration
    Logger  *slog.Logger
}

func New(logger *slog.Logger, timeout time.Duration, fetchers ...provider.Fetcher) *Aggregator {
    return &Aggregator{Fetchers: fetchers, Timeout: timeout, Logger: logger}
}

// Quotes calls all fetchers concurrently and returns their ranked quotes.
// Unconfigured fetchers are left out. Ties keep fetcher order, whatever
// order the calls finish in. The result is never nil and Quotes never
// fails: every provider failure is carried in Quote.Error.
func (a *Aggregator) Quotes(ctx context.Context, req provider.SwapRequest) []provider.Quote {
    timeout := a.Timeout
    if timeout <= 0 { timeout = DefaultTimeout }

    type result struct {
        quote provider.Quote
        ok    bool
    }
    results := make([]result, len(a.Fetchers))
    var wg sync.WaitGroup
    for i, f := range a.Fetchers {
        wg.Add(1)
        go func() {
            defer wg.Done()
            q, ok := a.fetchOne(ctx, f, req, timeout)
            results[i] = result{quote: q, ok: ok}
        }()
    }
    wg.Wait()

    quotes := make([]provider.Quote, 0, len(results))
    for _, r := range results {
        if r.ok { quotes = append(quotes, r.quote) }
    }
    Rank(quotes)
    return quotes
}

func (a *Aggregator) fetchOne(ctx context.Context, f provider.Fetcher, req provider.SwapRequest, timeout time.Duration) (q provider.Quote, ok bool) {
    ctx, cancel := context.WithTimeout(ctx, timeout)
    defer cancel()

    start := time.Now()
    defer func() {
        if rec := recover(); rec != nil {
            q, ok = provider.Failed(f.Platform(), req.Amount, fmt.Errorf("panic: %v", rec)), true
        }
        a.log(f.Platform(), q, ok, time.Since(start))
    }()
    return f.Quote(ctx, req)
}

func (a *Aggregator) log(p provider.Platform, q provider.Quote, ok bool, took time.Duration) {
    if a.Logger == nil { return }
    switch {
    case !ok:
        a.Logger.Debug("provider not configured", "platform", p)
    case q.Error != "":
        a.Logger.Warn("quote failed", "platform", p, "took", took, "error", q.Error)
    default:
        a.Logger.Debug("quote", "platform", p, "took", took, "out", q.OutputAmount, "route", q.Route)
    }
}

// Rank orders quotes in place: usable quotes first, by output amount
// descending (compared as big integers), then quotes carrying an error.
func Rank(quotes []provider.Quote) {
    type ranked struct {
        q   provider.Quote
        out math.Int
    }
    rs := make([]ranked, len(quotes))
    for i, q := range quotes {
        n, ok := math.NewIntFromString(q.OutputAmount)
        if !ok { n = math.ZeroInt() }
        rs[i] = ranked{q: q, out: n}
    }
    sort.SliceStable(rs, func(i, j int) bool {
        a, b := rs[i], rs[j]
        if a.q.OK() != b.q.OK() { return a.q.OK() }
        if !a.q.OK() { return false }
        return a.out.GT(b.out)
    })
    for i := range rs { quotes[i] = rs[i].q }
}

// Best returns the first usable quote of a ranked list.
func Best(quotes []provider.Quote) (provider.Quote, bool) {
    for _, q := range quotes {
        if q.OK() { return q, true }
    }
    return provider.Quote{}, false
}
