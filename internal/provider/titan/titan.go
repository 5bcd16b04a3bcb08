package titan

import (
    "context"
    "net/url"

    "zoff/internal/provider"
)

type Config struct {
    // URL is the quote endpoint; empty disables the fetcher.
    URL          string
    MaxErrorBody int64
}

// Fetcher quotes swaps through a Titan quote endpoint.
type Fetcher struct {
    cfg    Config
    client provider.HTTPClient
}

func New(cfg Config, hc provider.HTTPClient) *Fetcher {
    if cfg.MaxErrorBody <= 0 { cfg.MaxErrorBody = provider.DefaultMaxErrorBody }
    return &Fetcher{cfg: cfg, client: hc}
}

func (f *Fetcher) Platform() provider.Platform { return provider.Titan }

// Configured reports whether a base URL is present.
func (f *Fetcher) Configured() bool { return f.cfg.URL != "" }

func (f *Fetcher) Quote(ctx context.Context, req provider.SwapRequest) (provider.Quote, bool) {
    if !f.Configured() {
        return provider.Quote{}, false
    }
    u, err := url.Parse(f.cfg.URL)
    if err != nil {
        return provider.Failed(provider.Titan, req.Amount, err), true
    }
    q := u.Query()
    q.Set("inputMint", req.InputMint)
    q.Set("outputMint", req.OutputMint)
    q.Set("amount", req.Amount)
    q.Set("slippageBps", req.SlippageBps)
    u.RawQuery = q.Encode()

    var body quoteResponse
    if err := provider.GetJSON(ctx, f.client, u.String(), nil, f.cfg.MaxErrorBody, &body); err != nil {
        return provider.Failed(provider.Titan, req.Amount, err), true
    }
    return parseQuote(body, req.Amount), true
}

// Titan already renders its route as a single string.
type quoteResponse struct {
    InAmount       provider.Lenient `json:"inAmount"`
    OutAmount      *string          `json:"outAmount"`
    PriceImpactPct provider.Lenient `json:"priceImpactPct"`
    Route          *string          `json:"route"`
}

func parseQuote(r quoteResponse, amount string) provider.Quote {
    out := provider.Or(r.OutAmount, "0")
    if err := provider.CheckAmount(out); err != nil {
        return provider.Failed(provider.Titan, amount, err)
    }
    return provider.Quote{
        Platform:       provider.Titan,
        InputAmount:    r.InAmount.Or(amount),
        OutputAmount:   out,
        PriceImpactPct: r.PriceImpactPct.Or("0"),
        Route:          provider.Or(r.Route, "direct"),
    }
}
