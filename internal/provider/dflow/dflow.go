package dflow

import (
    "context"
    "net/http"
    "net/url"

    "zoff/internal/provider"
)

const DefaultEndpoint = "https://quote-api.dflow.net/quote"

type Config struct {
    Endpoint string
    // APIKey is required; without it the fetcher reports itself unconfigured.
    APIKey       string
    MaxErrorBody int64
}

// Fetcher quotes swaps through the dFlow quote API.
type Fetcher struct {
    cfg    Config
    client provider.HTTPClient
}

func New(cfg Config, hc provider.HTTPClient) *Fetcher {
    if cfg.Endpoint == "" { cfg.Endpoint = DefaultEndpoint }
    if cfg.MaxErrorBody <= 0 { cfg.MaxErrorBody = provider.DefaultMaxErrorBody }
    return &Fetcher{cfg: cfg, client: hc}
}

func (f *Fetcher) Platform() provider.Platform { return provider.DFlow }

// Configured reports whether an API key is present.
func (f *Fetcher) Configured() bool { return f.cfg.APIKey != "" }

func (f *Fetcher) Quote(ctx context.Context, req provider.SwapRequest) (provider.Quote, bool) {
    if !f.Configured() {
        return provider.Quote{}, false
    }
    u, err := url.Parse(f.cfg.Endpoint)
    if err != nil {
        return provider.Failed(provider.DFlow, req.Amount, err), true
    }
    q := u.Query()
    q.Set("inputMint", req.InputMint)
    q.Set("outputMint", req.OutputMint)
    q.Set("amount", req.Amount)
    q.Set("slippageBps", req.SlippageBps)
    u.RawQuery = q.Encode()

    header := http.Header{}
    header.Set("x-api-key", f.cfg.APIKey)

    var body quoteResponse
    if err := provider.GetJSON(ctx, f.client, u.String(), header, f.cfg.MaxErrorBody, &body); err != nil {
        return provider.Failed(provider.DFlow, req.Amount, err), true
    }
    return parseQuote(body, req.Amount), true
}

type quoteResponse struct {
    InAmount       provider.Lenient `json:"inAmount"`
    OutAmount      *string          `json:"outAmount"`
    PriceImpactPct provider.Lenient `json:"priceImpactPct"`
    RoutePlan      []struct {
        Venue *string `json:"venue"`
    } `json:"routePlan"`
}

func parseQuote(r quoteResponse, amount string) provider.Quote {
    out := provider.Or(r.OutAmount, "0")
    if err := provider.CheckAmount(out); err != nil {
        return provider.Failed(provider.DFlow, amount, err)
    }
    labels := make([]string, 0, len(r.RoutePlan))
    for _, step := range r.RoutePlan {
        labels = append(labels, provider.Label(step.Venue))
    }
    return provider.Quote{
        Platform:       provider.DFlow,
        InputAmount:    r.InAmount.Or(amount),
        OutputAmount:   out,
        PriceImpactPct: r.PriceImpactPct.Or("0"),
        Route:          provider.JoinRoute(labels),
    }
}
