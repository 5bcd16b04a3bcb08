package jupiter

import (
    "context"
    "net/url"

    "zoff/internal/provider"
)

const DefaultEndpoint = "https://api.jup.ag/swap/v1/quote"

type Config struct {
    Endpoint string
    // MaxErrorBody caps the upstream body kept in Quote.Error.
    MaxErrorBody int64
}

// Fetcher quotes swaps through the Jupiter quote API.
type Fetcher struct {
    cfg    Config
    client provider.HTTPClient
}

func New(cfg Config, hc provider.HTTPClient) *Fetcher {
    if cfg.Endpoint == "" { cfg.Endpoint = DefaultEndpoint }
    if cfg.MaxErrorBody <= 0 { cfg.MaxErrorBody = provider.DefaultMaxErrorBody }
    return &Fetcher{cfg: cfg, client: hc}
}

func (f *Fetcher) Platform() provider.Platform { return provider.Jupiter }

func (f *Fetcher) Quote(ctx context.Context, req provider.SwapRequest) (provider.Quote, bool) {
    u, err := url.Parse(f.cfg.Endpoint)
    if err != nil {
        return provider.Failed(provider.Jupiter, req.Amount, err), true
    }
    q := u.Query()
    q.Set("inputMint", req.InputMint)
    q.Set("outputMint", req.OutputMint)
    q.Set("amount", req.Amount)
    q.Set("slippageBps", req.SlippageBps)
    u.RawQuery = q.Encode()

    var body quoteResponse
    if err := provider.GetJSON(ctx, f.client, u.String(), nil, f.cfg.MaxErrorBody, &body); err != nil {
        return provider.Failed(provider.Jupiter, req.Amount, err), true
    }
    return parseQuote(body, req.Amount), true
}

// quoteResponse is the subset of /swap/v1/quote we read.
type quoteResponse struct {
    InAmount       provider.Lenient `json:"inAmount"`
    OutAmount      *string          `json:"outAmount"`
    PriceImpactPct provider.Lenient `json:"priceImpactPct"`
    RoutePlan      []struct {
        SwapInfo *struct {
            Label *string `json:"label"`
        } `json:"swapInfo"`
    } `json:"routePlan"`
}

func parseQuote(r quoteResponse, amount string) provider.Quote {
    out := provider.Or(r.OutAmount, "0")
    if err := provider.CheckAmount(out); err != nil {
        return provider.Failed(provider.Jupiter, amount, err)
    }
    labels := make([]string, 0, len(r.RoutePlan))
    for _, step := range r.RoutePlan {
        if step.SwapInfo == nil {
            labels = append(labels, "unknown")
            continue
        }
        labels = append(labels, provider.Label(step.SwapInfo.Label))
    }
    return provider.Quote{
        Platform:       provider.Jupiter,
        InputAmount:    r.InAmount.Or(amount),
        OutputAmount:   out,
        PriceImpactPct: r.PriceImpactPct.Or("0"),
        Route:          provider.JoinRoute(labels),
    }
}
