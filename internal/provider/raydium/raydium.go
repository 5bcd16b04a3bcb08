package raydium

import (
    "context"
    "errors"
    "net/url"

    "zoff/internal/provider"
)

const (
    DefaultEndpoint  = "https://transaction-v1.raydium.io/compute/swap-base-in"
    DefaultTxVersion = "V0"
)

type Config struct {
    Endpoint string
    // TxVersion is sent as the txVersion query parameter.
    TxVersion    string
    MaxErrorBody int64
}

// Fetcher quotes swaps through the Raydium swap-compute API.
type Fetcher struct {
    cfg    Config
    client provider.HTTPClient
}

func New(cfg Config, hc provider.HTTPClient) *Fetcher {
    if cfg.Endpoint == "" { cfg.Endpoint = DefaultEndpoint }
    if cfg.TxVersion == "" { cfg.TxVersion = DefaultTxVersion }
    if cfg.MaxErrorBody <= 0 { cfg.MaxErrorBody = provider.DefaultMaxErrorBody }
    return &Fetcher{cfg: cfg, client: hc}
}

func (f *Fetcher) Platform() provider.Platform { return provider.Raydium }

func (f *Fetcher) Quote(ctx context.Context, req provider.SwapRequest) (provider.Quote, bool) {
    u, err := url.Parse(f.cfg.Endpoint)
    if err != nil {
        return provider.Failed(provider.Raydium, req.Amount, err), true
    }
    q := u.Query()
    q.Set("inputMint", req.InputMint)
    q.Set("outputMint", req.OutputMint)
    q.Set("amount", req.Amount)
    q.Set("slippageBps", req.SlippageBps)
    q.Set("txVersion", f.cfg.TxVersion)
    u.RawQuery = q.Encode()

    var body computeResponse
    if err := provider.GetJSON(ctx, f.client, u.String(), nil, f.cfg.MaxErrorBody, &body); err != nil {
        return provider.Failed(provider.Raydium, req.Amount, err), true
    }
    return parseQuote(body, req.Amount), true
}

// computeResponse wraps the swap-base-in payload.
//
//  {
//    "id": "...", "success": true, "version": "V1",
//    "data": {
//      "inputAmount": "1000000000", "outputAmount": "812345678",
//      "priceImpactPct": 0.01,
//      "routePlan": [{"poolId": "...", "poolInfoList": [{"poolType": "Concentrated"}]}]
//    }
//  }
type computeResponse struct {
    Success *bool        `json:"success"`
    Msg     string       `json:"msg"`
    Data    *computeData `json:"data"`
}

type computeData struct {
    InputAmount    provider.Lenient `json:"inputAmount"`
    OutputAmount   *string          `json:"outputAmount"`
    PriceImpactPct provider.Lenient `json:"priceImpactPct"`
    RoutePlan      []struct {
        PoolInfoList []struct {
            PoolType *string `json:"poolType"`
        } `json:"poolInfoList"`
    } `json:"routePlan"`
}

func parseQuote(r computeResponse, amount string) provider.Quote {
    if r.Success != nil && !*r.Success && r.Data == nil {
        msg := r.Msg
        if msg == "" { msg = "request rejected" }
        return provider.Failed(provider.Raydium, amount, errors.New(msg))
    }
    d := r.Data
    if d == nil { d = &computeData{} }

    out := provider.Or(d.OutputAmount, "0")
    if err := provider.CheckAmount(out); err != nil {
        return provider.Failed(provider.Raydium, amount, err)
    }
    labels := make([]string, 0, len(d.RoutePlan))
    for _, step := range d.RoutePlan {
        if len(step.PoolInfoList) == 0 {
            labels = append(labels, "unknown")
            continue
        }
        labels = append(labels, provider.Label(step.PoolInfoList[0].PoolType))
    }
    return provider.Quote{
        Platform:       provider.Raydium,
        InputAmount:    d.InputAmount.Or(amount),
        OutputAmount:   out,
        PriceImpactPct: d.PriceImpactPct.Or("0"),
        Route:          provider.JoinRoute(labels),
    }
}
