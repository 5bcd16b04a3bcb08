package provider

import (
    "context"
    "net/http"
    "strings"
)

// Platform names one upstream swap aggregator.
type Platform string

const (
    Jupiter Platform = "jupiter"
    Raydium Platform = "raydium"
    DFlow   Platform = "dflow"
    Titan   Platform = "titan"
)

// Platforms lists every known platform in display order.
var Platforms = []Platform{Jupiter, Raydium, DFlow, Titan}

// Quote is the normalized shape returned by all providers.
// Amounts are smallest-unit integers kept as strings; they can exceed 64 bits.
type Quote struct {
    Platform       Platform `json:"platform"`
    InputAmount    string   `json:"inputAmount"`
    OutputAmount   string   `json:"outputAmount"`
    PriceImpactPct string   `json:"priceImpactPct"`
    Route          string   `json:"route"`
    Error          string   `json:"error,omitempty"`
}

// OK reports whether the quote can take part in ranking.
func (q Quote) OK() bool { return q.Error == "" }

// SwapRequest is one quote query. It lives for a single request.
type SwapRequest struct {
    InputMint   string
    OutputMint  string
    Amount      string
    SlippageBps string
}

// Fetcher produces a quote for one platform.
//
// The boolean is false when the platform is not configured; the caller must
// then omit it instead of showing it as failed. When true, the quote is either
// a success or carries Error. Quote never returns an error value.
type Fetcher interface {
    Platform() Platform
    Quote(ctx context.Context, req SwapRequest) (Quote, bool)
}

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=mockhttpx -destination=../httpx/mockhttpx/mock_http_client.go -source=provider.go HTTPClient
type HTTPClient interface {
    Do(req *http.Request) (*http.Response, error)
}

// RouteSeparator joins venue labels in Quote.Route.
const RouteSeparator = " → "

// JoinRoute renders venue labels as a route; no labels means a direct swap.
func JoinRoute(labels []string) string {
    s := strings.Join(labels, RouteSeparator)
    if s == "" {
        return "direct"
    }
    return s
}

// Label returns the venue label or "unknown" when absent.
func Label(s *string) string {
    if s == nil {
        return "unknown"
    }
    return *s
}

// Failed builds the error form of a quote from any failure.
func Failed(p Platform, amount string, err error) Quote {
    msg := "Unknown error"
    if err != nil && strings.TrimSpace(err.Error()) != "" {
        msg = err.Error()
    }
    return Quote{
        Platform:       p,
        InputAmount:    amount,
        OutputAmount:   "0",
        PriceImpactPct: "0",
        Route:          "",
        Error:          msg,
    }
}
