// Package pricehistory reads a USD price series for one coin from the
// CoinGecko market_chart endpoint.
package pricehistory

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "math"
    "net/http"
    "net/url"
    "strconv"
    "strings"

    "zoff/internal/provider"
)

const (
    DefaultEndpoint   = "https://api.coingecko.com/api/v3"
    DefaultCoinID     = "jito-staked-sol"
    DefaultVsCurrency = "usd"
    DefaultDays       = "7"
)

// PricePoint is one sample: unix seconds and USD price.
type PricePoint struct {
    Time  int64   `json:"time"`
    Value float64 `json:"value"`
}

// Series is a chronological price series with its derived figures.
type Series struct {
    Prices        []PricePoint `json:"prices"`
    CurrentPrice  float64      `json:"currentPrice"`
    ChangePercent float64      `json:"changePercent"`
}

// Source returns a series for a lookback window in days.
type Source interface {
    History(ctx context.Context, days string) (Series, error)
}

var ErrInvalidDays = errors.New("invalid days")

// ParseDays normalizes the lookback window. Fractions such as "0.04"
// select sub-day windows; "max" is passed through.
func ParseDays(s string) (string, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return DefaultDays, nil
    }
    if strings.EqualFold(s, "max") {
        return "max", nil
    }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
        return "", fmt.Errorf("%w: %q", ErrInvalidDays, s)
    }
    return s, nil
}

// Summarize derives the current price and change from first to last point.
func Summarize(points []PricePoint) Series {
    if points == nil {
        points = []PricePoint{}
    }
    s := Series{Prices: points}
    if len(points) == 0 {
        return s
    }
    first, last := points[0].Value, points[len(points)-1].Value
    s.CurrentPrice = last
    if first > 0 {
        s.ChangePercent = (last - first) / first * 100
    }
    return s
}

type Config struct {
    Endpoint     string
    CoinID       string
    VsCurrency   string
    APIKey       string // optional demo key, sent as x-cg-demo-api-key
    MaxErrorBody int64
}

// Client fetches market_chart data.
type Client struct {
    cfg    Config
    client provider.HTTPClient
}

func New(cfg Config, hc provider.HTTPClient) *Client {
    if cfg.Endpoint == "" { cfg.Endpoint = DefaultEndpoint }
    if cfg.CoinID == "" { cfg.CoinID = DefaultCoinID }
    if cfg.VsCurrency == "" { cfg.VsCurrency = DefaultVsCurrency }
    if cfg.MaxErrorBody <= 0 { cfg.MaxErrorBody = provider.DefaultMaxErrorBody }
    return &Client{cfg: cfg, client: hc}
}

// History calls the upstream once. A non-2xx answer is a *provider.StatusError.
func (c *Client) History(ctx context.Context, days string) (Series, error) {
    u, err := url.Parse(fmt.Sprintf("%s/coins/%s/market_chart", strings.TrimRight(c.cfg.Endpoint, "/"), url.PathEscape(c.cfg.CoinID)))
    if err != nil {
        return Series{}, fmt.Errorf("building url: %w", err)
    }
    q := u.Query()
    q.Set("vs_currency", c.cfg.VsCurrency)
    q.Set("days", days)
    u.RawQuery = q.Encode()

    header := http.Header{}
    if c.cfg.APIKey != "" {
        header.Set("x-cg-demo-api-key", c.cfg.APIKey)
    }

    var body marketChart
    if err := provider.GetJSON(ctx, c.client, u.String(), header, c.cfg.MaxErrorBody, &body); err != nil {
        return Series{}, err
    }
    points, err := body.points()
    if err != nil {
        return Series{}, err
    }
    return Summarize(points), nil
}

// marketChart is {"prices": [[ts_ms, price], ...], "market_caps": ..., "total_volumes": ...}.
type marketChart struct {
    Prices [][]json.Number `json:"prices"`
}

func (m marketChart) points() ([]PricePoint, error) {
    out := make([]PricePoint, 0, len(m.Prices))
    for i, pair := range m.Prices {
        if len(pair) < 2 {
            return nil, fmt.Errorf("decoding prices[%d]: want [timestamp, price], got %d values", i, len(pair))
        }
        ms, err := pair[0].Float64()
        if err != nil {
            return nil, fmt.Errorf("decoding prices[%d] timestamp: %w", i, err)
        }
        v, err := pair[1].Float64()
        if err != nil {
            return nil, fmt.Errorf("decoding prices[%d] price: %w", i, err)
        }
        out = append(out, PricePoint{Time: int64(math.Floor(ms / 1000)), Value: v})
    }
    return out, nil
}
