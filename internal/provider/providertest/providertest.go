// Package providertest holds helpers shared by the fetcher tests.
package providertest

import (
    "bytes"
    "encoding/json"
    "io"
    "net/http"
    "strings"
    "testing"

    "github.com/stretchr/testify/require"

    "zoff/internal/provider"
)

const (
    SOL     = "So11111111111111111111111111111111111111112"
    JitoSOL = "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn"
)

// Request is a 1 SOL -> JitoSOL swap at 50 bps.
var Request = provider.SwapRequest{
    InputMint:   SOL,
    OutputMint:  JitoSOL,
    Amount:      "1000000000",
    SlippageBps: "50",
}

// Text returns a response with a raw body.
func Text(status int, body string) *http.Response {
    return &http.Response{
        StatusCode: status,
        Header:     http.Header{"Content-Type": []string{"text/plain"}},
        Body:       io.NopCloser(strings.NewReader(body)),
    }
}

// JSON returns a response with v encoded as the body.
func JSON(t testing.TB, status int, v any) *http.Response {
    t.Helper()
    buffer := &bytes.Buffer{}
    require.NoError(t, json.NewEncoder(buffer).Encode(v))
    return &http.Response{
        StatusCode: status,
        Header:     http.Header{"Content-Type": []string{"application/json"}},
        Body:       io.NopCloser(buffer),
    }
}

// RequireFailed asserts q is the zeroed error form for platform p.
func RequireFailed(t testing.TB, q provider.Quote, p provider.Platform) {
    t.Helper()
    require.Equal(t, p, q.Platform)
    require.Equal(t, "0", q.OutputAmount)
    require.Equal(t, "0", q.PriceImpactPct)
    require.Equal(t, "", q.Route)
    require.Equal(t, Request.Amount, q.InputAmount)
    require.NotEmpty(t, q.Error)
}

// RequireSwapParams asserts the common quote query parameters.
func RequireSwapParams(t testing.TB, req *http.Request) {
    t.Helper()
    require.Equal(t, http.MethodGet, req.Method)
    q := req.URL.Query()
    require.Equal(t, Request.InputMint, q.Get("inputMint"))
    require.Equal(t, Request.OutputMint, q.Get("outputMint"))
    require.Equal(t, Request.Amount, q.Get("amount"))
    require.Equal(t, Request.SlippageBps, q.Get("slippageBps"))
}
