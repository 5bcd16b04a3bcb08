package main

import (
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "net/http"

    "zoff/internal/aggregate"
    "zoff/internal/pricehistory"
    "zoff/internal/provider"
)

type quotesResponse struct {
    Quotes []provider.Quote `json:"quotes"`
}

type errorResponse struct {
    Error string `json:"error"`
}

type api struct {
    quotes          *aggregate.Aggregator
    prices          pricehistory.Source
    defaultSlippage string
    log             *slog.Logger
}

func (a *api) routes() http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/quote", getOnly(a.handleQuote))
    mux.HandleFunc("/api/price", getOnly(a.handlePrice))
    return withRequestID(withAccessLog(a.log, withJSONHeaders(withGzip(recoverPanic(limitBody(mux))))))
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            writeError(w, http.StatusMethodNotAllowed, "method not allowed")
            return
        }
        h(w, r)
    }
}

// handleQuote validates before any upstream call. Missing params, mints that
// are not base58 public keys, a non-positive or fractional amount, and
// slippage outside 0..10000 all get 400 with no upstream call. Provider
// failures are reported inside the quotes, so a valid request always gets 200.
func (a *api) handleQuote(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    req := provider.SwapRequest{
        InputMint:   q.Get("inputMint"),
        OutputMint:  q.Get("outputMint"),
        Amount:      q.Get("amount"),
        SlippageBps: q.Get("slippageBps"),
    }
    if req.SlippageBps == "" { req.SlippageBps = a.defaultSlippage }
    if err := aggregate.Validate(&req); err != nil {
        writeError(w, http.StatusBadRequest, err.Error())
        return
    }
    writeJSON(w, http.StatusOK, quotesResponse{Quotes: a.quotes.Quotes(r.Context(), req)})
}

func (a *api) handlePrice(w http.ResponseWriter, r *http.Request) {
    days, err := pricehistory.ParseDays(r.URL.Query().Get("days"))
    if err != nil {
        writeError(w, http.StatusBadRequest, err.Error())
        return
    }
    series, err := a.prices.History(r.Context(), days)
    if err != nil {
        var se *provider.StatusError
        if errors.As(err, &se) {
            writeError(w, http.StatusBadGateway, fmt.Sprintf("CoinGecko error: %d %s", se.StatusCode, se.Body))
            return
        }
        if a.log != nil {
            a.log.Error("price history failed", "days", days, "request_id", requestID(r.Context()), "error", err)
        }
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }
    writeJSON(w, http.StatusOK, series)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
    writeJSON(w, status, errorResponse{Error: msg})
}
