package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log"
    "os"
    "os/signal"
    "strconv"
    "syscall"
    "text/tabwriter"
    "time"

    "zoff/internal/aggregate"
    "zoff/internal/config"
    "zoff/internal/httpx"
    "zoff/internal/pricehistory"
    "zoff/internal/provider"
    "zoff/internal/provider/dflow"
    "zoff/internal/provider/jupiter"
    "zoff/internal/provider/raydium"
    "zoff/internal/provider/titan"
    "zoff/internal/refresh"
    "zoff/internal/token"
)

func main() {
    var amount string
    var reverse bool
    var slippage int
    var watch time.Duration
    var days string
    var asJSON bool
    var timeout int
    var configPath string

    if err := config.LoadDotEnv(); err != nil { log.Fatalf("dotenv: %v", err) }

    flag.StringVar(&amount, "amount", "1", "amount to swap in whole tokens (e.g. 1 or 0.25)")
    flag.BoolVar(&reverse, "reverse", false, "quote JitoSOL -> SOL instead of SOL -> JitoSOL")
    flag.IntVar(&slippage, "slippage", -1, "slippage in bps, 0..10000 (default from config)")
    flag.DurationVar(&watch, "watch", 0, "refresh interval, e.g. 15s; 0 runs once")
    flag.StringVar(&days, "days", "", "also print the JitoSOL price summary over this many days (or max)")
    flag.BoolVar(&asJSON, "json", false, "print quotes as JSON")
    flag.IntVar(&timeout, "timeout", -1, "per-provider timeout seconds (default from config)")
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json or config.yaml (optional)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    applyOverrides(&cfg, timeout, slippage)
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    in, out := token.SOL, token.JitoSOL
    if reverse { in, out = out, in }
    raw, err := token.ParseUnits(amount, in.Decimals)
    if err != nil { log.Fatalf("amount: %v", err) }

    req := provider.SwapRequest{
        InputMint:   in.Mint,
        OutputMint:  out.Mint,
        Amount:      raw,
        SlippageBps: strconv.Itoa(cfg.Quote.DefaultSlippageBps),
    }
    if err := aggregate.Validate(&req); err != nil { log.Fatalf("request: %v", err) }

    if days != "" {
        if days, err = pricehistory.ParseDays(days); err != nil { log.Fatalf("days: %v", err) }
    }

    reqTimeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
    httpClient := httpx.New(reqTimeout)
    agg := aggregate.New(nil, reqTimeout,
        jupiter.New(jupiter.Config{Endpoint: cfg.Jupiter.Endpoint}, httpClient),
        raydium.New(raydium.Config{Endpoint: cfg.Raydium.Endpoint, TxVersion: cfg.Raydium.TxVersion}, httpClient),
        dflow.New(dflow.Config{Endpoint: cfg.DFlow.Endpoint, APIKey: cfg.DFlow.APIKey}, httpClient),
        titan.New(titan.Config{URL: cfg.Titan.URL}, httpClient),
    )
    prices := pricehistory.New(pricehistory.Config{
        Endpoint:   cfg.CoinGecko.Endpoint,
        CoinID:     cfg.CoinGecko.CoinID,
        VsCurrency: cfg.CoinGecko.VsCurrency,
        APIKey:     cfg.CoinGecko.APIKey,
    }, httpClient)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    refresh.Loop(ctx, watch, func(ctx context.Context) {
        quotes := agg.Quotes(ctx, req)
        if ctx.Err() != nil { return }
        if asJSON {
            b, _ := json.MarshalIndent(struct {
                Quotes []provider.Quote `json:"quotes"`
            }{quotes}, "", "  ")
            fmt.Println(string(b))
        } else {
            fmt.Printf("%s  %s %s -> %s\n", time.Now().Format(time.TimeOnly), amount, in.Symbol, out.Symbol)
            renderQuotes(os.Stdout, quotes, out)
        }
        if days != "" {
            s, err := prices.History(ctx, days)
            if err != nil {
                log.Printf("price history: %v", err)
                return
            }
            renderSeries(os.Stdout, s, days)
        }
    })
}

// applyOverrides copies flags onto cfg; a negative value means the flag was
// not given. Slippage 0 is a valid request.
func applyOverrides(cfg *config.Config, timeout, slippage int) {
    if timeout >= 0 { cfg.Server.RequestTimeoutSec = timeout }
    if slippage >= 0 { cfg.Quote.DefaultSlippageBps = slippage }
}

// renderQuotes prints ranked quotes as a table; the best row is starred.
func renderQuotes(w io.Writer, quotes []provider.Quote, out token.Token) {
    best, hasBest := aggregate.Best(quotes)
    tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
    fmt.Fprintln(tw, "\tPLATFORM\tOUTPUT\tIMPACT %\tROUTE")
    for _, q := range quotes {
        mark := ""
        if hasBest && q.Platform == best.Platform { mark = "*" }
        if !q.OK() {
            fmt.Fprintf(tw, "%s\t%s\t-\t-\terror: %s\n", mark, q.Platform, q.Error)
            continue
        }
        fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n", mark, q.Platform, token.FormatUnits(q.OutputAmount, out.Decimals), out.Symbol, q.PriceImpactPct, q.Route)
    }
    if len(quotes) == 0 {
        fmt.Fprintln(tw, "\t(no providers configured)\t\t\t")
    }
    _ = tw.Flush()
}

func renderSeries(w io.Writer, s pricehistory.Series, days string) {
    fmt.Fprintf(w, "JitoSOL %sd: %.4f (%+.2f%%, %d points)\n", days, s.CurrentPrice, s.ChangePercent, len(s.Prices))
}
