package pricehistory_test

import (
    "encoding/json"
    "errors"
    "net/http"
    "testing"

    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "zoff/internal/httpx/mockhttpx"
    "zoff/internal/pricehistory"
    "zoff/internal/provider"
    "zoff/internal/provider/providertest"
)

func TestSummarize(t *testing.T) {
    t.Parallel()

    s := pricehistory.Summarize([]pricehistory.PricePoint{{Time: 0, Value: 100}, {Time: 1, Value: 110}})
    require.InDelta(t, 10.0, s.ChangePercent, 1e-9)
    require.InDelta(t, 110.0, s.CurrentPrice, 1e-9)

    s = pricehistory.Summarize(nil)
    require.NotNil(t, s.Prices)
    require.Empty(t, s.Prices)
    require.Zero(t, s.CurrentPrice)
    require.Zero(t, s.ChangePercent)

    // non-positive first value must not divide by zero
    s = pricehistory.Summarize([]pricehistory.PricePoint{{Time: 0, Value: 0}, {Time: 1, Value: 5}})
    require.Zero(t, s.ChangePercent)
    require.InDelta(t, 5.0, s.CurrentPrice, 1e-9)
}

func TestParseDays(t *testing.T) {
    t.Parallel()

    for in, want := range map[string]string{"": "7", "1": "1", "0.04": "0.04", "365": "365", "MAX": "max"} {
        got, err := pricehistory.ParseDays(in)
        require.NoError(t, err)
        require.Equal(t, want, got)
    }
    for _, in := range []string{"0", "-1", "week", "NaN", "Inf"} {
        _, err := pricehistory.ParseDays(in)
        require.ErrorIsf(t, err, pricehistory.ErrInvalidDays, "days=%q", in)
    }
}

func TestHistory(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().
        Do(gomock.Any()).
        DoAndReturn(func(req *http.Request) (*http.Response, error) {
            require.Equal(t, "/api/v3/coins/jito-staked-sol/market_chart", req.URL.Path)
            require.Equal(t, "usd", req.URL.Query().Get("vs_currency"))
            require.Equal(t, "0.04", req.URL.Query().Get("days"))
            return providertest.JSON(t, http.StatusOK, map[string]any{
                "prices": [][]json.Number{
                    {"1717200000123", "180.5"},
                    {"1717203600999", "198.55"},
                },
                "market_caps": [][]json.Number{},
            }), nil
        }).
        Times(1)

    s, err := pricehistory.New(pricehistory.Config{}, httpClient).History(t.Context(), "0.04")
    require.NoError(t, err)
    require.Equal(t, []pricehistory.PricePoint{
        {Time: 1717200000, Value: 180.5},
        {Time: 1717203600, Value: 198.55},
    }, s.Prices)
    require.InDelta(t, 198.55, s.CurrentPrice, 1e-9)
    require.InDelta(t, 10.0, s.ChangePercent, 1e-9)
}

func TestHistory_CustomCoinAndKey(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().
        Do(gomock.Any()).
        DoAndReturn(func(req *http.Request) (*http.Response, error) {
            require.Equal(t, "cg.test", req.URL.Host)
            require.Equal(t, "/v3/coins/solana/market_chart", req.URL.Path)
            require.Equal(t, "demo", req.Header.Get("x-cg-demo-api-key"))
            return providertest.JSON(t, http.StatusOK, map[string]any{"prices": []any{}}), nil
        }).
        Times(1)

    s, err := pricehistory.New(pricehistory.Config{Endpoint: "https://cg.test/v3/", CoinID: "solana", APIKey: "demo"}, httpClient).History(t.Context(), "1")
    require.NoError(t, err)
    require.Empty(t, s.Prices)
    require.Zero(t, s.ChangePercent)
}

func TestHistory_ErrUnexpectedStatusCode(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().
        Do(gomock.Any()).
        Return(providertest.Text(http.StatusTooManyRequests, "throttled"), nil).
        Times(1)

    _, err := pricehistory.New(pricehistory.Config{}, httpClient).History(t.Context(), "7")
    var se *provider.StatusError
    require.ErrorAs(t, err, &se)
    require.Equal(t, http.StatusTooManyRequests, se.StatusCode)
    require.Equal(t, "throttled", se.Body)
}

func TestHistory_ErrPerformingRequest(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection reset")).Times(1)

    _, err := pricehistory.New(pricehistory.Config{}, httpClient).History(t.Context(), "7")
    require.EqualError(t, err, "connection reset")
}

func TestHistory_ErrMalformedPair(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().
        Do(gomock.Any()).
        Return(providertest.JSON(t, http.StatusOK, map[string]any{"prices": [][]json.Number{{"1717200000000"}}}), nil).
        Times(1)

    _, err := pricehistory.New(pricehistory.Config{}, httpClient).History(t.Context(), "7")
    require.Error(t, err)
}
