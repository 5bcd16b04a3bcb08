package provider_test

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strings"
    "testing"

    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "zoff/internal/httpx/mockhttpx"
    "zoff/internal/provider"
    "zoff/internal/provider/providertest"
)

func TestJoinRoute(t *testing.T) {
    t.Parallel()

    require.Equal(t, "Orca → Whirlpool", provider.JoinRoute([]string{"Orca", "Whirlpool"}))
    require.Equal(t, "Meteora DLMM", provider.JoinRoute([]string{"Meteora DLMM"}))
    require.Equal(t, "direct", provider.JoinRoute(nil))
    require.Equal(t, "direct", provider.JoinRoute([]string{}))
}

func TestLabel_NilIsUnknown(t *testing.T) {
    t.Parallel()

    orca := "Orca"
    require.Equal(t, "Orca", provider.Label(&orca))
    require.Equal(t, "unknown", provider.Label(nil))
}

func TestFailed(t *testing.T) {
    t.Parallel()

    q := provider.Failed(provider.Jupiter, "42", errors.New("boom"))
    require.Equal(t, provider.Quote{
        Platform:       provider.Jupiter,
        InputAmount:    "42",
        OutputAmount:   "0",
        PriceImpactPct: "0",
        Route:          "",
        Error:          "boom",
    }, q)
    require.False(t, q.OK())

    // Errors that render empty fall back to a generic message.
    require.Equal(t, "Unknown error", provider.Failed(provider.Titan, "1", nil).Error)
    require.Equal(t, "Unknown error", provider.Failed(provider.Titan, "1", errors.New("")).Error)
}

func TestCheckAmount(t *testing.T) {
    t.Parallel()

    require.NoError(t, provider.CheckAmount("0"))
    require.NoError(t, provider.CheckAmount("340282366920938463463374607431768211456"))
    require.Error(t, provider.CheckAmount(""))
    require.Error(t, provider.CheckAmount("1.5"))
    require.Error(t, provider.CheckAmount("-1"))
    require.Error(t, provider.CheckAmount("abc"))
}

func TestGetJSON_StatusErrorCapsBody(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().
        Do(gomock.Any()).
        Return(providertest.Text(http.StatusBadGateway, strings.Repeat("x", 10_000)), nil).
        Times(1)

    var out map[string]any
    err := provider.GetJSON(t.Context(), httpClient, "http://upstream.test/q", nil, 16, &out)

    var se *provider.StatusError
    require.ErrorAs(t, err, &se)
    require.Equal(t, http.StatusBadGateway, se.StatusCode)
    require.Len(t, se.Body, 16)
    require.True(t, strings.HasPrefix(err.Error(), "HTTP 502: "))
}

func TestGetJSON_SendsHeadersAndDecodes(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().
        Do(gomock.Any()).
        DoAndReturn(func(req *http.Request) (*http.Response, error) {
            require.Equal(t, "secret", req.Header.Get("x-api-key"))
            require.Equal(t, "application/json", req.Header.Get("Accept"))
            return providertest.JSON(t, http.StatusOK, map[string]any{"n": json.Number("12345678901234567890")}), nil
        }).
        Times(1)

    var out map[string]any
    err := provider.GetJSON(t.Context(), httpClient, "http://upstream.test/q", http.Header{"X-Api-Key": []string{"secret"}}, 0, &out)
    require.NoError(t, err)
    require.Equal(t, json.Number("12345678901234567890"), out["n"])
}

func TestGetJSON_TransportError(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    httpClient := mockhttpx.NewMockHTTPClient(ctrl)
    httpClient.EXPECT().Do(gomock.Any()).Return(nil, context.DeadlineExceeded).Times(1)

    var out map[string]any
    err := provider.GetJSON(t.Context(), httpClient, "http://upstream.test/q", nil, 0, &out)
    require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLenient_AcceptsStringOrNumber(t *testing.T) {
    t.Parallel()

    var body struct {
        A provider.Lenient `json:"a"`
        B provider.Lenient `json:"b"`
        C provider.Lenient `json:"c"`
        D provider.Lenient `json:"d"`
        E provider.Lenient `json:"e"`
        F provider.Lenient `json:"f"`
    }
    require.NoError(t, json.Unmarshal([]byte(`{"a":"0.0012","b":0.01,"c":null,"d":true,"e":{"x":1},"f":-1e-3}`), &body))
    require.Equal(t, "0.0012", body.A.Or("0"))
    require.Equal(t, "0.01", body.B.Or("0"))
    require.Equal(t, "0", body.C.Or("0"))
    require.Equal(t, "0", body.D.Or("0"))
    require.Equal(t, "0", body.E.Or("0"))
    require.Equal(t, "-1e-3", body.F.Or("0"))

    var missing struct {
        A provider.Lenient `json:"a"`
    }
    require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
    require.Equal(t, "fallback", missing.A.Or("fallback"))
}
