package provider

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strings"

    "cosmossdk.io/math"
)

// DefaultMaxErrorBody caps how much of a failed response body is kept.
const DefaultMaxErrorBody = 2 << 10

// StatusError is a non-2xx upstream response.
type StatusError struct {
    StatusCode int
    Body       string
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body) }

// GetJSON performs a single GET and decodes a 2xx JSON body into out.
// Numbers are decoded as json.Number when out holds interface values.
func GetJSON(ctx context.Context, hc HTTPClient, rawURL string, header http.Header, maxErrBody int64, out any) error {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
    if err != nil {
        return fmt.Errorf("creating request: %w", err)
    }
    for k, vs := range header {
        for _, v := range vs { req.Header.Add(k, v) }
    }
    if req.Header.Get("Accept") == "" { req.Header.Set("Accept", "application/json") }

    res, err := hc.Do(req)
    if err != nil {
        return err
    }
    defer res.Body.Close()

    if res.StatusCode < 200 || res.StatusCode >= 300 {
        if maxErrBody <= 0 { maxErrBody = DefaultMaxErrorBody }
        b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrBody))
        return &StatusError{StatusCode: res.StatusCode, Body: string(b)}
    }

    dec := json.NewDecoder(res.Body)
    dec.UseNumber()
    if err := dec.Decode(out); err != nil {
        return fmt.Errorf("decoding response: %w", err)
    }
    return nil
}

// Or returns *v, or def when v is nil.
func Or(v *string, def string) string {
    if v == nil { return def }
    return *v
}

// CheckAmount rejects output amounts that cannot be ranked as integers.
func CheckAmount(s string) error {
    n, ok := math.NewIntFromString(strings.TrimSpace(s))
    if !ok || n.IsNegative() {
        return fmt.Errorf("invalid outAmount %q", s)
    }
    return nil
}

// Lenient is an optional upstream field that may arrive as a JSON string or
// number. Anything else, null included, decodes to empty instead of failing
// the whole response.
type Lenient string

func (l *Lenient) UnmarshalJSON(b []byte) error {
    s := strings.TrimSpace(string(b))
    switch {
    case s == "" || s == "null":
        *l = ""
    case s[0] == '"':
        var v string
        if err := json.Unmarshal(b, &v); err != nil {
            v = ""
        }
        *l = Lenient(strings.TrimSpace(v))
    case s[0] == '-' || (s[0] >= '0' && s[0] <= '9'):
        *l = Lenient(s)
    default:
        *l = ""
    }
    return nil
}

// Or returns the value, or def when it is empty.
func (l Lenient) Or(def string) string {
    if l == "" { return def }
    return string(l)
}
