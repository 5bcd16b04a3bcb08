package main

import (
    "compress/gzip"
    "context"
    "io"
    "log/slog"
    "net/http"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

func requestID(ctx context.Context) string {
    id, _ := ctx.Value(ctxKey{}).(string)
    return id
}

// withRequestID keeps a caller-supplied X-Request-ID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := strings.TrimSpace(r.Header.Get(requestIDHeader))
        if id == "" || len(id) > 128 {
            id = uuid.NewString()
        }
        w.Header().Set(requestIDHeader, id)
        next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
    })
}

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (s *statusRecorder) WriteHeader(code int) {
    if s.status == 0 { s.status = code }
    s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
    if s.status == 0 { s.status = http.StatusOK }
    return s.ResponseWriter.Write(b)
}

func withAccessLog(lg *slog.Logger, next http.Handler) http.Handler {
    if lg == nil { return next }
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        rec := &statusRecorder{ResponseWriter: w}
        next.ServeHTTP(rec, r)
        lg.Info("http request",
            "method", r.Method,
            "path", r.URL.Path,
            "status", rec.status,
            "took", time.Since(start),
            "request_id", requestID(r.Context()),
        )
    })
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Request-ID")
        w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// limitBody caps request body size; the API takes no bodies.
func limitBody(next http.Handler) http.Handler {
    const maxBody = 1 << 16
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, maxBody)
        }
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                slog.Error("handler panic", "panic", rec, "path", r.URL.Path, "request_id", requestID(r.Context()))
                writeError(w, http.StatusInternalServerError, "internal server error")
            }
        }()
        next.ServeHTTP(w, r)
    })
}
