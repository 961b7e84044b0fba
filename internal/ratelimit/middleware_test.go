package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/jobs-api/internal/httputil"
	"github.com/redmonkez12/jobs-api/internal/logging"
)

type failingStore struct{}

func (failingStore) Take(context.Context, string) (Result, error) {
	return Result{}, errors.New("connection refused")
}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLimiter_BlocksAfterMax(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(15*time.Minute), 2, 0, logging.Discard())
	h := limiter.Handler(okHandler())

	rec := serve(h, "10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, "900", rec.Header().Get("RateLimit-Reset"))

	rec = serve(h, "10.0.0.1:5001")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))

	rec = serve(h, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, httputil.CodeTooManyRequests, resp.Code)

	rec = serve(h, "10.0.0.2:5000")
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own window")
}

func TestLimiter_FailsOpen(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 1, 0, logging.Discard())
	h := limiter.Handler(okHandler())

	for i := 0; i < 3; i++ {
		rec := serve(h, "10.0.0.1:5000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("RateLimit-Limit"))
	}
}

func serveFrom(h http.Handler, remoteAddr string, forwardedFor ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.RemoteAddr = remoteAddr
	for _, v := range forwardedFor {
		req.Header.Add("X-Forwarded-For", v)
	}
	rec := httptest.NewRecorder()
	RecordPeer(h).ServeHTTP(rec, req)
	return rec
}

func TestLimiter_IgnoresForwardedForWithoutTrustedProxies(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(time.Minute), 2, 0, logging.Discard())
	h := limiter.Handler(okHandler())

	var codes []int
	for i := 0; i < 4; i++ {
		rec := serveFrom(h, "203.0.113.7:4000", fmt.Sprintf("10.0.0.%d", i))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 429, 429}, codes)
}

func TestLimiter_UsesTrustedHop(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(time.Minute), 1, 1, logging.Discard())
	h := limiter.Handler(okHandler())

	// A client-supplied left entry does not change the key; the hop the proxy appended does.
	rec := serveFrom(h, "10.1.1.1:80", "1.1.1.1, 198.51.100.4")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveFrom(h, "10.1.1.1:80", "2.2.2.2, 198.51.100.4")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = serveFrom(h, "10.1.1.1:80", "198.51.100.5")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimiter_ClientIP(t *testing.T) {
	direct := NewLimiter(NewMemoryStore(time.Minute), 1, 0, logging.Discard())
	proxied := NewLimiter(NewMemoryStore(time.Minute), 1, 2, logging.Discard())
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.9:443"
	assert.Equal(t, "192.168.1.9", direct.clientIP(req))

	req.RemoteAddr = "192.168.1.9"
	assert.Equal(t, "192.168.1.9", direct.clientIP(req))

	req.RemoteAddr = ""
	assert.Equal(t, "unknown", direct.clientIP(req))

	req.RemoteAddr = "10.0.0.2:80"
	req.Header.Set("X-Forwarded-For", "6.6.6.6, 198.51.100.4, 10.0.0.1")
	assert.Equal(t, "192.168.1.9", direct.clientIP(req.WithContext(context.WithValue(req.Context(), peerContextKey{}, "192.168.1.9:1"))))
	assert.Equal(t, "198.51.100.4", proxied.clientIP(req))

	req.Header.Set("X-Forwarded-For", "not-an-ip, 10.0.0.1")
	assert.Equal(t, "10.0.0.2", proxied.clientIP(req))
}
