package ratelimit

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redmonkez12/jobs-api/internal/httputil"
	"github.com/redmonkez12/jobs-api/internal/logging"
)

const limitExceededMessage = "too many requests, please try again later"

type peerContextKey struct{}

// Limiter rejects clients that exceed max requests per window
type Limiter struct {
	store          Store
	max            int64
	trustedProxies int
	logger         *logging.Logger
}

// NewLimiter creates a limiter. trustedProxies is the number of reverse proxies
// in front of the server; zero keys clients on the socket address alone.
func NewLimiter(store Store, max, trustedProxies int, logger *logging.Logger) *Limiter {
	if trustedProxies < 0 {
		trustedProxies = 0
	}
	return &Limiter{store: store, max: int64(max), trustedProxies: trustedProxies, logger: logger}
}

// RecordPeer keeps the socket address in the context. It must run before
// middleware.RealIP, which rewrites RemoteAddr from client-supplied headers.
func RecordPeer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerContextKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler counts each request against the client IP. Requests pass through
// when the store fails.
func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + l.clientIP(r)

		res, err := l.store.Take(r.Context(), key)
		if err != nil {
			l.logger.Warn("rate limit store unavailable", "key", key, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		remaining := l.max - res.Count
		if remaining < 0 {
			remaining = 0
		}
		reset := ceilSeconds(res.ResetAfter)

		w.Header().Set("RateLimit-Limit", strconv.FormatInt(l.max, 10))
		w.Header().Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		w.Header().Set("RateLimit-Reset", strconv.Itoa(reset))

		if res.Count > l.max {
			l.logger.Info("rate limit exceeded", "key", key, "count", res.Count)
			w.Header().Set("Retry-After", strconv.Itoa(reset))
			httputil.RespondErrorWithCode(w, limitExceededMessage, httputil.CodeTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the socket peer, or with trusted proxies the
// X-Forwarded-For entry appended by the outermost one.
func (l *Limiter) clientIP(r *http.Request) string {
	peer, ok := r.Context().Value(peerContextKey{}).(string)
	if !ok {
		peer = r.RemoteAddr
	}

	if l.trustedProxies > 0 {
		if ip := forwardedClient(r.Header.Values("X-Forwarded-For"), l.trustedProxies); ip != "" {
			return ip
		}
	}

	return hostOnly(peer)
}

// forwardedClient picks the hop trustedProxies entries from the right.
// Entries further left are client-controlled and ignored.
func forwardedClient(values []string, trustedProxies int) string {
	var hops []string
	for _, v := range values {
		for _, hop := range strings.Split(v, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	if len(hops) == 0 {
		return ""
	}

	i := len(hops) - trustedProxies
	if i < 0 {
		i = 0
	}
	if net.ParseIP(hops[i]) == nil {
		return ""
	}
	return hops[i]
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	if host == "" {
		return "unknown"
	}
	return host
}

func ceilSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}
