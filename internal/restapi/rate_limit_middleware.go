package restapi

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/models"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// RateLimitMiddleware keeps one token bucket per client address. Buckets of
// idle clients expire out of the store.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimitMiddleware allows ratePerSecond requests per interval per
// client, with bursts of the same size. A non-positive rate disables limiting.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration) func(http.Handler) http.Handler {
	if ratePerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return newRateLimiter(ratePerSecond, interval).rateLimitHandler
}

func newRateLimiter(ratePerSecond int, interval time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL/2),
		limit:    rate.Every(interval / time.Duration(ratePerSecond)),
		burst:    ratePerSecond,
	}
}

// getLimiter returns the client's bucket and pushes back its expiry.
func (rl *RateLimitMiddleware) getLimiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(client)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	rl.limiters.SetDefault(client, limiter)
	return limiter.(*rate.Limiter)
}

// clientKey is the first X-Forwarded-For hop, or the remote host.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimitMiddleware) rateLimitHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.getLimiter(clientKey(r))
		if !limiter.Allow() {
			rl.tooManyRequests(w, r, limiter)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isRoutePath(path string) bool {
	return path == RoutePath || path == NetlifyRoutePath
}

// tooManyRequests answers 429, except on the route endpoints which always
// answer 200 with a transport failure payload.
func (rl *RateLimitMiddleware) tooManyRequests(w http.ResponseWriter, r *http.Request, limiter *rate.Limiter) {
	wait := time.Second
	if deficit := 1 - limiter.Tokens(); deficit > 0 && rl.limit > 0 {
		wait = time.Duration(deficit / float64(rl.limit) * float64(time.Second))
	}

	setJSONResponseType(&w)
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(wait.Seconds())))))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
	w.Header().Set("X-RateLimit-Remaining", "0")

	if isRoutePath(r.URL.Path) {
		failure := &directions.Failure{
			Kind:    directions.Transport,
			Message: directions.MessageRateLimited,
			Detail:  "rate limit exceeded",
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(failure.Response())
		return
	}

	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(models.NewResponse(http.StatusTooManyRequests, nil,
		"Rate limit exceeded. Please try again later."))
}
