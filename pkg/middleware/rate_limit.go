package middleware

import (
	"net/http"
	"sync"
	"time"

	"fastfix/pkg/logger"
)

type AccountExtractor func(r *http.Request) string

// AccountRateLimiter applies a sliding-window request cap per account id.
// Requests without an account header pass through unlimited; the identity
// layer in front of this service is responsible for setting it.
type AccountRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor AccountExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewAccountRateLimiter(limit int, window time.Duration, extractor AccountExtractor, log *logger.Logger) *AccountRateLimiter {
	limiter := &AccountRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *AccountRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for account, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, account)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *AccountRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *AccountRateLimiter) Allow(accountID string) bool {
	if accountID == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	validTimestamps := make([]time.Time, 0)
	for _, ts := range rl.requests[accountID] {
		if now.Sub(ts) < rl.window {
			validTimestamps = append(validTimestamps, ts)
		}
	}

	if len(validTimestamps) >= rl.limit {
		rl.requests[accountID] = validTimestamps
		return false
	}

	rl.requests[accountID] = append(validTimestamps, now)
	return true
}

func AccountRateLimit(limiter *AccountRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID := extractAccountID(r, limiter.extractor)

			if accountID == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(accountID) {
				rejectRateLimited(w, limiter.log, r, accountID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractAccountID(r *http.Request, extractor AccountExtractor) string {
	if extractor == nil {
		return r.Header.Get("X-Account-ID")
	}
	return extractor(r)
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, accountID string) {
	requestID := ""
	if rid := r.Context().Value(RequestIDKey); rid != nil {
		if id, ok := rid.(string); ok {
			requestID = id
		}
	}

	log.Warn("Rate limit exceeded",
		"request_id", requestID,
		"account_id", accountID,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
}

func DefaultAccountExtractor(r *http.Request) string {
	return r.Header.Get("X-Account-ID")
}
