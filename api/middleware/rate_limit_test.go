package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubLimiterStore struct {
	counts map[string]int64
	err    error
}

func (s *stubLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *stubLimiterStore) RateLimitKey(scope string) string {
	return "rp:rate_limit:" + scope
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewRateLimitPolicy("quote", time.Minute, 2)
	handler := RateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRateLimitKeysByIP(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewRateLimitPolicy("quote", time.Minute, 1)
	handler := RateLimit(policy, store, nil)(okHandler())

	for _, ip := range []string{"203.0.113.9", "198.51.100.2"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
		r.Header.Set("X-Real-IP", ip)
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("ip %s: expected 200, got %d", ip, w.Code)
		}
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := RateLimit(NewRateLimitPolicy("quote", 0, 0), &stubLimiterStore{}, nil)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", w.Code)
	}
}

func TestRateLimitStoreFailureBlocks(t *testing.T) {
	store := &stubLimiterStore{err: errors.New("redis down")}
	handler := RateLimit(NewRateLimitPolicy("quote", time.Minute, 5), store, nil)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
