package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	steps := []struct {
		advance       time.Duration
		key           string
		wantAllowed   bool
		wantRemaining int
	}{
		{0, "a", true, 1},
		{time.Second, "a", true, 0},
		{time.Second, "a", false, 0},
		{0, "b", true, 1},
		{time.Minute, "a", true, 1},
	}

	for i, s := range steps {
		now = now.Add(s.advance)
		allowed, remaining := rl.Allow(s.key)
		if allowed != s.wantAllowed || remaining != s.wantRemaining {
			t.Errorf("step %d: Allow(%q) = (%v, %d), want (%v, %d)", i, s.key, allowed, remaining, s.wantAllowed, s.wantRemaining)
		}
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(1, time.Hour))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
		if i == 1 && w.Header().Get("Retry-After") != "3600" {
			t.Errorf("Expected Retry-After 3600, got %q", w.Header().Get("Retry-After"))
		}
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Unexpected status sequence %v", codes)
	}
}

func TestRateLimit_DisabledWhenNotPositive(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, w.Code)
		}
	}
}
