package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func loginRequest(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = ip + ":51234"
	return req
}

func TestCheck_LockoutAfterMaxAttempts(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  3,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 30,
		Clock:        clock,
	})

	req := loginRequest("192.168.1.1")

	for i := 0; i < 3; i++ {
		if result := limiter.Check("admin", req); !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		limiter.RecordFailure("admin", req)
	}

	result := limiter.Check("admin", req)
	if result.Allowed {
		t.Fatal("expected account lockout after max attempts")
	}
	if result.Reason != "account locked" {
		t.Errorf("reason = %q, want 'account locked'", result.Reason)
	}
	if result.RetryAfter != 5*time.Minute {
		t.Errorf("retry after = %v, want 5m", result.RetryAfter)
	}

	// Lockout expires.
	clock.Advance(5*time.Minute + time.Second)
	if result := limiter.Check("admin", req); !result.Allowed {
		t.Errorf("expected unlock after lockout window, got blocked: %s", result.Reason)
	}
}

func TestCheck_IPLimitCoversAllAccounts(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  100,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 5,
		Clock:        clock,
	})

	req := loginRequest("10.0.0.9")

	// Spraying different usernames from one address still hits the IP cap.
	usernames := []string{"a", "b", "c", "d", "e"}
	for _, username := range usernames {
		if result := limiter.Check(username, req); !result.Allowed {
			t.Fatalf("attempt for %s should be allowed", username)
		}
		limiter.RecordFailure(username, req)
	}

	if result := limiter.Check("f", req); result.Allowed {
		t.Fatal("expected IP rate limit after spraying")
	}

	clock.Advance(time.Hour)
	if result := limiter.Check("f", req); !result.Allowed {
		t.Errorf("expected allowance after the hourly window, got blocked: %s", result.Reason)
	}
}

func TestReset_ClearsAccountFailures(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:  2,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 30,
		Clock:        clock,
	})

	req := loginRequest("192.168.1.1")
	limiter.RecordFailure("admin", req)
	limiter.RecordFailure("admin", req)

	if result := limiter.Check("admin", req); result.Allowed {
		t.Fatal("expected lockout before reset")
	}

	limiter.Reset("admin")
	if result := limiter.Check("admin", req); !result.Allowed {
		t.Errorf("expected allowance after reset, got blocked: %s", result.Reason)
	}
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := loginRequest("10.0.0.1")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if ip := ClientIP(req); ip != "203.0.113.7" {
		t.Errorf("ClientIP = %q, want 203.0.113.7", ip)
	}

	req.Header.Del("X-Forwarded-For")
	if ip := ClientIP(req); ip != "10.0.0.1" {
		t.Errorf("ClientIP = %q, want 10.0.0.1", ip)
	}
}
