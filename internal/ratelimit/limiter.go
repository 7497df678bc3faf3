// Package ratelimit provides rate limiting for admin login attempts.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	MaxAttempts  int           // Failed attempts before lockout (default: 5)
	Lockout      time.Duration // Lockout duration after max attempts (default: 5m)
	MaxIPPerHour int           // Max attempts per IP per hour (default: 30)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  5,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 30,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// entry tracks attempt counts and timestamps.
type entry struct {
	count    int
	firstAt  time.Time // First attempt in window
	lockedAt time.Time // When lockout started (zero if not locked)
}

// Limiter tracks failed login attempts per account and per source IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	// Keyed by hash of identifier or IP
	byID map[string]*entry
	byIP map[string]*entry
}

func New(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	clock := config.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config: config,
		clock:  clock,
		byID:   make(map[string]*entry),
		byIP:   make(map[string]*entry),
	}
}

// Check reports whether a login attempt for the identifier from the request's
// IP is currently allowed.
func (l *Limiter) Check(identifier string, r *http.Request) LimitResult {
	now := l.clock.Now()
	idKey := hashKey(identifier)
	ipKey := hashKey(ClientIP(r))

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.byID[idKey]; ok {
		if !e.lockedAt.IsZero() {
			remaining := l.config.Lockout - now.Sub(e.lockedAt)
			if remaining > 0 {
				return LimitResult{
					Allowed:    false,
					RetryAfter: remaining,
					Reason:     "account locked",
				}
			}
			delete(l.byID, idKey)
		}
	}

	if e, ok := l.byIP[ipKey]; ok {
		if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.MaxIPPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "too many attempts from address",
			}
		}
	}

	return LimitResult{Allowed: true}
}

// RecordFailure counts a failed attempt, locking the account after
// MaxAttempts failures.
func (l *Limiter) RecordFailure(identifier string, r *http.Request) {
	now := l.clock.Now()
	idKey := hashKey(identifier)
	ipKey := hashKey(ClientIP(r))

	l.mu.Lock()
	defer l.mu.Unlock()

	idEntry := l.bump(l.byID, idKey, now)
	if idEntry.count >= l.config.MaxAttempts && idEntry.lockedAt.IsZero() {
		idEntry.lockedAt = now
	}

	l.bump(l.byIP, ipKey, now)
}

// Reset clears the failure history for an identifier after a successful login.
func (l *Limiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.byID, hashKey(identifier))
}

func (l *Limiter) bump(m map[string]*entry, key string, now time.Time) *entry {
	e, ok := m[key]
	if !ok || now.Sub(e.firstAt) >= time.Hour {
		e = &entry{firstAt: now}
		m[key] = e
	}
	e.count++
	return e
}

// ClientIP extracts the caller address, preferring X-Forwarded-For when the
// server sits behind a proxy.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
