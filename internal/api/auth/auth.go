// Package auth implements the single-administrator login: a bcrypt credential
// check and HMAC-signed expiring bearer tokens validated server-side.
package auth

import (
	"github.com/dvera/barrioliga/internal/config"
	"github.com/dvera/barrioliga/internal/ratelimit"
)

var (
	appConfig    *config.Config
	loginLimiter *ratelimit.Limiter
)

// Init wires the package to the loaded configuration and login rate limiter.
func Init(cfg *config.Config, limiter *ratelimit.Limiter) {
	appConfig = cfg
	loginLimiter = limiter
}
