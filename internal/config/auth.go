package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AuthConfig points at the authentication provider's session-verification
// endpoint. Verified tokens are cached for CacheTTL.
type AuthConfig struct {
	VerifyURL string
	CacheTTL  time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		ttl := 5 * time.Minute
		if raw := os.Getenv("AUTH_CACHE_TTL_SECONDS"); raw != "" {
			if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
				ttl = time.Duration(seconds) * time.Second
			}
		}
		authConfig = &AuthConfig{
			VerifyURL: os.Getenv("AUTH_VERIFY_URL"),
			CacheTTL:  ttl,
		}
	})
	return authConfig
}
