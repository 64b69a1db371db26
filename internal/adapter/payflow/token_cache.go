package payflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenFetcher obtains a fresh short-lived credential from the issuer.
type TokenFetcher func(ctx context.Context) (string, error)

// expirySkew is subtracted from a token's exp claim so a token about to
// expire is refreshed before it is used.
const expirySkew = 30 * time.Second

// TokenCache caches a short-lived bearer credential as explicit
// process-scoped state owned by whoever constructs it. Get returns the
// cached token while it is still valid and fetches otherwise; Invalidate
// discards the cached value (applied by the client on a 401/403 response).
type TokenCache struct {
	mu        sync.Mutex
	fetch     TokenFetcher
	token     string
	expiresAt time.Time
}

// NewTokenCache creates an empty cache around the given fetcher.
func NewTokenCache(fetch TokenFetcher) *TokenCache {
	return &TokenCache{fetch: fetch}
}

// Get returns the cached token, fetching a fresh one when the cache is
// empty or the token is within expirySkew of its exp claim.
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && (c.expiresAt.IsZero() || time.Now().Before(c.expiresAt.Add(-expirySkew))) {
		return c.token, nil
	}

	token, err := c.fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching token: %w", err)
	}

	c.token = token
	c.expiresAt = tokenExpiry(token)
	return token, nil
}

// Invalidate discards the cached token so the next Get fetches again.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

// tokenExpiry extracts the exp claim from a JWT credential without
// verifying its signature; verification is the issuer's side of the
// contract, only the lifetime matters here. Returns the zero time for
// opaque (non-JWT) tokens, which are then cached until invalidated.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
