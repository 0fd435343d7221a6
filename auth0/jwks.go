package auth0

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrKeyNotFound is returned when no key in the set matches a token's kid.
var ErrKeyNotFound = errors.New("signing key not found in JWKS")

// JWKS represents the JSON Web Key Set published by the issuer
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a single JSON Web Key
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// KeyResolver resolves a token's key id to the RSA public key that should
// verify it. Implementations decide the refresh policy.
type KeyResolver interface {
	ResolveKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// JWKSResolver fetches the issuer's key set from the well-known JWKS URL
// and caches it for a bounded staleness window. A kid that is absent from
// a warm cache forces one refetch before the miss is reported, so freshly
// rotated keys are picked up without waiting out the TTL.
type JWKSResolver struct {
	jwksURL    string
	httpClient *http.Client
	logger     *zap.Logger

	cacheTTL time.Duration
	mu       sync.RWMutex
	cached   *JWKS
	cacheExp time.Time
}

// ResolverConfig holds configuration for JWKSResolver
type ResolverConfig struct {
	Domain      string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// NewJWKSResolver creates a resolver for https://{domain}/.well-known/jwks.json
func NewJWKSResolver(cfg ResolverConfig, logger *zap.Logger) *JWKSResolver {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 1 * time.Hour
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}

	return &JWKSResolver{
		jwksURL:  fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Domain),
		cacheTTL: cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// ResolveKey returns the public key for the given kid, refetching the key
// set once when a warm cache does not contain it.
func (r *JWKSResolver) ResolveKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	jwks, fresh, err := r.keySet(ctx)
	if err != nil {
		return nil, err
	}

	jwk := findKey(jwks, kid)
	if jwk == nil && !fresh {
		// Cache was warm; the kid may belong to a rotated key.
		if jwks, err = r.fetch(ctx); err != nil {
			return nil, err
		}
		jwk = findKey(jwks, kid)
	}
	if jwk == nil {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}

	return jwkToRSAPublicKey(jwk)
}

// keySet returns the cached key set, fetching when cold or stale. The
// second return reports whether the set came from a fetch in this call.
func (r *JWKSResolver) keySet(ctx context.Context) (*JWKS, bool, error) {
	r.mu.RLock()
	cached, exp := r.cached, r.cacheExp
	r.mu.RUnlock()

	if cached != nil && time.Now().Before(exp) {
		return cached, false, nil
	}

	jwks, err := r.fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	return jwks, true, nil
}

// fetch retrieves the key set over HTTPS and refreshes the cache. The
// cache lock is never held across the network round trip.
func (r *JWKSResolver) fetch(ctx context.Context) (*JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch JWKS: status code %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	r.mu.Lock()
	r.cached = &jwks
	r.cacheExp = time.Now().Add(r.cacheTTL)
	r.mu.Unlock()

	r.logger.Debug("JWKS refreshed", zap.Int("keys", len(jwks.Keys)))
	return &jwks, nil
}

// InvalidateCache clears the cached key set (useful for testing or forced refresh)
func (r *JWKSResolver) InvalidateCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
	r.cacheExp = time.Time{}
}

// findKey scans for the first key with a matching kid. Duplicate kids
// resolve to the earliest entry.
func findKey(jwks *JWKS, kid string) *JWK {
	for i := range jwks.Keys {
		if jwks.Keys[i].Kid == kid {
			return &jwks.Keys[i]
		}
	}
	return nil
}

// jwkToRSAPublicKey converts a JWK's modulus and exponent to an RSA public key
func jwkToRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var e int
	for _, b := range eBytes {
		e = e*256 + int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
