package auth0

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// allowedAlgorithms is the only signing algorithm accepted for bearer
// tokens. Tokens signed with anything else are rejected outright.
var allowedAlgorithms = []string{"RS256"}

// Claims represents the verified payload of a bearer token. A Claims value
// is only ever produced by successful signature and claims verification.
type Claims struct {
	jwt.RegisteredClaims

	// Permissions is nil when the token carries no permissions claim at
	// all, which is distinct from an empty permission list.
	Permissions []string `json:"permissions"`
}

// Validator verifies bearer tokens against the issuer's published keys
type Validator struct {
	audience string
	issuer   string
	resolver KeyResolver
	logger   *zap.Logger
}

// Config holds configuration for Validator
type Config struct {
	// Domain is the issuer domain, e.g. "example.eu.auth0.com". The
	// expected issuer claim is "https://{Domain}/".
	Domain   string
	Audience string
}

// NewValidator creates a token validator bound to one issuer and audience
func NewValidator(cfg Config, resolver KeyResolver, logger *zap.Logger) *Validator {
	return &Validator{
		audience: cfg.Audience,
		issuer:   fmt.Sprintf("https://%s/", cfg.Domain),
		resolver: resolver,
		logger:   logger,
	}
}

// ValidateToken verifies the token's signature and standard claims and
// returns the decoded payload. Classified failures come back as *AuthError;
// infrastructure faults (key set unreachable) come back as plain errors for
// the gate to handle fail-closed.
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
				return nil, NewInvalidHeader("Unable to parse authentication token.", http.StatusBadRequest)
			}

			kid, ok := token.Header["kid"].(string)
			if !ok || kid == "" {
				return nil, NewInvalidHeader("Authorization malformed.", http.StatusUnauthorized)
			}

			key, err := v.resolver.ResolveKey(ctx, kid)
			if err != nil {
				if errors.Is(err, ErrKeyNotFound) {
					return nil, NewInvalidHeader("Unable to find the appropriate key.", http.StatusBadRequest)
				}
				return nil, err
			}
			return key, nil
		},
		jwt.WithValidMethods(allowedAlgorithms),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
	)

	if err != nil {
		return nil, v.classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, NewInvalidHeader("Unable to parse authentication token.", http.StatusBadRequest)
	}

	return claims, nil
}

// classify maps golang-jwt parse errors onto the auth failure taxonomy.
// Key resolution faults that are not "key absent from the set" stay plain
// errors so the gate converts them to its generic fallback instead of
// echoing internal detail.
func (v *Validator) classify(err error) error {
	var authErr *AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewTokenExpired()
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return NewInvalidClaims("Incorrect claims. Please, check the audience and issuer.", http.StatusUnauthorized)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// Keyfunc failed without producing an AuthError: the JWKS fetch
		// itself went wrong.
		v.logger.Warn("key resolution failed", zap.Error(err))
		return err
	default:
		return NewInvalidHeader("Unable to parse authentication token.", http.StatusBadRequest)
	}
}
