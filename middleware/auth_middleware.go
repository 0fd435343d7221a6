package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/baristalab/drinks-api/auth0"
	"github.com/baristalab/drinks-api/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for verifying bearer tokens
type TokenValidator interface {
	// ValidateToken verifies a bearer token and returns its claims
	ValidateToken(ctx context.Context, token string) (*auth0.Claims, error)
}

// AuthMiddleware guards protected routes. Each guard runs the pipeline
// extract -> verify -> permission check and short-circuits with a JSON
// error response at the first failing stage.
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequirePermission returns a middleware requiring a valid bearer token
// that grants the given permission. On success the verified claims are
// placed in the request context for the protected handler.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			token, authErr := auth0.GetTokenFromHeader(r.Header.Get("Authorization"))
			if authErr != nil {
				m.logger.Warn("bearer token extraction failed",
					zap.String("request_id", requestID),
					zap.String("code", authErr.Code))
				_ = utils.WriteAuthError(w, authErr)
				return
			}

			claims, err := m.validator.ValidateToken(ctx, token)
			if err != nil {
				m.rejectVerification(w, requestID, err)
				return
			}

			if authErr := auth0.CheckPermission(permission, claims); authErr != nil {
				m.logger.Warn("permission check failed",
					zap.String("request_id", requestID),
					zap.String("permission", permission),
					zap.String("code", authErr.Code))
				_ = utils.WriteAuthError(w, authErr)
				return
			}

			m.logger.Debug("authentication successful",
				zap.String("request_id", requestID),
				zap.String("permission", permission),
				zap.String("sub", claims.Subject))

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// rejectVerification writes the response for a failed token verification.
// Typed failures surface verbatim; anything else is logged and collapsed
// into a generic 401 so internal detail never reaches the client.
func (m *AuthMiddleware) rejectVerification(w http.ResponseWriter, requestID string, err error) {
	var authErr *auth0.AuthError
	if errors.As(err, &authErr) {
		m.logger.Warn("token verification failed",
			zap.String("request_id", requestID),
			zap.String("code", authErr.Code))
		_ = utils.WriteAuthError(w, authErr)
		return
	}

	m.logger.Error("token verification failed unexpectedly",
		zap.String("request_id", requestID),
		zap.Error(err))
	_ = utils.WriteAuthError(w, auth0.NewGenericUnauthorized())
}
