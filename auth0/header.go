package auth0

import (
	"net/http"
	"strings"
)

// GetTokenFromHeader extracts the bearer token from an Authorization header
// value. Validation here is purely syntactic; the token itself is returned
// verbatim for the verifier to decode.
func GetTokenFromHeader(header string) (string, *AuthError) {
	if header == "" {
		return "", NewHeaderMissing()
	}

	parts := strings.Fields(header)
	if len(parts) == 0 || strings.ToLower(parts[0]) != "bearer" {
		return "", NewInvalidHeader(`Authorization header must start with "Bearer".`, http.StatusUnauthorized)
	}
	if len(parts) == 1 {
		return "", NewInvalidHeader("Token not found.", http.StatusUnauthorized)
	}
	if len(parts) > 2 {
		return "", NewInvalidHeader("Authorization header must be bearer token.", http.StatusUnauthorized)
	}

	return parts[1], nil
}
