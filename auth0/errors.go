package auth0

import "net/http"

// AuthError is the standardized way to communicate auth failure modes.
// It carries a machine-readable code, a human description, and the HTTP
// status the boundary should answer with. Once raised it propagates
// unmodified to the response writer; no stage after the failing one runs.
type AuthError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	StatusCode  int    `json:"-"`
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.Code + ": " + e.Description
}

// Failure codes surfaced to clients.
const (
	CodeHeaderMissing = "authorization_header_missing"
	CodeInvalidHeader = "invalid_header"
	CodeTokenExpired  = "token_expired"
	CodeInvalidClaims = "invalid_claims"
	CodeUnauthorized  = "unauthorized"
)

// NewHeaderMissing reports an absent Authorization header.
func NewHeaderMissing() *AuthError {
	return &AuthError{
		Code:        CodeHeaderMissing,
		Description: "Authorization header is expected.",
		StatusCode:  http.StatusUnauthorized,
	}
}

// NewInvalidHeader reports a malformed Authorization header or an
// unparseable token. The status differs by stage: header-shape problems
// are 401, verification-stage problems are 400.
func NewInvalidHeader(description string, status int) *AuthError {
	return &AuthError{
		Code:        CodeInvalidHeader,
		Description: description,
		StatusCode:  status,
	}
}

// NewTokenExpired reports a token whose expiry claim is in the past.
func NewTokenExpired() *AuthError {
	return &AuthError{
		Code:        CodeTokenExpired,
		Description: "Token expired.",
		StatusCode:  http.StatusUnauthorized,
	}
}

// NewInvalidClaims reports an audience/issuer mismatch (401) or a payload
// missing the permissions claim entirely (400).
func NewInvalidClaims(description string, status int) *AuthError {
	return &AuthError{
		Code:        CodeInvalidClaims,
		Description: description,
		StatusCode:  status,
	}
}

// NewPermissionDenied reports a valid token lacking the required permission.
func NewPermissionDenied() *AuthError {
	return &AuthError{
		Code:        CodeUnauthorized,
		Description: "Permission not found.",
		StatusCode:  http.StatusForbidden,
	}
}

// NewGenericUnauthorized is the fail-closed fallback used by the gate when
// verification fails for a reason that never produced a typed AuthError.
// It deliberately carries no internal detail.
func NewGenericUnauthorized() *AuthError {
	return &AuthError{
		Code:        CodeUnauthorized,
		Description: "Unable to authenticate request.",
		StatusCode:  http.StatusUnauthorized,
	}
}
