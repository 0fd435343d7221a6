package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baristalab/drinks-api/auth0"
)

// MockTokenValidator is a mock implementation of TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*auth0.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth0.Claims), args.Error(1)
}

type authErrorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) authErrorBody {
	t.Helper()
	var body authErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// serveGuarded runs a request through RequirePermission with a handler
// that records whether it was reached and what claims it saw.
func serveGuarded(validator TokenValidator, permission string, r *http.Request) (*httptest.ResponseRecorder, bool, *auth0.Claims) {
	m := NewAuthMiddleware(validator, zap.NewNop())

	var reached bool
	var seenClaims *auth0.Claims
	handler := m.RequirePermission(permission)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seenClaims = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec, reached, seenClaims
}

func TestRequirePermission_MissingHeader(t *testing.T) {
	validator := new(MockTokenValidator)

	req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
	rec, reached, _ := serveGuarded(validator, "get:drinks-detail", req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeAuthError(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusUnauthorized, body.Error)
	assert.Equal(t, auth0.CodeHeaderMissing, body.Code)
	validator.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
}

func TestRequirePermission_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wrong scheme", "Basic abc"},
		{"no token", "Bearer"},
		{"too many parts", "Bearer abc def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockTokenValidator)

			req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
			req.Header.Set("Authorization", tt.header)
			rec, reached, _ := serveGuarded(validator, "get:drinks-detail", req)

			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, auth0.CodeInvalidHeader, decodeAuthError(t, rec).Code)
			validator.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
		})
	}
}

func TestRequirePermission_TypedVerificationFailure(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", mock.Anything, "expired-token").
		Return(nil, error(auth0.NewTokenExpired()))

	req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec, reached, _ := serveGuarded(validator, "get:drinks-detail", req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeAuthError(t, rec)
	assert.Equal(t, auth0.CodeTokenExpired, body.Code)
	assert.Equal(t, "Token expired.", body.Message)
	validator.AssertExpectations(t)
}

func TestRequirePermission_UnexpectedVerificationFailure(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", mock.Anything, "some-token").
		Return(nil, errors.New("jwks endpoint unreachable"))

	req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec, reached, _ := serveGuarded(validator, "get:drinks-detail", req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Internal faults collapse to the generic message
	body := decodeAuthError(t, rec)
	assert.Equal(t, "Unable to authenticate request.", body.Message)
	assert.NotContains(t, rec.Body.String(), "unreachable")
	validator.AssertExpectations(t)
}

func TestRequirePermission_PermissionsClaimAbsent(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", mock.Anything, "valid-token").
		Return(&auth0.Claims{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/drinks", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec, reached, _ := serveGuarded(validator, "post:drinks", req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, auth0.CodeInvalidClaims, decodeAuthError(t, rec).Code)
}

func TestRequirePermission_PermissionDenied(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", mock.Anything, "valid-token").
		Return(&auth0.Claims{Permissions: []string{"get:drinks-detail"}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/drinks", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec, reached, _ := serveGuarded(validator, "post:drinks", req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeAuthError(t, rec)
	assert.Equal(t, auth0.CodeUnauthorized, body.Code)
	assert.Equal(t, "Permission not found.", body.Message)
}

func TestRequirePermission_Granted(t *testing.T) {
	claims := &auth0.Claims{Permissions: []string{"post:drinks", "get:drinks-detail"}}

	validator := new(MockTokenValidator)
	validator.On("ValidateToken", mock.Anything, "valid-token").Return(claims, nil)

	req := httptest.NewRequest(http.MethodPost, "/drinks", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec, reached, seenClaims := serveGuarded(validator, "post:drinks", req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	// The protected handler sees the verified claims
	assert.Equal(t, claims, seenClaims)
	validator.AssertExpectations(t)
}
