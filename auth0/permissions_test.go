package auth0

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPermission(t *testing.T) {
	t.Run("permissions claim absent returns 400 invalid_claims", func(t *testing.T) {
		claims := &Claims{}

		authErr := CheckPermission("post:drinks", claims)

		require.NotNil(t, authErr)
		assert.Equal(t, CodeInvalidClaims, authErr.Code)
		assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
		assert.Equal(t, "Permissions not included in JWT.", authErr.Description)
	})

	t.Run("permission not granted returns 403 unauthorized", func(t *testing.T) {
		claims := &Claims{Permissions: []string{"get:drinks-detail"}}

		authErr := CheckPermission("post:drinks", claims)

		require.NotNil(t, authErr)
		assert.Equal(t, CodeUnauthorized, authErr.Code)
		assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
		assert.Equal(t, "Permission not found.", authErr.Description)
	})

	t.Run("permission granted", func(t *testing.T) {
		claims := &Claims{Permissions: []string{"get:drinks-detail", "post:drinks"}}

		assert.Nil(t, CheckPermission("post:drinks", claims))
		assert.Nil(t, CheckPermission("get:drinks-detail", claims))
	})

	t.Run("empty permission list is present but grants nothing", func(t *testing.T) {
		claims := &Claims{Permissions: []string{}}

		authErr := CheckPermission("post:drinks", claims)

		require.NotNil(t, authErr)
		assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
	})

	t.Run("match is exact, no wildcard semantics", func(t *testing.T) {
		claims := &Claims{Permissions: []string{"post:*", "post:drinks-detail"}}

		authErr := CheckPermission("post:drinks", claims)

		require.NotNil(t, authErr)
		assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
	})
}
