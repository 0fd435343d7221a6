package auth0

import "net/http"

// CheckPermission checks that a verified payload grants the required
// permission string. Membership is exact string match; there is no
// hierarchy or wildcard semantics.
func CheckPermission(permission string, claims *Claims) *AuthError {
	if claims.Permissions == nil {
		return NewInvalidClaims("Permissions not included in JWT.", http.StatusBadRequest)
	}

	for _, p := range claims.Permissions {
		if p == permission {
			return nil
		}
	}

	return NewPermissionDenied()
}
