package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleFromToken reads the role claim out of the upstream bearer token for
// display and routing. The signature is NOT verified here: the upstream owns
// token verification, the console only mirrors what the token says about
// itself.
func RoleFromToken(token string) string {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		return role
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok && isAdmin {
		return "admin"
	}
	return ""
}
