package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expired inspects the exp claim without verifying the signature; only the
// backend holds the key. Tokens that are not JWTs, or carry no exp, are left
// for the backend to judge.
func expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
