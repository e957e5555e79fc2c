package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reports when the stored access token expires. The token is
// issued and verified by the backend; the client only peeks at the claims,
// so parsing is deliberately unverified. ok is false for opaque tokens or
// tokens without an exp claim.
func (s *Store) TokenExpiry() (expiry time.Time, ok bool) {
	return tokenExpiry(s.accessToken)
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// tokenExpired is only authoritative when the token parses as a JWT with an
// exp claim; opaque tokens are never treated as expired.
func tokenExpired(token string) (expired, known bool) {
	exp, ok := tokenExpiry(token)
	if !ok {
		return false, false
	}
	return time.Now().After(exp), true
}
