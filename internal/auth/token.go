package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "carcloud/pkg/errors"
)

// Claims is the verified identity carried by a session token.
type Claims struct {
	Email string
}

// SessionAuthenticator issues and verifies the signed session tokens
// carried in the "token" cookie. Tokens are HS256 JWTs with a fixed
// TTL; there is no server-side revocation state, so a token stays
// valid until its natural expiry.
type SessionAuthenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionAuthenticator(secret string, ttl time.Duration) *SessionAuthenticator {
	return &SessionAuthenticator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (a *SessionAuthenticator) Issue(email string) (string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(a.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify returns the claims of a valid token. Absent, malformed,
// expired, and wrongly signed tokens all fail the same way: 401.
func (a *SessionAuthenticator) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, apperrors.Unauthorized("unauthorized access")
	}

	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, apperrors.Unauthorized("unauthorized access")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperrors.Unauthorized("unauthorized access")
	}

	email, _ := mapClaims["email"].(string)
	if email == "" {
		return Claims{}, apperrors.Unauthorized("unauthorized access")
	}

	return Claims{Email: email}, nil
}
